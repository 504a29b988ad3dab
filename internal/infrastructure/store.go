package infrastructure

import (
	"fmt"

	"userdirectory/config"
	"userdirectory/internal/domain"
	"userdirectory/internal/infrastructure/localstore"
	"userdirectory/internal/infrastructure/repository"

	"go.uber.org/zap"
)

// NewStore builds the record store selected by STORE_DRIVER. The caller owns
// the returned store and must Close it.
func NewStore(cfg config.Config, log *zap.Logger) (domain.UserStore, error) {
	switch cfg.StoreDriver {
	case config.StoreLocal:
		return localstore.Open(cfg.LocalStorePath, log)
	case config.StoreSQL:
		db, err := repository.Open(cfg.DBDriver, cfg.DSN(), log)
		if err != nil {
			return nil, err
		}
		return repository.NewUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
