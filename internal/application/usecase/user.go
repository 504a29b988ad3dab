package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"userdirectory/internal/domain"

	"go.uber.org/zap"
)

const (
	StatusConnected    = "Connected"
	StatusDisconnected = "Disconnected"
)

type Stats struct {
	TotalUsers int64  `json:"totalUsers"`
	Database   string `json:"database"`
	Status     string `json:"status"`
}

type Health struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

type UserUseCase struct {
	store domain.UserStore
	log   *zap.Logger
	now   func() time.Time
}

func NewUserUseCase(store domain.UserStore, log *zap.Logger) *UserUseCase {
	return &UserUseCase{
		store: store,
		log:   log.Named("users"),
		now:   time.Now,
	}
}

func (uc *UserUseCase) List(ctx context.Context) ([]domain.User, error) {
	users, err := uc.store.List(ctx)
	if err != nil {
		return nil, uc.internal("list users", err)
	}
	uc.log.Debug("fetched users", zap.Int("count", len(users)))
	return users, nil
}

func (uc *UserUseCase) Create(ctx context.Context, name, email, phone string) (*domain.User, error) {
	user := &domain.User{Name: name, Email: email, Phone: phone}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := uc.store.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, uc.internal("create user", err)
	}

	uc.log.Info("user added", zap.Int64("id", user.ID), zap.String("name", user.Name))
	return user, nil
}

func (uc *UserUseCase) Update(ctx context.Context, id int64, name, email, phone string) (*domain.User, error) {
	user := &domain.User{ID: id, Name: name, Email: email, Phone: phone}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := uc.store.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, uc.internal("update user", err)
	}

	uc.log.Info("user updated", zap.Int64("id", id))
	return user, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return uc.internal("delete user", err)
	}

	uc.log.Info("user deleted", zap.Int64("id", id))
	return nil
}

func (uc *UserUseCase) Stats(ctx context.Context) (*Stats, error) {
	count, err := uc.store.Count(ctx)
	if err != nil {
		return nil, uc.internal("count users", err)
	}
	return &Stats{
		TotalUsers: count,
		Database:   uc.store.Name(),
		Status:     StatusConnected,
	}, nil
}

// Health never fails; an unreachable store is reported in the Database field.
func (uc *UserUseCase) Health(ctx context.Context) *Health {
	dbStatus := StatusConnected
	if err := uc.store.Ping(ctx); err != nil {
		uc.log.Warn("store ping failed", zap.Error(err))
		dbStatus = StatusDisconnected
	}
	return &Health{
		Status:    "OK",
		Database:  dbStatus,
		Timestamp: uc.now().UTC(),
	}
}

func (uc *UserUseCase) internal(op string, err error) error {
	uc.log.Error("store error", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}
