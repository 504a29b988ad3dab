package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"userdirectory/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORM модель
type UserGorm struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Phone     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

func (UserGorm) TableName() string {
	return "users"
}

func toGormUser(u *domain.User) *UserGorm {
	return &UserGorm{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

func toDomainUser(u *UserGorm) *domain.User {
	return &domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

var _ domain.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Initialize(ctx context.Context, seed bool) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&UserGorm{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if !seed {
		return nil
	}

	// ON CONFLICT DO NOTHING: повторный запуск не дублирует и не перезаписывает записи
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sample := range domain.SampleUsers {
			row := toGormUser(&sample)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "email"}},
				DoNothing: true,
			}).Create(row).Error
			if err != nil {
				return fmt.Errorf("seed user %s: %w", sample.Email, err)
			}
		}
		return nil
	})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []UserGorm
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, *toDomainUser(&rows[i]))
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	gormUser := toGormUser(user)
	gormUser.ID = 0
	if gormUser.CreatedAt.IsZero() {
		gormUser.CreatedAt = time.Now()
	}

	result := r.db.WithContext(ctx).Create(gormUser)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", result.Error)
	}

	*user = *toDomainUser(gormUser)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	var existing UserGorm
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&existing, "id = ?", user.ID).Error; err != nil {
			return err
		}
		existing.Name = user.Name
		existing.Email = user.Email
		existing.Phone = user.Phone
		return tx.Model(&UserGorm{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"name":  user.Name,
				"email": user.Email,
				"phone": user.Phone,
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}

	*user = *toDomainUser(&existing)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserGorm{})
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserGorm{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *UserRepository) Name() string {
	switch r.db.Dialector.Name() {
	case "postgres":
		return "PostgreSQL"
	case "sqlite":
		return "SQLite"
	default:
		return r.db.Dialector.Name()
	}
}

func (r *UserRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqlite extended result codes
const (
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		code := coded.Code()
		return code == sqliteConstraintUnique || code == sqliteConstraintPrimaryKey
	}
	return false
}
