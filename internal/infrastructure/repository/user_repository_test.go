package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"userdirectory/internal/domain"
	"userdirectory/internal/infrastructure/repository"
)

func newTestRepository(t *testing.T) *repository.UserRepository {
	t.Helper()
	db, err := repository.Open(repository.DriverSQLite, "file::memory:", zap.NewNop())
	require.NoError(t, err)

	repo := repository.NewUserRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Initialize(context.Background(), false))
	return repo
}

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for i := 0; i < 5; i++ {
		u := &domain.User{
			Name:  fmt.Sprintf("user-%d", i),
			Email: fmt.Sprintf("user-%d@example.com", i),
			Phone: fmt.Sprintf("555-%d", i),
		}
		require.NoError(t, repo.Create(ctx, u))
		require.NotZero(t, u.ID)
		require.False(t, u.CreatedAt.IsZero())
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 5)
	for i, u := range users {
		n := 4 - i
		require.Equal(t, fmt.Sprintf("user-%d", n), u.Name)
		require.Equal(t, fmt.Sprintf("user-%d@example.com", n), u.Email)
		require.Equal(t, fmt.Sprintf("555-%d", n), u.Phone)
	}
}

func TestListEmpty(t *testing.T) {
	users, err := newTestRepository(t).List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com", Phone: "1"}))
	err := repo.Create(ctx, &domain.User{Name: "Other", Email: "ann@x.com", Phone: "2"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	// сравнение по точной строке, без приведения регистра
	require.NoError(t, repo.Create(ctx, &domain.User{Name: "Ann", Email: "ANN@x.com", Phone: "1"}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created := &domain.User{Name: "Ann", Email: "ann@x.com", Phone: "555-1"}
	require.NoError(t, repo.Create(ctx, created))

	updated := &domain.User{ID: created.ID, Name: "Anna", Email: "anna@x.com", Phone: "555-9"}
	require.NoError(t, repo.Update(ctx, updated))
	require.Equal(t, created.ID, updated.ID)
	require.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "Anna", users[0].Name)
	require.Equal(t, "anna@x.com", users[0].Email)
	require.Equal(t, "555-9", users[0].Phone)
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	require.NoError(t, repo.Create(ctx, &domain.User{Name: "Ann", Email: "ann@x.com", Phone: "1"}))

	err := repo.Update(ctx, &domain.User{ID: 999, Name: "X", Email: "x@x.com", Phone: "2"})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "ann@x.com", users[0].Email)
}

func TestUpdateEmailCollision(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	ann := &domain.User{Name: "Ann", Email: "ann@x.com", Phone: "1"}
	bo := &domain.User{Name: "Bo", Email: "bo@x.com", Phone: "2"}
	require.NoError(t, repo.Create(ctx, ann))
	require.NoError(t, repo.Create(ctx, bo))

	err := repo.Update(ctx, &domain.User{ID: bo.ID, Name: "Bo", Email: "ann@x.com", Phone: "2"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "bo@x.com", users[0].Email)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	u := &domain.User{Name: "Ann", Email: "ann@x.com", Phone: "1"}
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Create(ctx, &domain.User{Name: "Bo", Email: "bo@x.com", Phone: "2"}))

	require.NoError(t, repo.Delete(ctx, u.ID))
	require.ErrorIs(t, repo.Delete(ctx, u.ID), domain.ErrUserNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "bo@x.com", users[0].Email)
}

func TestInitializeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Initialize(ctx, true))
	require.NoError(t, repo.Initialize(ctx, true))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, len(domain.SampleUsers), count)
}

func TestInitializeKeepsExistingRecord(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	mine := &domain.User{Name: "Not John", Email: domain.SampleUsers[0].Email, Phone: "000"}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Initialize(ctx, true))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, len(domain.SampleUsers))
	for _, u := range users {
		if u.Email == mine.Email {
			require.Equal(t, "Not John", u.Name)
		}
	}
}

func TestExampleScenario(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	ann := &domain.User{Name: "Ann", Email: "ann@x.com", Phone: "555-1"}
	require.NoError(t, repo.Create(ctx, ann))
	require.EqualValues(t, 1, ann.ID)

	bo := &domain.User{Name: "Bo", Email: "bo@x.com", Phone: "555-2"}
	require.NoError(t, repo.Create(ctx, bo))
	require.EqualValues(t, 2, bo.ID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "Bo", users[0].Name)
	require.Equal(t, "Ann", users[1].Name)

	require.NoError(t, repo.Update(ctx, &domain.User{ID: 1, Name: "Ann", Email: "ann2@x.com", Phone: "555-1"}))
	require.NoError(t, repo.Delete(ctx, 2))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.EqualValues(t, 1, users[0].ID)
	require.Equal(t, "ann2@x.com", users[0].Email)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestPingAndName(t *testing.T) {
	repo := newTestRepository(t)
	require.NoError(t, repo.Ping(context.Background()))
	require.Equal(t, "SQLite", repo.Name())
}
