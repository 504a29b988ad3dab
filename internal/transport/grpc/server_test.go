package grpc_server_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"userdirectory/internal/application/usecase"
	"userdirectory/internal/infrastructure/repository"
	grpc_server "userdirectory/internal/transport/grpc"
)

func newTestClient(t *testing.T) *grpc_server.UserClient {
	t.Helper()

	db, err := repository.Open(repository.DriverSQLite, "file::memory:", zap.NewNop())
	require.NoError(t, err)
	repo := repository.NewUserRepository(db)
	require.NoError(t, repo.Initialize(context.Background(), false))

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	grpc_server.RegisterUserDirectoryServer(srv, grpc_server.NewUserServer(usecase.NewUserUseCase(repo, zap.NewNop())))
	go func() { _ = srv.Serve(lis) }()

	client, conn, err := grpc_server.NewUserClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		_ = repo.Close()
	})
	return client
}

func TestUserDirectoryOverGRPC(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	ann, err := client.CreateUser(ctx, "Ann", "ann@x.com", "555-1")
	require.NoError(t, err)
	require.EqualValues(t, 1, ann.GetFields()["id"].GetNumberValue())
	require.NotEmpty(t, ann.GetFields()["createdAt"].GetStringValue())

	_, err = client.CreateUser(ctx, "Bo", "bo@x.com", "555-2")
	require.NoError(t, err)

	list, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list.GetValues(), 2)
	require.Equal(t, "Bo", list.GetValues()[0].GetStructValue().GetFields()["name"].GetStringValue())

	updated, err := client.UpdateUser(ctx, 1, "Ann", "ann2@x.com", "555-1")
	require.NoError(t, err)
	require.Equal(t, "ann2@x.com", updated.GetFields()["email"].GetStringValue())

	require.NoError(t, client.DeleteUser(ctx, 2))

	stats, err := client.GetStats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.GetFields()["totalUsers"].GetNumberValue())
}

func TestErrorCodes(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	_, err := client.CreateUser(ctx, "Ann", "", "555-1")
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.CreateUser(ctx, "Ann", "ann@x.com", "555-1")
	require.NoError(t, err)
	_, err = client.CreateUser(ctx, "Ann", "ann@x.com", "555-1")
	require.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = client.UpdateUser(ctx, 42, "X", "x@x.com", "1")
	require.Equal(t, codes.NotFound, status.Code(err))

	err = client.DeleteUser(ctx, 42)
	require.Equal(t, codes.NotFound, status.Code(err))
}
