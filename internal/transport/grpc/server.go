package grpc_server

import (
	"context"
	"errors"
	"math"
	"time"

	"userdirectory/internal/application/usecase"
	"userdirectory/internal/domain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ UserDirectoryServer = (*UserServer)(nil)

type UserServer struct {
	users *usecase.UserUseCase
}

func NewUserServer(uc *usecase.UserUseCase) *UserServer {
	return &UserServer{users: uc}
}

func (s *UserServer) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, toStatus(err, "failed to fetch users")
	}

	values := make([]*structpb.Value, 0, len(users))
	for i := range users {
		values = append(values, structpb.NewStructValue(userToStruct(&users[i])))
	}
	return &structpb.ListValue{Values: values}, nil
}

func (s *UserServer) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, email, phone := userFields(req)
	user, err := s.users.Create(ctx, name, email, phone)
	if err != nil {
		return nil, toStatus(err, "failed to add user")
	}
	return userToStruct(user), nil
}

func (s *UserServer) UpdateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := userID(req)
	if err != nil {
		return nil, err
	}

	name, email, phone := userFields(req)
	user, err := s.users.Update(ctx, id, name, email, phone)
	if err != nil {
		return nil, toStatus(err, "failed to update user")
	}
	return userToStruct(user), nil
}

func (s *UserServer) DeleteUser(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if err := s.users.Delete(ctx, req.GetValue()); err != nil {
		return nil, toStatus(err, "failed to delete user")
	}
	return &emptypb.Empty{}, nil
}

func (s *UserServer) GetStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	stats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, toStatus(err, "failed to get statistics")
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"totalUsers": structpb.NewNumberValue(float64(stats.TotalUsers)),
		"database":   structpb.NewStringValue(stats.Database),
		"status":     structpb.NewStringValue(stats.Status),
	}}, nil
}

func toStatus(err error, internalMsg string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, internalMsg)
	}
}

func userFields(req *structpb.Struct) (name, email, phone string) {
	f := req.GetFields()
	return f["name"].GetStringValue(), f["email"].GetStringValue(), f["phone"].GetStringValue()
}

func userID(req *structpb.Struct) (int64, error) {
	v, ok := req.GetFields()["id"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "id is required")
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, status.Error(codes.InvalidArgument, "id must be an integer")
	}
	return int64(n.NumberValue), nil
}

func userToStruct(u *domain.User) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":        structpb.NewNumberValue(float64(u.ID)),
		"name":      structpb.NewStringValue(u.Name),
		"email":     structpb.NewStringValue(u.Email),
		"phone":     structpb.NewStringValue(u.Phone),
		"createdAt": structpb.NewStringValue(u.CreatedAt.UTC().Format(time.RFC3339Nano)),
	}}
}
