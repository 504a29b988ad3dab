package grpc_server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// UserClient calls a remote UserDirectory service.
type UserClient struct {
	cc grpc.ClientConnInterface
}

func NewUserClient(url string, opts ...grpc.DialOption) (*UserClient, *grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	cc, err := grpc.NewClient(url, opts...)
	if err != nil {
		return nil, nil, err
	}
	return &UserClient{cc: cc}, cc, nil
}

func (c *UserClient) ListUsers(ctx context.Context) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListUsers", &emptypb.Empty{}, out)
	return out, err
}

func (c *UserClient) CreateUser(ctx context.Context, name, email, phone string) (*structpb.Struct, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"name":  structpb.NewStringValue(name),
		"email": structpb.NewStringValue(email),
		"phone": structpb.NewStringValue(phone),
	}}
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, "/"+ServiceName+"/CreateUser", in, out)
	return out, err
}

func (c *UserClient) UpdateUser(ctx context.Context, id int64, name, email, phone string) (*structpb.Struct, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":    structpb.NewNumberValue(float64(id)),
		"name":  structpb.NewStringValue(name),
		"email": structpb.NewStringValue(email),
		"phone": structpb.NewStringValue(phone),
	}}
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, "/"+ServiceName+"/UpdateUser", in, out)
	return out, err
}

func (c *UserClient) DeleteUser(ctx context.Context, id int64) error {
	return c.cc.Invoke(ctx, "/"+ServiceName+"/DeleteUser", wrapperspb.Int64(id), new(emptypb.Empty))
}

func (c *UserClient) GetStats(ctx context.Context) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetStats", &emptypb.Empty{}, out)
	return out, err
}
