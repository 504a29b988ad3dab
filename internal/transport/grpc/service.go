package grpc_server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "userdirectory.v1.UserDirectory"

// UserDirectoryServer is the gRPC surface of the directory. Messages are
// protobuf well-known types so no generated code is needed on either side.
//
// User records travel as Struct values with the same keys as the REST JSON
// shape: id, name, email, phone, createdAt.
type UserDirectoryServer interface {
	ListUsers(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	GetStats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListUsers", Handler: unary("ListUsers", newMsg[emptypb.Empty], UserDirectoryServer.ListUsers)},
		{MethodName: "CreateUser", Handler: unary("CreateUser", newMsg[structpb.Struct], UserDirectoryServer.CreateUser)},
		{MethodName: "UpdateUser", Handler: unary("UpdateUser", newMsg[structpb.Struct], UserDirectoryServer.UpdateUser)},
		{MethodName: "DeleteUser", Handler: unary("DeleteUser", newMsg[wrapperspb.Int64Value], UserDirectoryServer.DeleteUser)},
		{MethodName: "GetStats", Handler: unary("GetStats", newMsg[emptypb.Empty], UserDirectoryServer.GetStats)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "userdirectory/v1/userdirectory.proto",
}

func RegisterUserDirectoryServer(s grpc.ServiceRegistrar, srv UserDirectoryServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func newMsg[T any]() *T { return new(T) }

func unary[Req proto.Message, Resp proto.Message](
	method string,
	newReq func() Req,
	call func(UserDirectoryServer, context.Context, Req) (Resp, error),
) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(UserDirectoryServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(s, ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
