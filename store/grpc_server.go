package store

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tferdous17/rbkv/utils"
)

const storeServiceName = "rbkv.Store"

// StoreServer is the server API for the rbkv.Store service. Messages are protobuf well-known types:
// Put takes a Struct of string fields, Get and Delete answer with an encoded Record, Range takes a
// Struct with "from" and "to" and answers with a list of {key, value, timestamp} structs.
type StoreServer interface {
	Put(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Delete(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Range(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

var storeServiceDesc = grpc.ServiceDesc{
	ServiceName: storeServiceName,
	HandlerType: (*StoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Put", Handler: storePutHandler},
		{MethodName: "Get", Handler: storeGetHandler},
		{MethodName: "Delete", Handler: storeDeleteHandler},
		{MethodName: "Range", Handler: storeRangeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rbkv/store.proto",
}

func RegisterStoreServer(s grpc.ServiceRegistrar, srv StoreServer) {
	s.RegisterService(&storeServiceDesc, srv)
}

func storePutHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StoreServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storeServiceName + "/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StoreServer).Put(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func storeGetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StoreServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storeServiceName + "/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StoreServer).Get(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func storeDeleteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StoreServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storeServiceName + "/Delete"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StoreServer).Delete(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func storeRangeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StoreServer).Range(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + storeServiceName + "/Range"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StoreServer).Range(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type storeServer struct {
	store Store
}

func NewStoreServer(s Store) StoreServer {
	return &storeServer{store: s}
}

func (s *storeServer) Put(_ context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if len(req.GetFields()) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no key-value pairs given")
	}
	for key, value := range req.GetFields() {
		str, ok := value.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "value for key %q is not a string", key)
		}
		if err := s.store.Put(key, str.StringValue); err != nil {
			return nil, toStatus(err)
		}
	}
	return &emptypb.Empty{}, nil
}

func (s *storeServer) Get(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	record, err := s.store.Get(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return encodedRecord(record)
}

func (s *storeServer) Delete(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	record, err := s.store.Delete(req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return encodedRecord(record)
}

func (s *storeServer) Range(_ context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	fields := req.GetFields()
	records, err := s.store.Range(fields["from"].GetStringValue(), fields["to"].GetStringValue())
	if err != nil {
		return nil, toStatus(err)
	}

	values := make([]*structpb.Value, 0, len(records))
	for _, record := range records {
		values = append(values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"key":       structpb.NewStringValue(record.Key),
				"value":     structpb.NewStringValue(record.Value),
				"timestamp": structpb.NewNumberValue(float64(record.Header.TimeStamp)),
			},
		}))
	}
	return &structpb.ListValue{Values: values}, nil
}

func encodedRecord(record Record) (*wrapperspb.BytesValue, error) {
	buf, err := record.Encode()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Bytes(buf), nil
}

// toStatus maps store errors onto gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, utils.ErrKeyNotFound), errors.Is(err, utils.ErrEmptyTree),
		errors.Is(err, utils.ErrNoSuccessor), errors.Is(err, utils.ErrNoPredecessor):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, utils.ErrEmptyKey), errors.Is(err, utils.ErrEmptyValue), errors.Is(err, utils.ErrInvalidRange):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// StartGRPCServer listens on addr and serves s in the background.
func StartGRPCServer(addr string, s Store) (*grpc.Server, net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("grpc listen on %s: %w", addr, err)
	}

	server := grpc.NewServer()
	RegisterStoreServer(server, NewStoreServer(s))

	go func() {
		utils.LogGREEN("gRPC server started @ %s", ln.Addr())
		if err := server.Serve(ln); err != nil {
			utils.LogRED("gRPC server stopped: %v", err)
		}
	}()
	return server, ln, nil
}
