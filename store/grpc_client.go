package store

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// GRPCClient talks to a remote rbkv.Store service. Errors come back as gRPC statuses.
type GRPCClient struct {
	conn *grpc.ClientConn
}

// NewGRPCClient connects to addr without transport security. Extra options are applied after the
// defaults.
func NewGRPCClient(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client for %s: %w", addr, err)
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Put(ctx context.Context, key, value string) error {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{key: structpb.NewStringValue(value)}}
	return c.conn.Invoke(ctx, "/"+storeServiceName+"/Put", in, new(emptypb.Empty))
}

func (c *GRPCClient) Get(ctx context.Context, key string) (Record, error) {
	return c.invokeRecord(ctx, "Get", key)
}

func (c *GRPCClient) Delete(ctx context.Context, key string) (Record, error) {
	return c.invokeRecord(ctx, "Delete", key)
}

func (c *GRPCClient) invokeRecord(ctx context.Context, method, key string) (Record, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.conn.Invoke(ctx, "/"+storeServiceName+"/"+method, wrapperspb.String(key), out); err != nil {
		return Record{}, err
	}
	return DecodeRecord(out.GetValue())
}

func (c *GRPCClient) Range(ctx context.Context, from, to string) ([]Record, error) {
	in := &structpb.Struct{Fields: map[string]*structpb.Value{
		"from": structpb.NewStringValue(from),
		"to":   structpb.NewStringValue(to),
	}}
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, "/"+storeServiceName+"/Range", in, out); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		fields := v.GetStructValue().GetFields()
		records = append(records, newRecordAt(
			fields["key"].GetStringValue(),
			fields["value"].GetStringValue(),
			uint32(fields["timestamp"].GetNumberValue()),
		))
	}
	return records, nil
}
