package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial opens a plaintext connection to a trains gRPC server
func Dial(address string, options ...grpc.DialOption) (*grpc.ClientConn, error) {
	options = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, options...)

	return grpc.NewClient(address, options...)
}

func (c *Client) GetTrains(ctx context.Context, from string, to string) (*structpb.Struct, error) {
	request, err := structpb.NewStruct(map[string]any{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return nil, err
	}

	response := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, GetTrainsMethod, request, response); err != nil {
		return nil, err
	}

	return response, nil
}
