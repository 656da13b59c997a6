package handler

import (
	"context"

	"google.golang.org/grpc"
)

const (
	inventoryServiceName = "inventory.v1.InventoryService"
	saveMethod           = "/" + inventoryServiceName + "/Save"
	lookupMethod         = "/" + inventoryServiceName + "/Lookup"
)

type SaveRequest struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type SaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LookupRequest struct {
	Id string `json:"id"`
}

type LookupResponse struct {
	Found bool   `json:"found"`
	Id    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
}

type InventoryServiceServer interface {
	Save(context.Context, *SaveRequest) (*SaveResponse, error)
	Lookup(context.Context, *LookupRequest) (*LookupResponse, error)
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&inventoryServiceDesc, srv)
}

var inventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: inventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Save", Handler: saveHandler},
		{MethodName: "Lookup", Handler: lookupHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func saveHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SaveRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).Save(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: saveMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).Save(ctx, req.(*SaveRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func lookupHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LookupRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).Lookup(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: lookupMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).Lookup(ctx, req.(*LookupRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// InventoryServiceClient calls the service with the JSON codec.
type InventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryServiceClient(cc grpc.ClientConnInterface) *InventoryServiceClient {
	return &InventoryServiceClient{cc: cc}
}

func (c *InventoryServiceClient) Save(ctx context.Context, in *SaveRequest, opts ...grpc.CallOption) (*SaveResponse, error) {
	out := new(SaveResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, saveMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *InventoryServiceClient) Lookup(ctx context.Context, in *LookupRequest, opts ...grpc.CallOption) (*LookupResponse, error) {
	out := new(LookupResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, lookupMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
