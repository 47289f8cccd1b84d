package server

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "mbdata.SeriesService"

	GetEntitiesMethod      = "/" + ServiceName + "/GetEntities"
	GetSeriesMethod        = "/" + ServiceName + "/GetSeries"
	GetUnifiedSeriesMethod = "/" + ServiceName + "/GetUnifiedSeries"
)

// SeriesServer is the server API of mbdata.SeriesService.
type SeriesServer interface {
	GetEntities(context.Context, *EntitiesRequest) (*EntitiesResponse, error)
	GetSeries(context.Context, *SeriesRequest) (*SeriesResponse, error)
	GetUnifiedSeries(context.Context, *UnifiedSeriesRequest) (*UnifiedSeriesResponse, error)
}

// ServiceDesc describes mbdata.SeriesService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SeriesServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetEntities", Handler: getEntitiesHandler},
		{MethodName: "GetSeries", Handler: getSeriesHandler},
		{MethodName: "GetUnifiedSeries", Handler: getUnifiedSeriesHandler},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterSeriesServer registers srv on s.
func RegisterSeriesServer(s grpc.ServiceRegistrar, srv SeriesServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// NewResponse returns an empty response value for a SeriesService method.
func NewResponse(fullMethod string) (any, bool) {
	switch fullMethod {
	case GetEntitiesMethod:
		return new(EntitiesResponse), true
	case GetSeriesMethod:
		return new(SeriesResponse), true
	case GetUnifiedSeriesMethod:
		return new(UnifiedSeriesResponse), true
	}
	return nil, false
}

func getEntitiesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(EntitiesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeriesServer).GetEntities(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetEntitiesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SeriesServer).GetEntities(ctx, req.(*EntitiesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getSeriesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SeriesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeriesServer).GetSeries(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetSeriesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SeriesServer).GetSeries(ctx, req.(*SeriesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func getUnifiedSeriesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UnifiedSeriesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SeriesServer).GetUnifiedSeries(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetUnifiedSeriesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SeriesServer).GetUnifiedSeries(ctx, req.(*UnifiedSeriesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SeriesClient calls mbdata.SeriesService with the JSON codec.
type SeriesClient struct {
	cc grpc.ClientConnInterface
}

func NewSeriesClient(cc grpc.ClientConnInterface) *SeriesClient {
	return &SeriesClient{cc: cc}
}

func (c *SeriesClient) GetEntities(ctx context.Context, in *EntitiesRequest, opts ...grpc.CallOption) (*EntitiesResponse, error) {
	out := new(EntitiesResponse)
	if err := c.invoke(ctx, GetEntitiesMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SeriesClient) GetSeries(ctx context.Context, in *SeriesRequest, opts ...grpc.CallOption) (*SeriesResponse, error) {
	out := new(SeriesResponse)
	if err := c.invoke(ctx, GetSeriesMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SeriesClient) GetUnifiedSeries(ctx context.Context, in *UnifiedSeriesRequest, opts ...grpc.CallOption) (*UnifiedSeriesResponse, error) {
	out := new(UnifiedSeriesResponse)
	if err := c.invoke(ctx, GetUnifiedSeriesMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SeriesClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
