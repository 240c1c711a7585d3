package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "encounterforge.v1alpha1.EncounterService"

// Full method names
const (
	MethodGenerateEncounter = "/" + ServiceName + "/GenerateEncounter"
	MethodGenerateTreasure  = "/" + ServiceName + "/GenerateTreasure"
	MethodGetEncounter      = "/" + ServiceName + "/GetEncounter"
	MethodListEncounters    = "/" + ServiceName + "/ListEncounters"
	MethodDeleteEncounter   = "/" + ServiceName + "/DeleteEncounter"
	MethodListCreatures     = "/" + ServiceName + "/ListCreatures"
)

// EncounterServiceServer is the server API for EncounterService
type EncounterServiceServer interface {
	GenerateEncounter(context.Context, *GenerateEncounterRequest) (*GenerateEncounterResponse, error)
	GenerateTreasure(context.Context, *GenerateTreasureRequest) (*GenerateTreasureResponse, error)
	GetEncounter(context.Context, *GetEncounterRequest) (*GetEncounterResponse, error)
	ListEncounters(context.Context, *ListEncountersRequest) (*ListEncountersResponse, error)
	DeleteEncounter(context.Context, *DeleteEncounterRequest) (*DeleteEncounterResponse, error)
	ListCreatures(context.Context, *ListCreaturesRequest) (*ListCreaturesResponse, error)
}

// RegisterEncounterServiceServer registers srv on s
func RegisterEncounterServiceServer(s grpc.ServiceRegistrar, srv EncounterServiceServer) {
	s.RegisterService(&EncounterServiceDesc, srv)
}

// unary builds a method handler that decodes Req and dispatches through the
// interceptor chain
func unary[Req any, Resp any](
	method string,
	call func(EncounterServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EncounterServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EncounterServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EncounterServiceDesc is the grpc.ServiceDesc for EncounterService
var EncounterServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EncounterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GenerateEncounter",
			Handler:    unary(MethodGenerateEncounter, EncounterServiceServer.GenerateEncounter),
		},
		{
			MethodName: "GenerateTreasure",
			Handler:    unary(MethodGenerateTreasure, EncounterServiceServer.GenerateTreasure),
		},
		{
			MethodName: "GetEncounter",
			Handler:    unary(MethodGetEncounter, EncounterServiceServer.GetEncounter),
		},
		{
			MethodName: "ListEncounters",
			Handler:    unary(MethodListEncounters, EncounterServiceServer.ListEncounters),
		},
		{
			MethodName: "DeleteEncounter",
			Handler:    unary(MethodDeleteEncounter, EncounterServiceServer.DeleteEncounter),
		},
		{
			MethodName: "ListCreatures",
			Handler:    unary(MethodListCreatures, EncounterServiceServer.ListCreatures),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "encounterforge/v1alpha1/encounter.json",
}

// EncounterServiceClient is the client API for EncounterService
type EncounterServiceClient interface {
	GenerateEncounter(ctx context.Context, in *GenerateEncounterRequest, opts ...grpc.CallOption) (*GenerateEncounterResponse, error)
	GenerateTreasure(ctx context.Context, in *GenerateTreasureRequest, opts ...grpc.CallOption) (*GenerateTreasureResponse, error)
	GetEncounter(ctx context.Context, in *GetEncounterRequest, opts ...grpc.CallOption) (*GetEncounterResponse, error)
	ListEncounters(ctx context.Context, in *ListEncountersRequest, opts ...grpc.CallOption) (*ListEncountersResponse, error)
	DeleteEncounter(ctx context.Context, in *DeleteEncounterRequest, opts ...grpc.CallOption) (*DeleteEncounterResponse, error)
	ListCreatures(ctx context.Context, in *ListCreaturesRequest, opts ...grpc.CallOption) (*ListCreaturesResponse, error)
}

type encounterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEncounterServiceClient creates a client that sends JSON-encoded messages
func NewEncounterServiceClient(cc grpc.ClientConnInterface) EncounterServiceClient {
	return &encounterServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *encounterServiceClient) GenerateEncounter(ctx context.Context, in *GenerateEncounterRequest, opts ...grpc.CallOption) (*GenerateEncounterResponse, error) {
	return invoke[GenerateEncounterResponse](ctx, c.cc, MethodGenerateEncounter, in, opts)
}

func (c *encounterServiceClient) GenerateTreasure(ctx context.Context, in *GenerateTreasureRequest, opts ...grpc.CallOption) (*GenerateTreasureResponse, error) {
	return invoke[GenerateTreasureResponse](ctx, c.cc, MethodGenerateTreasure, in, opts)
}

func (c *encounterServiceClient) GetEncounter(ctx context.Context, in *GetEncounterRequest, opts ...grpc.CallOption) (*GetEncounterResponse, error) {
	return invoke[GetEncounterResponse](ctx, c.cc, MethodGetEncounter, in, opts)
}

func (c *encounterServiceClient) ListEncounters(ctx context.Context, in *ListEncountersRequest, opts ...grpc.CallOption) (*ListEncountersResponse, error) {
	return invoke[ListEncountersResponse](ctx, c.cc, MethodListEncounters, in, opts)
}

func (c *encounterServiceClient) DeleteEncounter(ctx context.Context, in *DeleteEncounterRequest, opts ...grpc.CallOption) (*DeleteEncounterResponse, error) {
	return invoke[DeleteEncounterResponse](ctx, c.cc, MethodDeleteEncounter, in, opts)
}

func (c *encounterServiceClient) ListCreatures(ctx context.Context, in *ListCreaturesRequest, opts ...grpc.CallOption) (*ListCreaturesResponse, error) {
	return invoke[ListCreaturesResponse](ctx, c.cc, MethodListCreatures, in, opts)
}
