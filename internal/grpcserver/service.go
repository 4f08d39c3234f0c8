package grpcserver

import (
	"context"

	"google.golang.org/grpc"

	"portfolio/internal/github"
	"portfolio/pkg/models"
)

const serviceName = "portfolio.ContentService"

type ListPostsRequest struct {
	Tag string `json:"tag,omitempty"`
}

type ListPostsResponse struct {
	Total int32                `json:"total"`
	Items []models.PostSummary `json:"items"`
}

type GetPostRequest struct {
	ID string `json:"id"`
}

type GetPostResponse struct {
	Post models.PostDetail `json:"post"`
}

type ListServicesRequest struct{}

type ListServicesResponse struct {
	Items []models.ServiceOffering `json:"items"`
}

type ListProjectsRequest struct {
	// Restart abandons a running fetch and waits for a fresh one.
	Restart bool `json:"restart,omitempty"`
}

type ListProjectsResponse struct {
	State github.State `json:"state"`
}

type ContentServiceServer interface {
	ListPosts(context.Context, *ListPostsRequest) (*ListPostsResponse, error)
	GetPost(context.Context, *GetPostRequest) (*GetPostResponse, error)
	ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
	ListProjects(context.Context, *ListProjectsRequest) (*ListProjectsResponse, error)
}

var ContentServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ContentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListPosts", Handler: unary("ListPosts", ContentServiceServer.ListPosts)},
		{MethodName: "GetPost", Handler: unary("GetPost", ContentServiceServer.GetPost)},
		{MethodName: "ListServices", Handler: unary("ListServices", ContentServiceServer.ListServices)},
		{MethodName: "ListProjects", Handler: unary("ListProjects", ContentServiceServer.ListProjects)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "portfolio/content",
}

func RegisterContentServiceServer(s grpc.ServiceRegistrar, srv ContentServiceServer) {
	s.RegisterService(&ContentServiceDesc, srv)
}

func unary[Req, Resp any](method string, call func(ContentServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	fullMethod := "/" + serviceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ContentServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ContentServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ContentClient calls ContentService over a connection using the JSON codec.
type ContentClient struct {
	cc grpc.ClientConnInterface
}

func NewContentClient(cc grpc.ClientConnInterface) *ContentClient {
	return &ContentClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ContentClient) ListPosts(ctx context.Context, in *ListPostsRequest, opts ...grpc.CallOption) (*ListPostsResponse, error) {
	return invoke[ListPostsResponse](ctx, c.cc, "ListPosts", in, opts)
}

func (c *ContentClient) GetPost(ctx context.Context, in *GetPostRequest, opts ...grpc.CallOption) (*GetPostResponse, error) {
	return invoke[GetPostResponse](ctx, c.cc, "GetPost", in, opts)
}

func (c *ContentClient) ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error) {
	return invoke[ListServicesResponse](ctx, c.cc, "ListServices", in, opts)
}

func (c *ContentClient) ListProjects(ctx context.Context, in *ListProjectsRequest, opts ...grpc.CallOption) (*ListProjectsResponse, error) {
	return invoke[ListProjectsResponse](ctx, c.cc, "ListProjects", in, opts)
}
