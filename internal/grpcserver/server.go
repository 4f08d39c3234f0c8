package grpcserver

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"portfolio/internal/content"
	"portfolio/internal/github"
	"portfolio/pkg/models"
)

type Server struct {
	Registry *content.Registry
	Feed     *github.Feed
}

func NewServer(reg *content.Registry, feed *github.Feed) *Server {
	return &Server{Registry: reg, Feed: feed}
}

func (s *Server) ListPosts(ctx context.Context, req *ListPostsRequest) (*ListPostsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request required")
	}
	tag := strings.TrimSpace(req.Tag)

	posts := s.Registry.Posts()
	if tag != "" {
		posts = slices.DeleteFunc(posts, func(p models.PostSummary) bool {
			return !slices.ContainsFunc(p.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
		})
	}
	return &ListPostsResponse{Total: int32(len(posts)), Items: posts}, nil
}

func (s *Server) GetPost(ctx context.Context, req *GetPostRequest) (*GetPostResponse, error) {
	if req == nil || strings.TrimSpace(req.ID) == "" {
		return nil, status.Error(codes.InvalidArgument, "id required")
	}
	p, ok := s.Registry.Post(strings.TrimSpace(req.ID))
	if !ok {
		return nil, status.Error(codes.NotFound, "Blog post not found")
	}
	return &GetPostResponse{Post: p}, nil
}

func (s *Server) ListServices(ctx context.Context, _ *ListServicesRequest) (*ListServicesResponse, error) {
	return &ListServicesResponse{Items: s.Registry.Services()}, nil
}

func (s *Server) ListProjects(ctx context.Context, req *ListProjectsRequest) (*ListProjectsResponse, error) {
	if s.Feed == nil {
		return nil, status.Error(codes.Unavailable, "project feed not configured")
	}
	if req != nil && req.Restart {
		s.Feed.Restart(ctx)
	}
	st, err := s.Feed.Load(ctx)
	if err != nil {
		return nil, status.FromContextError(err).Err()
	}
	return &ListProjectsResponse{State: st}, nil
}

// UnaryLogger logs each call's method, status code and duration.
func UnaryLogger(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("latency", time.Since(start)),
		}
		switch code {
		case codes.OK, codes.NotFound, codes.InvalidArgument:
			logger.Info("gRPC call", fields...)
		default:
			logger.Warn("gRPC call failed", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
