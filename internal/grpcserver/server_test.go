package grpcserver

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"portfolio/internal/content"
	"portfolio/internal/github"
	"portfolio/internal/markdown"
	"portfolio/pkg/models"
)

type staticFetcher []models.ProjectEntry

func (f staticFetcher) FetchProjects(context.Context) ([]models.ProjectEntry, error) {
	return f, nil
}

func newTestClient(t *testing.T) *ContentClient {
	t.Helper()

	reg, err := content.Default(markdown.New())
	require.NoError(t, err)
	feed := github.NewFeed(staticFetcher{{Title: "passpic"}}, time.Second, nil)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterContentServiceServer(srv, NewServer(reg, feed))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewContentClient(conn)
}

func TestListAndGetPosts(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	list, err := client.ListPosts(ctx, &ListPostsRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, list.Total)

	tagged, err := client.ListPosts(ctx, &ListPostsRequest{Tag: "react"})
	require.NoError(t, err)
	assert.NotZero(t, tagged.Total)
	assert.Less(t, tagged.Total, list.Total)

	got, err := client.GetPost(ctx, &GetPostRequest{ID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", got.Post.ID)
	assert.NotEmpty(t, got.Post.TOC)

	_, err = client.GetPost(ctx, &GetPostRequest{ID: "999"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetPost(ctx, &GetPostRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListServicesAndProjects(t *testing.T) {
	client := newTestClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	services, err := client.ListServices(ctx, &ListServicesRequest{})
	require.NoError(t, err)
	require.Len(t, services.Items, 6)
	assert.Equal(t, models.IconCode, services.Items[0].Icon)

	projects, err := client.ListProjects(ctx, &ListProjectsRequest{})
	require.NoError(t, err)
	assert.Equal(t, github.StatusReady, projects.State.Status)
	assert.Equal(t, "passpic", projects.State.Projects[0].Title)
}
