package github

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/pkg/errors"
	"portfolio/pkg/models"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octo/repos", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchProjectsSortsNewestFirstAndAppliesFallbacks(t *testing.T) {
	body := `[
		{"id":1,"name":"x","description":null,"html_url":"https://github.com/octo/x","homepage":null,"topics":[],"created_at":"2024-01-01"},
		{"id":2,"name":"y","description":"d","html_url":"https://github.com/octo/y","homepage":"https://y.dev","topics":["t"],"created_at":"2024-02-01T00:00:00Z"}
	]`
	srv := newTestServer(t, http.StatusOK, body)

	got, err := NewClient(srv.URL, "octo", time.Second, nil).FetchProjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []models.ProjectEntry{
		{Title: "y", Description: "d", Technologies: []string{"t"}, GitHubURL: "https://github.com/octo/y", LiveURL: "https://y.dev"},
		{Title: "x", Description: "No description available", Technologies: []string{"Not specified"}, GitHubURL: "https://github.com/octo/x"},
	}, got)
}

func TestFetchProjectsNonSuccessStatus(t *testing.T) {
	srv := newTestServer(t, http.StatusForbidden, `{"message":"API rate limit exceeded"}`)

	got, err := NewClient(srv.URL, "octo", time.Second, nil).FetchProjects(context.Background())
	require.Error(t, err)
	assert.Nil(t, got)

	var fe *errors.FetchError
	require.True(t, stderrors.As(err, &fe))
	assert.Equal(t, http.StatusForbidden, fe.StatusCode)
	assert.NotEmpty(t, fe.Message)
}

func TestFetchProjectsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "octo", time.Second, nil).FetchProjects(context.Background())

	var fe *errors.FetchError
	require.True(t, stderrors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
	assert.Error(t, fe.Unwrap())
}

func TestFetchProjectsEmptyList(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `[]`)

	got, err := NewClient(srv.URL, "octo", time.Second, nil).FetchProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSortNewestFirstIsStable(t *testing.T) {
	same := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repos := []models.RemoteRepository{
		{ID: 1, Name: "a", CreatedAt: same},
		{ID: 2, Name: "b", CreatedAt: same.Add(time.Hour)},
		{ID: 3, Name: "c", CreatedAt: same},
	}

	SortNewestFirst(repos)

	assert.Equal(t, []int64{2, 1, 3}, []int64{repos[0].ID, repos[1].ID, repos[2].ID})
}

func TestMapProjectIgnoresBlankHomepage(t *testing.T) {
	blank := ""
	p := MapProject(models.RemoteRepository{Name: "z", Homepage: &blank})
	assert.Empty(t, p.LiveURL)
}
