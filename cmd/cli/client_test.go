package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/content"
	"portfolio/internal/markdown"
	"portfolio/pkg/models"
)

func newContentServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, err := content.Default(markdown.New())
	require.NoError(t, err)

	r := gin.New()
	content.NewHandler(reg).RegisterRoutes(r.Group("/api/posts"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestDoJSONSurfacesServerError(t *testing.T) {
	srv := newContentServer(t)

	var out models.PostDetail
	err := doJSON(context.Background(), srv.Client(), http.MethodGet, srv.URL+"/api/posts/999", "", nil, &out)
	require.Error(t, err)

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Blog post not found", apiErr.Message)
}

func TestPostsCommand(t *testing.T) {
	srv := newContentServer(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"posts", "--api", srv.URL, "--tag", "react"})
	t.Cleanup(func() { postsTag = "" })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Building Modern Web Applications")
	assert.Contains(t, out.String(), "Getting Started with Next.js")
	assert.NotContains(t, out.String(), "Mastering TailwindCSS")
}

func TestFilterByTagIgnoresCase(t *testing.T) {
	items := []models.PostSummary{
		{ID: "1", Tags: []string{"React", "Hooks"}},
		{ID: "2", Tags: []string{"Go"}},
	}
	assert.Len(t, filterByTag(items, ""), 2)

	got := filterByTag(items, "react")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Empty(t, filterByTag(items, "rust"))
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")

	_, err := readToken(path)
	require.Error(t, err)

	exp := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	require.NoError(t, saveToken(path, tokenData{Token: "abc", ExpiresAt: exp}))

	token, err := readToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, clearToken(path))
	require.NoError(t, clearToken(path))
	_, err = readToken(path)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	exp := time.Now().Add(-time.Minute).UTC().Format(time.RFC3339)
	require.NoError(t, saveToken(path, tokenData{Token: "abc", ExpiresAt: exp}))

	_, err := readToken(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestWebsocketURL(t *testing.T) {
	u, err := websocketURL("https://example.com", "/ws/ambient", map[string][]string{"scene": {"cube"}})
	require.NoError(t, err)
	assert.Equal(t, "wss://example.com/ws/ambient?scene=cube", u)

	u, err = websocketURL("http://localhost:8080", "/ws/read/2", nil)
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/ws/read/2", u)
}

func TestWriteMessagesCSV(t *testing.T) {
	created := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, writeMessagesCSV(&buf, []models.ContactMessage{{
		ID:        "m1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Subject:   "Hi",
		Message:   "line one\nline two",
		Delivery:  "mailto",
		Status:    "handed_off",
		CreatedAt: created,
	}}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, []string{"m1", "2024-03-15T09:30:00Z", "handed_off", "mailto", "Ada", "ada@example.com", "Hi", "line one\nline two", ""}, rows[1])
}
