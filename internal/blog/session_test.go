package blog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/pkg/models"
)

type fakePosts map[string]models.PostDetail

func (f fakePosts) Post(id string) (models.PostDetail, bool) {
	p, ok := f[id]
	return p, ok
}

func newReadingServer(t *testing.T, sessions *Sessions) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	posts := fakePosts{
		"2": {
			PostSummary: models.PostSummary{ID: "2", Title: "Go"},
			TOC: []models.Heading{
				{ID: "intro", Title: "Intro", Level: 1},
				{ID: "details", Title: "Details", Level: 2},
			},
		},
	}
	m, err := ParseRootMargin(DefaultRootMargin)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ws/read/:id", ReadingHandler(posts, sessions, m, nil))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	ws, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	return ws
}

func TestReadingSessionPushesActiveAndProgress(t *testing.T) {
	sessions := NewSessions()
	srv := newReadingServer(t, sessions)
	ws := dial(t, srv, "/ws/read/2")

	var msg outgoingMessage
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, "toc", msg.Type)
	assert.Len(t, msg.Headings, 2)

	require.Eventually(t, func() bool {
		return sessions.Stats().Readers["2"] == 1
	}, time.Second, 5*time.Millisecond)

	entry := map[string]any{"type": "intersect", "entries": []map[string]any{{"id": "details", "top": 0.1, "bottom": 0.3}}}
	require.NoError(t, ws.WriteJSON(entry))
	msg = outgoingMessage{}
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, "active", msg.Type)
	assert.Equal(t, "details", msg.Active)

	// unchanged active heading produces no reply; the next reply is progress
	require.NoError(t, ws.WriteJSON(entry))
	require.NoError(t, ws.WriteJSON(map[string]any{"type": "scroll", "top": 250, "height": 2000, "viewport": 1000}))
	msg = outgoingMessage{}
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, "progress", msg.Type)
	require.NotNil(t, msg.Progress)
	assert.Equal(t, 25, *msg.Progress)

	require.NoError(t, ws.Close())
	require.Eventually(t, func() bool {
		return sessions.Stats().Sessions == 0
	}, time.Second, 5*time.Millisecond)
}

func TestReadingSessionUnknownPost(t *testing.T) {
	srv := newReadingServer(t, NewSessions())

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/read/999"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
