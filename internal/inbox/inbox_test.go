package inbox

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/pkg/models"
)

type memArchive struct {
	mu   sync.Mutex
	err  error
	msgs []models.ContactMessage
}

func (m *memArchive) Record(_ context.Context, msg models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func dialInbox(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", WSHandler(hub))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	var welcome Event
	require.NoError(t, ws.ReadJSON(&welcome))
	assert.Equal(t, "welcome", welcome.Type)
	require.Eventually(t, func() bool { return hub.Stats().Subscribers == 1 }, time.Second, 10*time.Millisecond)
	return ws
}

func TestArchiveBroadcastsRecordedMessages(t *testing.T) {
	hub := NewHub(nil)
	ws := dialInbox(t, hub)

	store := &memArchive{}
	archive := NewArchive(store, hub)
	require.NoError(t, archive.Record(context.Background(), models.ContactMessage{
		ID: "m1", Name: "Ada", Subject: "Hello", Status: "sent",
	}))
	assert.Len(t, store.msgs, 1)

	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev Event
	require.NoError(t, ws.ReadJSON(&ev))
	assert.Equal(t, "contact.message", ev.Type)
	require.NotNil(t, ev.Message)
	assert.Equal(t, "m1", ev.Message.ID)
	assert.Equal(t, "sent", ev.Message.Status)
}

func TestArchiveFailureIsNotAnnounced(t *testing.T) {
	hub := NewHub(nil)
	store := &memArchive{err: errors.New("disk full")}

	err := NewArchive(store, hub).Record(context.Background(), models.ContactMessage{ID: "m1"})
	assert.EqualError(t, err, "disk full")
}

func TestSubscriberRemovedOnClose(t *testing.T) {
	hub := NewHub(nil)
	ws := dialInbox(t, hub)

	require.NoError(t, ws.Close())
	assert.Eventually(t, func() bool { return hub.Stats().Subscribers == 0 }, time.Second, 10*time.Millisecond)
}
