package blog

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"portfolio/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// PostSource looks up a rendered post.
type PostSource interface {
	Post(id string) (models.PostDetail, bool)
}

// Client -> server.
type incomingMessage struct {
	Type     string  `json:"type"`
	Entries  []Entry `json:"entries,omitempty"`
	Top      float64 `json:"top,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Viewport float64 `json:"viewport,omitempty"`
}

// Server -> client.
type outgoingMessage struct {
	Type     string           `json:"type"`
	PostID   string           `json:"post_id,omitempty"`
	Headings []models.Heading `json:"headings,omitempty"`
	Active   string           `json:"active,omitempty"`
	Progress *int             `json:"progress,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// Sessions counts open reading sessions per post.
type Sessions struct {
	mu      sync.Mutex
	readers map[string]int
}

type SessionStats struct {
	Sessions int            `json:"sessions"`
	Readers  map[string]int `json:"readers"`
}

func NewSessions() *Sessions {
	return &Sessions{readers: make(map[string]int)}
}

func (s *Sessions) join(id string) {
	s.mu.Lock()
	s.readers[id]++
	s.mu.Unlock()
}

func (s *Sessions) leave(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readers[id]--
	if s.readers[id] <= 0 {
		delete(s.readers, id)
	}
}

func (s *Sessions) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SessionStats{Readers: make(map[string]int, len(s.readers))}
	for id, n := range s.readers {
		st.Readers[id] = n
		st.Sessions += n
	}
	return st
}

// ReadingHandler serves /ws/read/:id. The client streams heading
// positions and scroll metrics; the server answers with the active heading
// and the reading progress, each only when it changes.
func ReadingHandler(posts PostSource, sessions *Sessions, margin Margin, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		id := c.Param("id")
		post, ok := posts.Post(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Debug("Reading session upgrade failed", zap.String("post_id", id), zap.Error(err))
			return
		}

		spy := NewScrollSpy(margin)
		ids := make([]string, 0, len(post.TOC))
		for _, h := range post.TOC {
			ids = append(ids, h.ID)
		}
		spy.Observe(ids...)

		sessions.join(id)
		logger.Debug("Reading session opened", zap.String("post_id", id))
		defer func() {
			spy.Disconnect()
			sessions.leave(id)
			_ = ws.Close()
			logger.Debug("Reading session closed", zap.String("post_id", id))
		}()

		if err := ws.WriteJSON(outgoingMessage{Type: "toc", PostID: id, Headings: post.TOC}); err != nil {
			return
		}

		lastProgress := -1
		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				return
			}

			var msg incomingMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				if ws.WriteJSON(outgoingMessage{Type: "error", Error: "malformed message"}) != nil {
					return
				}
				continue
			}

			var out *outgoingMessage
			switch msg.Type {
			case "intersect":
				if active, changed := spy.Update(msg.Entries); changed {
					out = &outgoingMessage{Type: "active", Active: active}
				}
			case "scroll":
				p := int(math.Round(ReadingProgress(msg.Top, msg.Height, msg.Viewport)))
				if p != lastProgress {
					lastProgress = p
					out = &outgoingMessage{Type: "progress", Progress: &p}
				}
			default:
				out = &outgoingMessage{Type: "error", Error: "unknown message type"}
			}

			if out != nil {
				if err := ws.WriteJSON(out); err != nil {
					return
				}
			}
		}
	}
}
