package ambient

import (
	"context"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 2 * time.Second
	maxStarCount = 20000
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	Loop   *Loop
	Seed   uint64
	Logger *zap.Logger
}

func NewHandler(loop *Loop, seed uint64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Loop: loop, Seed: seed, Logger: logger}
}

type Stats struct {
	Subscribers int `json:"subscribers"`
}

func (h *Handler) Stats() Stats {
	return Stats{Subscribers: h.Loop.Active()}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stars", h.stars)   // GET /api/ambient/stars
	rg.GET("/scenes", h.scenes) // GET /api/ambient/scenes
}

// FrameMessage is one websocket frame.
type FrameMessage struct {
	Type    string        `json:"type"`
	Scene   Scene         `json:"scene"`
	Seq     uint64        `json:"seq"`
	Elapsed float64       `json:"elapsed"`
	Pose    Pose          `json:"pose"`
	Shapes  []ShapeOffset `json:"shapes"`
}

func (h *Handler) stars(c *gin.Context) {
	opts := DefaultStarfield()
	if s := c.Query("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > maxStarCount {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 0 and 20000"})
			return
		}
		opts.Count = n
	}
	seed := h.Seed
	if s := c.Query("seed"); s != "" {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "seed must be a non-negative integer"})
			return
		}
		seed = n
	}

	c.JSON(http.StatusOK, gin.H{
		"options": opts,
		"seed":    seed,
		"stars":   GenerateStarfield(opts, seed),
	})
}

func (h *Handler) scenes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenes": Scenes()})
}

// WSHandler streams frames for one scene until the client goes away.
func (h *Handler) WSHandler(c *gin.Context) {
	scene := SceneLaptop
	if s := c.Query("scene"); s != "" {
		parsed, err := ParseScene(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		scene = parsed
	}
	motion, err := NewMotion(scene)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// the read side only exists to notice the client leaving
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	shapes := NewFloatingShapes(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	h.Logger.Debug("Ambient stream opened", zap.String("scene", string(scene)))

	sub := h.Loop.Subscribe(ctx, func(f Frame) error {
		msg := FrameMessage{
			Type:    "frame",
			Scene:   scene,
			Seq:     f.Seq,
			Elapsed: f.Elapsed,
			Pose:    motion.Advance(f.Elapsed, f.Delta),
			Shapes:  make([]ShapeOffset, len(shapes)),
		}
		for i, s := range shapes {
			msg.Shapes[i] = s.At(f.Elapsed)
		}
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		return ws.WriteJSON(msg)
	})

	<-sub.Done()
	sub.Stop()
	h.Logger.Debug("Ambient stream closed", zap.String("scene", string(scene)), zap.Error(sub.Err()))
}
