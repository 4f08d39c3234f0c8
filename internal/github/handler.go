package github

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Feed *Feed
}

func NewHandler(feed *Feed) *Handler {
	return &Handler{Feed: feed}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.state)            // GET /api/projects
	rg.POST("/refresh", h.refresh) // POST /api/projects/refresh
}

// state reports the feed, starting the first fetch if none has run.
func (h *Handler) state(c *gin.Context) {
	if c.Query("wait") == "true" {
		s, err := h.Feed.Load(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusGatewayTimeout, s)
			return
		}
		c.JSON(http.StatusOK, s)
		return
	}
	if h.Feed.State().Status == StatusIdle {
		h.Feed.Refresh(c.Request.Context())
	}
	c.JSON(http.StatusOK, h.Feed.State())
}

// refresh starts a new fetch. restart=true abandons a running one instead
// of leaving it alone. Browsers posting the retry form go back to the page.
func (h *Handler) refresh(c *gin.Context) {
	started := true
	if c.Query("restart") == "true" {
		h.Feed.Restart(c.Request.Context())
	} else {
		started = h.Feed.Refresh(c.Request.Context())
	}

	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		c.Redirect(http.StatusSeeOther, "/portfolio")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"started": started,
		"state":   h.Feed.State(),
	})
}
