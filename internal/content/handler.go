package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Registry *Registry
}

func NewHandler(reg *Registry) *Handler {
	return &Handler{Registry: reg}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)        // GET /api/posts
	rg.GET("/:id", h.getByID) // GET /api/posts/:id
}

func (h *Handler) list(c *gin.Context) {
	posts := h.Registry.Posts()
	c.JSON(http.StatusOK, gin.H{
		"total": len(posts),
		"items": posts,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	p, ok := h.Registry.Post(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
