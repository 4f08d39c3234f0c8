package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/markdown"
	"portfolio/pkg/models"
)

func newPostsRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reg, err := Default(markdown.New())
	require.NoError(t, err)

	r := gin.New()
	NewHandler(reg).RegisterRoutes(r.Group("/api/posts"))
	return r
}

func TestPostsAPI(t *testing.T) {
	r := newPostsRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Total int                  `json:"total"`
		Items []models.PostSummary `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Total)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/3", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var detail struct {
		ID  string           `json:"id"`
		TOC []models.Heading `json:"toc"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "3", detail.ID)
	assert.NotEmpty(t, detail.TOC)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
