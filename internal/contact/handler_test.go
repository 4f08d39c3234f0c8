package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/pkg/database"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "contact.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewRepo(db)
}

func newTestRouter(t *testing.T, d Deliverer) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newTestRepo(t)
	flows := NewFlows(d, repo, FlowOptions{}, nil)
	t.Cleanup(flows.Close)
	h := NewHandler(flows, repo, nil)

	r := gin.New()
	h.RegisterRoutes(&r.RouterGroup)
	h.RegisterAdminRoutes(r.Group("/admin"))
	r.GET("/contact", func(c *gin.Context) { c.JSON(http.StatusOK, h.View(c)) })
	return r, h
}

func postForm(r http.Handler, form url.Values, accept string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var fullForm = url.Values{
	"name":    {"Ada"},
	"email":   {"ada@example.com"},
	"subject": {"Hello"},
	"message": {"Let's talk"},
}

func TestPostContactJSON(t *testing.T) {
	d := &fakeDeliverer{mode: "emailjs"}
	r, _ := newTestRouter(t, d)

	w := postForm(r, fullForm, "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, StatusSent, res.Status)
	assert.True(t, res.Acknowledged)
	assert.Equal(t, 1, d.count())
}

func TestPostContactJSONWithoutCookieKeepsNoFlow(t *testing.T) {
	d := &fakeDeliverer{mode: "emailjs"}
	r, h := newTestRouter(t, d)

	for i := 0; i < 3; i++ {
		w := postForm(r, fullForm, "application/json")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	}
	assert.Equal(t, 3, d.count())
	assert.Zero(t, h.Flows.Len())
}

func TestPostContactMissingFieldRepopulatesForm(t *testing.T) {
	d := &fakeDeliverer{mode: "emailjs"}
	r, _ := newTestRouter(t, d)

	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}}
	w := postForm(r, form, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/contact", w.Header().Get("Location"))
	assert.Zero(t, d.count())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var view View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Ada", view.Draft.Name)
	assert.Equal(t, "subject is required", view.Error)
}

func TestPostContactMailtoRedirects(t *testing.T) {
	r, _ := newTestRouter(t, &Mailto{Recipient: "me@example.com"})

	w := postForm(r, fullForm, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "mailto:me@example.com?subject=Hello&body="))
}

func TestAdminMessagesListsArchive(t *testing.T) {
	r, h := newTestRouter(t, &Mailto{Recipient: "me@example.com"})

	postForm(r, fullForm, "")
	postForm(r, url.Values{"name": {"x"}}, "")

	n, err := h.Repo.Count(context.Background())
	require.NoError(t, err)
	// blank submissions never reach delivery, so they are not archived
	assert.Equal(t, 1, n)

	req := httptest.NewRequest(http.MethodGet, "/admin/messages?status=handed_off", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total int `json:"total"`
		Items []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Ada", body.Items[0].Name)
}
