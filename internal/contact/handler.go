package contact

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio/pkg/errors"
	"portfolio/pkg/models"
)

const sessionCookie = "contact_session"

type Handler struct {
	Flows  *Flows
	Repo   *Repo
	Logger *zap.Logger
}

func NewHandler(flows *Flows, repo *Repo, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Flows: flows, Repo: repo, Logger: logger}
}

// View is the form state a contact page renders.
type View struct {
	Mode         string              `json:"mode"`
	Draft        models.ContactDraft `json:"draft"`
	Submitting   bool                `json:"submitting"`
	Acknowledged bool                `json:"acknowledged"`
	Error        string              `json:"error,omitempty"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.submit)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/messages", h.listMessages)
}

// View returns the visitor's form state, consuming any pending error.
func (h *Handler) View(c *gin.Context) View {
	flow := h.Flows.Get(h.session(c))
	return View{
		Mode:         h.Flows.Mode(),
		Draft:        flow.Draft(),
		Submitting:   flow.Submitting(),
		Acknowledged: flow.Acknowledged(),
		Error:        flow.TakeError(),
	}
}

func (h *Handler) submit(c *gin.Context) {
	wantsJSON := c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON

	var flow *Flow
	if _, err := c.Cookie(sessionCookie); err != nil && wantsJSON {
		// cookieless API clients get their answer in the response and
		// never come back for the form state
		flow = h.Flows.Transient()
		defer flow.Close()
	} else {
		flow = h.Flows.Get(h.session(c))
	}

	// binding fills the fields it finds before checking required ones, so a
	// partial draft survives to repopulate the form; the flow reports what
	// is missing
	var draft models.ContactDraft
	if err := c.ShouldBind(&draft); err != nil {
		h.Logger.Debug("Contact form binding failed", zap.Error(err))
	}
	flow.SetDraft(draft)

	res, err := flow.Submit(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		var ve *errors.ValidationError
		switch {
		case stderrors.As(err, &ve):
			status = http.StatusBadRequest
		case stderrors.Is(err, ErrInFlight):
			status = http.StatusConflict
		}
		h.Logger.Info("Contact submission rejected",
			zap.Int("status", status),
			zap.String("mode", h.Flows.Mode()),
			zap.Error(err),
		)

		if wantsJSON {
			c.JSON(status, gin.H{"error": userMessage(err), "draft": flow.Draft()})
			return
		}
		c.Redirect(http.StatusSeeOther, "/contact")
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, res)
		return
	}
	if res.HandoffURI != "" {
		c.Redirect(http.StatusSeeOther, res.HandoffURI)
		return
	}
	c.Redirect(http.StatusSeeOther, "/contact")
}

func (h *Handler) listMessages(c *gin.Context) {
	q := ListQuery{
		Status: strings.TrimSpace(c.Query("status")),
		Limit:  parseInt(c.Query("limit"), 50),
		Offset: parseInt(c.Query("offset"), 0),
	}

	items, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		h.Logger.Error("List contact messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	total, err := h.Repo.Count(c.Request.Context())
	if err != nil {
		h.Logger.Error("Count contact messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) session(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

func userMessage(err error) string {
	var ve *errors.ValidationError
	if stderrors.As(err, &ve) {
		return ve.Message
	}
	if stderrors.Is(err, ErrInFlight) {
		return ErrInFlight.Message
	}
	return "Failed to send message. Please try again later."
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
