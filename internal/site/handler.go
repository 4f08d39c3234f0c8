package site

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/internal/contact"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ParseTemplates loads the page templates.
func ParseTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// ContactView supplies the visitor's contact form state.
type ContactView interface {
	View(c *gin.Context) contact.View
}

type Handler struct {
	Composer *Composer
	Contact  ContactView
	Logger   *zap.Logger
}

func NewHandler(composer *Composer, contactView ContactView, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Composer: composer, Contact: contactView, Logger: logger}
}

// RegisterRoutes adds one GET handler per route plus the not-found page.
// The engine must have the templates from ParseTemplates installed.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	static, err := fs.Sub(staticFS, "static")
	if err == nil {
		r.StaticFS("/static", http.FS(static))
	}

	for _, e := range routeTable {
		r.GET(e.pattern, h.page)
	}
	r.NoRoute(h.page)
}

func (h *Handler) page(c *gin.Context) {
	route, param := Resolve(c.Request.URL.Path)

	var view contact.View
	if route == RouteContact && h.Contact != nil {
		view = h.Contact.View(c)
	}

	p := h.Composer.Compose(c.Request.Context(), route, param, view)
	if route == RouteUnknown {
		p.Path = c.Request.URL.Path
	}
	h.render(c, p)
}

func (h *Handler) render(c *gin.Context, p Page) {
	c.Negotiate(p.Status, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: "page",
		HTMLData: p,
		JSONData: p,
	})
}
