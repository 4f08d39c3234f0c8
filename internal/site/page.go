package site

import (
	"html/template"

	"portfolio/internal/blog"
	"portfolio/internal/contact"
	"portfolio/internal/github"
	"portfolio/pkg/models"
)

// Section kinds, in the order templates know them.
const (
	KindHero         = "hero"
	KindFeatures     = "features"
	KindIntro        = "intro"
	KindStats        = "stats"
	KindServices     = "services"
	KindCodePreview  = "code-preview"
	KindProjects     = "projects"
	KindPostList     = "post-list"
	KindPostHero     = "post-hero"
	KindTags         = "tags"
	KindShare        = "share"
	KindTOC          = "toc"
	KindBody         = "body"
	KindBackLink     = "back-link"
	KindNotFound     = "not-found"
	KindContactInfo  = "contact-info"
	KindContactForm  = "contact-form"
	KindReadProgress = "reading-progress"
)

// Page is a composed route, ready for a template or a JSON client.
type Page struct {
	Route    string    `json:"route"`
	Path     string    `json:"path"`
	Title    string    `json:"title"`
	Status   int       `json:"status"`
	Nav      []NavItem `json:"nav"`
	Sections []Section `json:"sections"`
	Footer   Footer    `json:"footer"`
}

type Section struct {
	Kind string `json:"kind"`
	Data any    `json:"data,omitempty"`
}

type Link struct {
	Label    string `json:"label"`
	Href     string `json:"href"`
	External bool   `json:"external,omitempty"`
}

type NavItem struct {
	Link
	Active bool `json:"active"`
}

type Footer struct {
	Name       string              `json:"name"`
	Blurb      string              `json:"blurb"`
	QuickLinks []Link              `json:"quick_links"`
	Social     []models.SocialLink `json:"social"`
	Year       int                 `json:"year"`
}

type Hero struct {
	Greeting string        `json:"greeting"`
	Name     string        `json:"name"`
	Role     string        `json:"role"`
	Tagline  string        `json:"tagline"`
	Actions  []Link        `json:"actions"`
	Snippet  template.HTML `json:"snippet"`
}

type Intro struct {
	Heading    string   `json:"heading"`
	Highlight  string   `json:"highlight"`
	Paragraphs []string `json:"paragraphs"`
	Image      string   `json:"image,omitempty"`
}

type CodePreview struct {
	HTML template.HTML `json:"html"`
}

type Projects struct {
	State      github.State `json:"state"`
	RefreshURL string       `json:"refresh_url"`
}

type PostList struct {
	Featured *models.PostSummary `json:"featured,omitempty"`
	Posts    []models.PostSummary `json:"posts"`
}

type PostHero struct {
	models.PostSummary
}

type TOC struct {
	Headings   []models.Heading `json:"headings"`
	SessionURL string           `json:"session_url"`
}

type ReadingProgress struct {
	SessionURL string `json:"session_url"`
}

type Body struct {
	HTML template.HTML `json:"html"`
}

type NotFound struct {
	Message string `json:"message"`
}

type ContactForm struct {
	contact.View
	Action string `json:"action"`
}

type Share struct {
	Links []blog.ShareLink `json:"links"`
}
