package site

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/blog"
	"portfolio/internal/content"
	"portfolio/internal/contact"
	"portfolio/internal/github"
	"portfolio/internal/markdown"
)

// ProjectSource supplies the portfolio's project list.
type ProjectSource interface {
	Load(ctx context.Context) (github.State, error)
}

// Composer builds one Page per route from the content registry and the
// project feed.
type Composer struct {
	reg      *content.Registry
	projects ProjectSource
	baseURL  string
	logger   *zap.Logger

	heroSnippet     template.HTML
	servicesSnippet template.HTML
}

func NewComposer(reg *content.Registry, projects ProjectSource, md *markdown.Renderer, baseURL string, logger *zap.Logger) (*Composer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	hero, err := md.Render(heroSnippet)
	if err != nil {
		return nil, err
	}
	services, err := md.Render(servicesSnippet)
	if err != nil {
		return nil, err
	}
	return &Composer{
		reg:             reg,
		projects:        projects,
		baseURL:         strings.TrimRight(baseURL, "/"),
		logger:          logger,
		heroSnippet:     hero,
		servicesSnippet: services,
	}, nil
}

// Compose dispatches on the route. The contact view is only used for
// RouteContact.
func (c *Composer) Compose(ctx context.Context, route Route, param string, view contact.View) Page {
	switch route {
	case RouteHome:
		return c.Home()
	case RouteAbout:
		return c.About()
	case RouteServices:
		return c.Services()
	case RoutePortfolio:
		return c.Portfolio(ctx)
	case RouteBlog:
		return c.Blog()
	case RouteBlogPost:
		return c.BlogPost(param)
	case RouteContact:
		return c.Contact(view)
	}
	return c.NotFound()
}

func (c *Composer) page(route Route, param, title string, sections ...Section) Page {
	profile := c.reg.Profile()
	if title == "" {
		title = profile.Name
	} else {
		title = title + " | " + profile.Name
	}
	return Page{
		Route:    route.String(),
		Path:     Path(route, param),
		Title:    title,
		Status:   http.StatusOK,
		Nav:      Nav(route),
		Sections: sections,
		Footer: Footer{
			Name:       strings.ToUpper(profile.Name),
			Blurb:      footerBlurb,
			QuickLinks: quickLinks(),
			Social:     c.reg.SocialLinks(),
			Year:       time.Now().Year(),
		},
	}
}

func (c *Composer) Home() Page {
	profile := c.reg.Profile()
	return c.page(RouteHome, "", "",
		Section{Kind: KindHero, Data: Hero{
			Greeting: heroGreeting,
			Name:     strings.ToUpper(profile.Name),
			Role:     profile.Role,
			Tagline:  profile.Tagline,
			Actions: []Link{
				{Label: "View My Work", Href: Path(RoutePortfolio, "")},
				{Label: "Contact Us", Href: Path(RouteContact, "")},
			},
			Snippet: c.heroSnippet,
		}},
		Section{Kind: KindIntro, Data: Intro{Heading: "About", Highlight: aboutHighlight, Paragraphs: []string{aboutSubtitle}}},
		Section{Kind: KindFeatures, Data: c.reg.Features()},
	)
}

func (c *Composer) About() Page {
	profile := c.reg.Profile()
	return c.page(RouteAbout, "", "About",
		Section{Kind: KindIntro, Data: Intro{
			Heading:    "About",
			Highlight:  aboutHighlight,
			Paragraphs: []string{profile.About, aboutSpecialty},
			Image:      aboutImage,
		}},
		Section{Kind: KindStats, Data: profile.Stats},
	)
}

func (c *Composer) Services() Page {
	return c.page(RouteServices, "", "Services",
		Section{Kind: KindIntro, Data: Intro{Heading: "My", Highlight: "Services", Paragraphs: []string{servicesIntro}}},
		Section{Kind: KindServices, Data: c.reg.Services()},
		Section{Kind: KindCodePreview, Data: CodePreview{HTML: c.servicesSnippet}},
	)
}

// Portfolio waits for the current fetch. If ctx ends first the page shows
// whatever state the feed is in, usually loading.
func (c *Composer) Portfolio(ctx context.Context) Page {
	state, err := c.projects.Load(ctx)
	if err != nil {
		c.logger.Debug("Portfolio rendered before the fetch finished", zap.Error(err))
	}
	return c.page(RoutePortfolio, "", "Portfolio",
		Section{Kind: KindIntro, Data: Intro{Heading: "My", Highlight: "Portfolio", Paragraphs: []string{portfolioIntro}}},
		Section{Kind: KindProjects, Data: Projects{State: state, RefreshURL: projectsRefreshTo}},
	)
}

func (c *Composer) Blog() Page {
	posts := c.reg.Posts()
	list := PostList{Posts: posts}
	if len(posts) > 0 {
		featured := posts[0]
		list.Featured = &featured
		list.Posts = posts[1:]
	}
	return c.page(RouteBlog, "", "Blog",
		Section{Kind: KindIntro, Data: Intro{Heading: "Latest", Highlight: "Blog Posts", Paragraphs: []string{blogIntro}}},
		Section{Kind: KindPostList, Data: list},
	)
}

// BlogPost composes a post page, or the not-found composition for an
// unknown id. It never fails.
func (c *Composer) BlogPost(id string) Page {
	back := Section{Kind: KindBackLink, Data: Link{Label: backToBlog, Href: Path(RouteBlog, "")}}

	post, ok := c.reg.Post(id)
	if !ok {
		p := c.page(RouteBlogPost, id, postNotFound,
			Section{Kind: KindNotFound, Data: NotFound{Message: postNotFound}},
			back,
		)
		p.Status = http.StatusNotFound
		return p
	}

	pageURL := c.baseURL + Path(RouteBlogPost, id)
	return c.page(RouteBlogPost, id, post.Title,
		Section{Kind: KindReadProgress, Data: ReadingProgress{SessionURL: "/ws/read/" + id}},
		back,
		Section{Kind: KindPostHero, Data: PostHero{PostSummary: post.PostSummary}},
		Section{Kind: KindTags, Data: post.Tags},
		Section{Kind: KindShare, Data: Share{Links: blog.ShareLinks(pageURL, post.Title)}},
		Section{Kind: KindTOC, Data: TOC{Headings: post.TOC, SessionURL: "/ws/read/" + id}},
		Section{Kind: KindBody, Data: Body{HTML: post.HTML}},
	)
}

func (c *Composer) Contact(view contact.View) Page {
	return c.page(RouteContact, "", "Contact",
		Section{Kind: KindIntro, Data: Intro{Heading: "Get in", Highlight: "Touch", Paragraphs: []string{contactIntro}}},
		Section{Kind: KindContactInfo, Data: c.reg.ContactChannels()},
		Section{Kind: KindContactForm, Data: ContactForm{View: view, Action: Path(RouteContact, "")}},
	)
}

func (c *Composer) NotFound() Page {
	p := c.page(RouteUnknown, "", pageNotFound,
		Section{Kind: KindNotFound, Data: NotFound{Message: pageNotFound}},
		Section{Kind: KindBackLink, Data: Link{Label: backHome, Href: Path(RouteHome, "")}},
	)
	p.Status = http.StatusNotFound
	return p
}
