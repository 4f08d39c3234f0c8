package site

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// navRoutes are the top-level routes shown in the navigation bar.
var navRoutes = []Route{RouteHome, RouteAbout, RouteServices, RoutePortfolio, RouteBlog, RouteContact}

// footerRoutes is the footer's quick-link order.
var footerRoutes = []Route{RouteAbout, RoutePortfolio, RouteServices, RouteBlog, RouteContact}

// label title-cases the route name. Casers keep state, so each call gets
// its own.
func label(r Route) string {
	return cases.Title(language.English).String(r.String())
}

// Nav marks the current route's section active. A post page highlights
// Blog.
func Nav(current Route) []NavItem {
	if current == RouteBlogPost {
		current = RouteBlog
	}
	items := make([]NavItem, 0, len(navRoutes))
	for _, r := range navRoutes {
		items = append(items, NavItem{
			Link:   Link{Label: label(r), Href: Path(r, "")},
			Active: r == current,
		})
	}
	return items
}

func quickLinks() []Link {
	links := make([]Link, 0, len(footerRoutes))
	for _, r := range footerRoutes {
		links = append(links, Link{Label: label(r), Href: Path(r, "")})
	}
	return links
}
