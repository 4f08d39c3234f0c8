// Package site maps URLs to pages and renders them.
package site

import "strings"

type Route int

const (
	RouteUnknown Route = iota
	RouteHome
	RouteAbout
	RouteServices
	RoutePortfolio
	RouteBlog
	RouteBlogPost
	RouteContact
)

type routeEntry struct {
	route   Route
	pattern string
	name    string
}

// routeTable is matched in order. A ":" segment captures one path segment.
var routeTable = []routeEntry{
	{RouteHome, "/", "home"},
	{RouteAbout, "/about", "about"},
	{RouteServices, "/services", "services"},
	{RoutePortfolio, "/portfolio", "portfolio"},
	{RouteBlog, "/blog", "blog"},
	{RouteBlogPost, "/blog/:id", "blog post"},
	{RouteContact, "/contact", "contact"},
}

func (r Route) String() string {
	for _, e := range routeTable {
		if e.route == r {
			return e.name
		}
	}
	return "unknown"
}

// Resolve maps a request path to a route and its parameter. It never
// fails: paths outside the table resolve to RouteUnknown. A trailing slash
// is ignored.
func Resolve(path string) (Route, string) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	segs := splitPath(path)
	for _, e := range routeTable {
		if param, ok := match(splitPath(e.pattern), segs); ok {
			return e.route, param
		}
	}
	return RouteUnknown, ""
}

// Path builds the URL for a route.
func Path(r Route, param string) string {
	for _, e := range routeTable {
		if e.route != r {
			continue
		}
		if i := strings.Index(e.pattern, ":"); i >= 0 {
			return e.pattern[:i] + param
		}
		return e.pattern
	}
	return "/"
}

func match(pattern, segs []string) (string, bool) {
	if len(pattern) != len(segs) {
		return "", false
	}
	var param string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return "", false
			}
			param = segs[i]
			continue
		}
		if p != segs[i] {
			return "", false
		}
	}
	return param, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
