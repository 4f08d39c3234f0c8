package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		path  string
		route Route
		param string
	}{
		{"/", RouteHome, ""},
		{"", RouteHome, ""},
		{"/about", RouteAbout, ""},
		{"/about/", RouteAbout, ""},
		{"/services", RouteServices, ""},
		{"/portfolio", RoutePortfolio, ""},
		{"/blog", RouteBlog, ""},
		{"/blog/", RouteBlog, ""},
		{"/blog/2", RouteBlogPost, "2"},
		{"/blog/999", RouteBlogPost, "999"},
		{"/blog/hello-world/", RouteBlogPost, "hello-world"},
		{"/blog/2?ref=x", RouteBlogPost, "2"},
		{"/contact", RouteContact, ""},
		{"/blog/2/comments", RouteUnknown, ""},
		{"/nope", RouteUnknown, ""},
		{"/About", RouteUnknown, ""},
	}
	for _, tc := range cases {
		route, param := Resolve(tc.path)
		assert.Equal(t, tc.route, route, tc.path)
		assert.Equal(t, tc.param, param, tc.path)
	}
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/blog/3", Path(RouteBlogPost, "3"))
	assert.Equal(t, "/contact", Path(RouteContact, ""))
	assert.Equal(t, "/", Path(RouteUnknown, ""))
	assert.Equal(t, "blog post", RouteBlogPost.String())
}
