package blog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLinks(t *testing.T) {
	links := ShareLinks("https://example.com/blog/1", "Hello & welcome")
	require.Len(t, links, 3)
	assert.Equal(t, []string{"twitter", "linkedin", "facebook"},
		[]string{links[0].Network, links[1].Network, links[2].Network})

	tw, err := url.Parse(links[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "twitter.com", tw.Host)
	assert.Equal(t, "https://example.com/blog/1", tw.Query().Get("url"))
	assert.Equal(t, "Hello & welcome", tw.Query().Get("text"))

	li, err := url.Parse(links[1].URL)
	require.NoError(t, err)
	assert.Equal(t, "Hello & welcome", li.Query().Get("title"))

	fb, err := url.Parse(links[2].URL)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/blog/1", fb.Query().Get("u"))
}

func TestParseRootMargin(t *testing.T) {
	m, err := ParseRootMargin(DefaultRootMargin)
	require.NoError(t, err)
	assert.InDelta(t, -0.2, m.Top, 1e-9)
	assert.InDelta(t, -0.8, m.Bottom, 1e-9)

	m, err = ParseRootMargin("10%")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, m.Bottom, 1e-9)

	_, err = ParseRootMargin("12px")
	assert.Error(t, err)
	_, err = ParseRootMargin("")
	assert.Error(t, err)
}

func TestScrollSpyReportsChangeOnce(t *testing.T) {
	m, err := ParseRootMargin(DefaultRootMargin)
	require.NoError(t, err)
	spy := NewScrollSpy(m)
	spy.Observe("intro", "setup", "wrap-up")

	// heading straddles the 20% line
	active, changed := spy.Update([]Entry{{ID: "intro", Top: 0.1, Bottom: 0.25}})
	assert.True(t, changed)
	assert.Equal(t, "intro", active)

	_, changed = spy.Update([]Entry{{ID: "intro", Top: 0.1, Bottom: 0.25}})
	assert.False(t, changed)

	// below the band
	_, changed = spy.Update([]Entry{{ID: "setup", Top: 0.6, Bottom: 0.7}})
	assert.False(t, changed)
	assert.Equal(t, "intro", spy.Active())

	yes := true
	active, changed = spy.Update([]Entry{{ID: "setup", Intersecting: &yes}})
	assert.True(t, changed)
	assert.Equal(t, "setup", active)
}

func TestScrollSpyIgnoresUnobservedAndDisconnected(t *testing.T) {
	yes := true
	spy := NewScrollSpy(Margin{})
	spy.Observe("a")

	_, changed := spy.Update([]Entry{{ID: "zzz", Intersecting: &yes}})
	assert.False(t, changed)

	spy.Disconnect()
	_, changed = spy.Update([]Entry{{ID: "a", Intersecting: &yes}})
	assert.False(t, changed)
	assert.Empty(t, spy.Active())

	spy.Observe("b")
	_, changed = spy.Update([]Entry{{ID: "b", Intersecting: &yes}})
	assert.False(t, changed)
}

func TestReadingProgress(t *testing.T) {
	assert.InDelta(t, 0, ReadingProgress(0, 2000, 1000), 1e-9)
	assert.InDelta(t, 50, ReadingProgress(500, 2000, 1000), 1e-9)
	assert.InDelta(t, 100, ReadingProgress(1500, 2000, 1000), 1e-9)
	assert.InDelta(t, 0, ReadingProgress(-10, 2000, 1000), 1e-9)
	assert.InDelta(t, 100, ReadingProgress(0, 800, 1000), 1e-9)
}
