package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWrapsFencedCode(t *testing.T) {
	html, err := New().Render("```typescript\nconst a = 1 < 2;\n```\n")
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, `<div class="code-block">`)
	assert.Contains(t, out, `<code class="language-typescript">`)
	assert.Contains(t, out, "const a = 1 &lt; 2;")
}

func TestRenderDefaultsCodeLanguageToText(t *testing.T) {
	html, err := New().Render("```\nplain\n```\n\n    indented\n")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(string(html), `<code class="language-text">`))
}

func TestRenderHardBreaksAndGFM(t *testing.T) {
	html, err := New().Render("line one\nline two\n\n~~gone~~\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<br")
	assert.Contains(t, out, "<del>gone</del>")
	assert.Contains(t, out, "<table>")
}

func TestRenderHeadingIDsMatchTableOfContents(t *testing.T) {
	body := "# Getting Started\n\n## Key Concepts\n"

	html, err := New().Render(body)
	require.NoError(t, err)

	for _, h := range TableOfContents(body) {
		assert.Contains(t, string(html), `id="`+h.ID+`"`)
	}
}

func TestRenderHeadingIDsSurviveInlineMarkupAndClosingMarkers(t *testing.T) {
	body := "## Use `go test` & *friends*\n\ntext\n\n## Closing ##\n\n> # Quoted\n"

	html, err := New().Render(body)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	require.NoError(t, err)
	ids := map[string]bool{}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids[id] = true
	})

	toc := TableOfContents(body)
	require.Len(t, toc, 2)
	assert.Equal(t, "closing", toc[1].ID)
	for _, h := range toc {
		assert.True(t, ids[h.ID], "no element with id %q", h.ID)
	}
	assert.True(t, ids["quoted"])
}
