package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"portfolio/pkg/models"
)

var (
	// optional closing run of '#' is not part of the title
	headingLine = regexp.MustCompile(`^(#{1,6})[ \t]+(.*?)(?:[ \t]+#+)?[ \t]*$`)
	whitespace  = regexp.MustCompile(`\s+`)

	tocParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
)

// TableOfContents lists the headings of body in document order.
//
// A heading is a line that starts at column 0 with one to six '#' markers
// followed by whitespace and a non-blank title. "#foo" is not a heading, and
// neither is anything goldmark does not render as one: lines inside code
// blocks, block quotes and list items are skipped. The title is the rest of
// the line verbatim, minus any closing '#' run; inline markup is kept.
func TableOfContents(body string) []models.Heading {
	src := []byte(body)
	toc, _ := headings(tocParser.Parse(text.NewReader(src)), src)
	return toc
}

// headings walks every heading node of doc. ids has one entry per node in
// document order: the TOC id for headings listed in toc, "" for the rest.
func headings(doc ast.Node, src []byte) (toc []models.Heading, ids []string) {
	toc = make([]models.Heading, 0)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		title, ok := atxTitle(h, src)
		if !ok {
			ids = append(ids, "")
			return ast.WalkSkipChildren, nil
		}
		id := Slug(title)
		toc = append(toc, models.Heading{ID: id, Title: title, Level: h.Level})
		ids = append(ids, id)
		return ast.WalkSkipChildren, nil
	})
	return toc, ids
}

// atxTitle reads the source line a heading node came from.
func atxTitle(h *ast.Heading, src []byte) (string, bool) {
	lines := h.Lines()
	if lines.Len() == 0 {
		return "", false
	}
	at := lines.At(0).Start
	start := bytes.LastIndexByte(src[:at], '\n') + 1
	end := len(src)
	if i := bytes.IndexByte(src[at:], '\n'); i >= 0 {
		end = at + i
	}
	line := strings.TrimRight(string(src[start:end]), "\r")

	m := headingLine.FindStringSubmatch(line)
	if m == nil || len(m[1]) != h.Level || strings.TrimSpace(m[2]) == "" {
		return "", false
	}
	return m[2], true
}

// Slug lower-cases title and joins its words with '-'.
func Slug(title string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}
