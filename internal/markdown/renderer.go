// Package markdown turns post bodies into HTML and derives their table of
// contents.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const defaultCodeLanguage = "text"

type Renderer struct {
	md goldmark.Markdown
}

// New returns a renderer with GitHub-flavored syntax and hard line breaks.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				renderer.WithNodeRenderers(
					util.Prioritized(&codeBlockRenderer{}, 100),
				),
			),
		),
	}
}

// Render converts body to HTML. Every heading listed by TableOfContents
// carries that entry's id; other headings get the slug of their text.
func (r *Renderer) Render(body string) (template.HTML, error) {
	src := []byte(body)
	root := r.md.Parser().Parse(text.NewReader(src))
	_, ids := headings(root, src)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}
	// raw HTML is omitted, so heading elements and heading nodes line up
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(i int, s *goquery.Selection) {
		if i < len(ids) && ids[i] != "" {
			s.SetAttr("id", ids[i])
			return
		}
		s.SetAttr("id", Slug(s.Text()))
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize html: %w", err)
	}
	return template.HTML(strings.TrimSpace(out)), nil
}

// codeBlockRenderer wraps code in the site's code-block container with a
// language-tagged code element.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFenced)
	reg.Register(ast.KindCodeBlock, r.renderIndented)
}

func (r *codeBlockRenderer) renderFenced(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))
	if lang == "" {
		lang = defaultCodeLanguage
	}
	writeCodeBlock(w, source, n, lang)
	return ast.WalkSkipChildren, nil
}

func (r *codeBlockRenderer) renderIndented(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	writeCodeBlock(w, source, node, defaultCodeLanguage)
	return ast.WalkSkipChildren, nil
}

func writeCodeBlock(w util.BufWriter, source []byte, n ast.Node, lang string) {
	_, _ = w.WriteString("<div class=\"code-block\">\n<pre><code class=\"language-")
	_, _ = w.Write(util.EscapeHTML([]byte(lang)))
	_, _ = w.WriteString("\">")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	_, _ = w.WriteString("</code></pre>\n</div>\n")
}
