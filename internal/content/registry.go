// Package content holds the site's static content: profile, blog posts,
// service offerings and contact channels. It is loaded once at startup and
// never mutated afterwards; accessors hand out copies.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/sourcegraph/conc/iter"
	"gopkg.in/yaml.v3"

	"portfolio/internal/markdown"
	"portfolio/pkg/models"
)

//go:embed data
var embedded embed.FS

var yamlFrontmatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

type Registry struct {
	profile  models.Profile
	posts    []models.PostDetail
	byID     map[string]int
	services []models.ServiceOffering
	features []models.Feature
	contact  []models.ContactChannel
	social   []models.SocialLink
}

type siteFile struct {
	Profile  models.Profile           `yaml:"profile"`
	Services []models.ServiceOffering `yaml:"services"`
	Features []models.Feature         `yaml:"features"`
	Contact  []models.ContactChannel  `yaml:"contact"`
	Social   []models.SocialLink      `yaml:"social"`
}

type postMeta struct {
	models.PostSummary `yaml:",inline"`
	Order              int `yaml:"order"`
}

type loadedPost struct {
	detail models.PostDetail
	order  int
	err    error
}

// Default loads the content embedded in the binary.
func Default(md *markdown.Renderer) (*Registry, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("embedded content: %w", err)
	}
	return Load(sub, md)
}

// Load reads site.yaml and posts/*.md from fsys. Post bodies are rendered
// concurrently; listing order follows each post's order field.
func Load(fsys fs.FS, md *markdown.Renderer) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, "site.yaml")
	if err != nil {
		return nil, fmt.Errorf("read site.yaml: %w", err)
	}
	var site siteFile
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("decode site.yaml: %w", err)
	}

	paths, err := fs.Glob(fsys, "posts/*.md")
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	loaded := iter.Map(paths, func(p *string) loadedPost {
		return loadPost(fsys, *p, md)
	})

	sort.SliceStable(loaded, func(i, j int) bool {
		if loaded[i].order != loaded[j].order {
			return loaded[i].order < loaded[j].order
		}
		return loaded[i].detail.ID < loaded[j].detail.ID
	})

	r := &Registry{
		profile:  site.Profile,
		posts:    make([]models.PostDetail, 0, len(loaded)),
		byID:     make(map[string]int, len(loaded)),
		services: site.Services,
		features: site.Features,
		contact:  site.Contact,
		social:   site.Social,
	}
	for _, lp := range loaded {
		if lp.err != nil {
			return nil, lp.err
		}
		if _, dup := r.byID[lp.detail.ID]; dup {
			return nil, fmt.Errorf("duplicate post id %q", lp.detail.ID)
		}
		r.byID[lp.detail.ID] = len(r.posts)
		r.posts = append(r.posts, lp.detail)
	}
	return r, nil
}

func loadPost(fsys fs.FS, p string, md *markdown.Renderer) loadedPost {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return loadedPost{err: fmt.Errorf("read %s: %w", p, err)}
	}

	var meta postMeta
	body, err := frontmatter.Parse(bytes.NewReader(raw), &meta, yamlFrontmatter)
	if err != nil {
		return loadedPost{err: fmt.Errorf("frontmatter %s: %w", p, err)}
	}
	if meta.ID == "" {
		meta.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if strings.TrimSpace(meta.Title) == "" {
		return loadedPost{err: fmt.Errorf("post %s has no title", p)}
	}

	html, err := md.Render(string(body))
	if err != nil {
		return loadedPost{err: fmt.Errorf("render %s: %w", p, err)}
	}

	return loadedPost{
		detail: models.PostDetail{
			PostSummary: meta.PostSummary,
			Body:        string(body),
			HTML:        html,
			TOC:         markdown.TableOfContents(string(body)),
		},
		order: meta.Order,
	}
}

func (r *Registry) Profile() models.Profile {
	p := r.profile
	p.Stats = slices.Clone(p.Stats)
	return p
}

// Posts returns post summaries in listing order.
func (r *Registry) Posts() []models.PostSummary {
	out := make([]models.PostSummary, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, cloneSummary(p.PostSummary))
	}
	return out
}

// Post looks up a post by id. ok is false for unknown ids.
func (r *Registry) Post(id string) (models.PostDetail, bool) {
	i, ok := r.byID[id]
	if !ok {
		return models.PostDetail{}, false
	}
	p := r.posts[i]
	p.PostSummary = cloneSummary(p.PostSummary)
	p.TOC = slices.Clone(p.TOC)
	return p, true
}

func (r *Registry) Services() []models.ServiceOffering {
	out := make([]models.ServiceOffering, 0, len(r.services))
	for _, s := range r.services {
		s.Technologies = slices.Clone(s.Technologies)
		out = append(out, s)
	}
	return out
}

func (r *Registry) Features() []models.Feature {
	return slices.Clone(r.features)
}

func (r *Registry) ContactChannels() []models.ContactChannel {
	return slices.Clone(r.contact)
}

func (r *Registry) SocialLinks() []models.SocialLink {
	return slices.Clone(r.social)
}

func cloneSummary(s models.PostSummary) models.PostSummary {
	s.Tags = slices.Clone(s.Tags)
	return s
}
