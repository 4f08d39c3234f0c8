package blog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

const DefaultRootMargin = "-20% 0px -80% 0px"

// Margin is a root margin reduced to its vertical parts, as fractions of
// the viewport height. Negative values shrink the band.
type Margin struct {
	Top    float64
	Bottom float64
}

// ParseRootMargin reads a CSS-style margin ("top right bottom left", one to
// four values). Only percentages and 0px are meaningful for the vertical
// edges; horizontal edges are ignored.
func ParseRootMargin(s string) (Margin, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 || len(parts) > 4 {
		return Margin{}, fmt.Errorf("root margin %q: want 1 to 4 values", s)
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseMarginValue(p)
		if err != nil {
			return Margin{}, fmt.Errorf("root margin %q: %w", s, err)
		}
		vals[i] = v
	}
	m := Margin{Top: vals[0], Bottom: vals[0]}
	if len(vals) >= 3 {
		m.Bottom = vals[2]
	}
	return m, nil
}

func parseMarginValue(p string) (float64, error) {
	switch {
	case strings.HasSuffix(p, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	case p == "0" || p == "0px":
		return 0, nil
	case strings.HasSuffix(p, "px"):
		return 0, fmt.Errorf("pixel margin %q is not supported", p)
	default:
		return 0, fmt.Errorf("bad margin value %q", p)
	}
}

// Entry reports where a heading sits in the viewport. Top and Bottom are
// fractions of the viewport height measured from its top edge. When
// Intersecting is set it wins over the geometry.
type Entry struct {
	ID           string  `json:"id"`
	Intersecting *bool   `json:"intersecting,omitempty"`
	Top          float64 `json:"top"`
	Bottom       float64 `json:"bottom"`
}

func (m Margin) intersects(e Entry) bool {
	if e.Intersecting != nil {
		return *e.Intersecting
	}
	bandTop := -m.Top
	bandBottom := 1 + m.Bottom
	return e.Bottom >= bandTop && e.Top <= bandBottom
}

// ScrollSpy tracks which table-of-contents heading is active.
type ScrollSpy struct {
	margin Margin

	mu       sync.Mutex
	observed map[string]struct{}
	active   string
	closed   bool
}

func NewScrollSpy(margin Margin) *ScrollSpy {
	return &ScrollSpy{
		margin:   margin,
		observed: make(map[string]struct{}),
	}
}

func (s *ScrollSpy) Observe(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, id := range ids {
		s.observed[id] = struct{}{}
	}
}

// Update applies a batch of entries. The last intersecting observed heading
// becomes active. It returns the active id and whether it changed.
func (s *ScrollSpy) Update(entries []Entry) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.active, false
	}

	next := s.active
	for _, e := range entries {
		if _, ok := s.observed[e.ID]; !ok {
			continue
		}
		if s.margin.intersects(e) {
			next = e.ID
		}
	}
	if next == s.active {
		return s.active, false
	}
	s.active = next
	return next, true
}

func (s *ScrollSpy) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Disconnect stops observation. Later entries are ignored.
func (s *ScrollSpy) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	clear(s.observed)
}
