package extract

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultPattern matches the super priority service label.
const DefaultPattern = "super priority"

// Matcher is a case-insensitive predicate over option labels.
type Matcher struct {
	pattern string
	g       glob.Glob
}

// NewMatcher compiles pattern into a Matcher.
//
// A plain pattern matches any label containing it. A pattern with glob
// metacharacters (* ? [ {) must match the whole label.
func NewMatcher(pattern string) (*Matcher, error) {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if p == "" {
		return nil, fmt.Errorf("match pattern cannot be empty")
	}

	expr := p
	if !strings.ContainsAny(p, "*?[{") {
		expr = "*" + glob.QuoteMeta(p) + "*"
	}

	g, err := glob.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid match pattern %q: %w", pattern, err)
	}
	return &Matcher{pattern: p, g: g}, nil
}

// MustMatcher is NewMatcher for patterns known at compile time.
func MustMatcher(pattern string) *Matcher {
	m, err := NewMatcher(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether label satisfies the pattern.
func (m *Matcher) Match(label string) bool {
	return m.g.Match(strings.ToLower(label))
}

// String returns the normalized pattern.
func (m *Matcher) String() string {
	return m.pattern
}
