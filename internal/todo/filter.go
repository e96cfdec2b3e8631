package todo

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Filter selects tasks whose text matches a glob pattern such as "*milk*" or
// "Walk the {dog,cat}". Matching is case-insensitive.
type Filter struct {
	pattern string
	g       glob.Glob
}

// NewFilter compiles pattern. An empty pattern matches everything.
func NewFilter(pattern string) (*Filter, error) {
	f := &Filter{pattern: pattern}
	if pattern == "" {
		return f, nil
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	f.g = g
	return f, nil
}

// Pattern returns the pattern the filter was built from.
func (f *Filter) Pattern() string {
	return f.pattern
}

// Match reports whether the task's text matches.
func (f *Filter) Match(t Task) bool {
	if f.g == nil {
		return true
	}
	return f.g.Match(strings.ToLower(t.Text))
}

// Apply returns the matching tasks in their original order.
func (f *Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
