package query

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/vegasq/catfilter/table"
)

// Wildcard matches any sequence of characters inside a pattern
const Wildcard = "*"

// Matcher is a compiled pattern.
//
// Patterns containing Wildcard must match the whole field, ignoring case.
// Patterns without it match any field that contains them, ignoring case.
// Both modes compare Unicode case-folded text, so "ſ" matches "s" and "ς"
// matches "σ" either way.
//
// A Matcher is not safe for concurrent use; compile one per goroutine.
type Matcher struct {
	pattern string
	needle  string         // folded pattern for substring matching
	re      *regexp.Regexp // set for wildcard patterns, runs on folded text
	fold    cases.Caser
}

// Compile compiles a pattern. It never fails: every string is a valid pattern,
// and the empty pattern matches every field.
func Compile(pattern string) *Matcher {
	m := &Matcher{pattern: pattern, fold: cases.Fold()}
	folded := m.fold.String(pattern)
	if strings.Contains(folded, Wildcard) {
		if re, err := regexp.Compile(wildcardExpr(folded)); err == nil {
			m.re = re
			return m
		}
	}
	m.needle = folded
	return m
}

// wildcardExpr builds an anchored expression where each wildcard matches any
// run of characters (newlines included) and everything else is literal. The
// pattern is already folded, so the expression itself is case-sensitive.
func wildcardExpr(pattern string) string {
	parts := strings.Split(pattern, Wildcard)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return "(?s)^" + strings.Join(parts, ".*") + "$"
}

// Match reports whether field satisfies the pattern
func (m *Matcher) Match(field string) bool {
	folded := m.fold.String(field)
	if m.re != nil {
		return m.re.MatchString(folded)
	}
	return strings.Contains(folded, m.needle)
}

// MatchCell matches the text projection of a cell
func (m *Matcher) MatchCell(c table.Cell) bool {
	return m.Match(c.Text)
}

// IsWildcard reports whether the pattern uses whole-field wildcard matching
func (m *Matcher) IsWildcard() bool {
	return m.re != nil
}

// String returns the source pattern
func (m *Matcher) String() string {
	return m.pattern
}
