package query

import (
	"strings"
)

// criterionSeparator splits a token into column key and pattern
const criterionSeparator = ":"

// Tokenize splits a query string on whitespace
func Tokenize(raw string) []string {
	return strings.Fields(raw)
}

// Parse turns a raw query string into a Plan.
//
// Tokens of the form key:value (split on the first colon, both halves
// non-empty) become criteria. Tokens that are not key:value are dropped when
// at least one criterion exists. When no token is a criterion, the whole
// trimmed string becomes a free-text plan, inner whitespace included.
//
// Parse never fails. A blank query yields GlobalTextPlan(""), which matches
// every row; callers that want "no filter" semantics use Engine.Search.
func Parse(raw string) Plan {
	trimmed := strings.TrimSpace(raw)

	var criteria []Criterion
	for _, tok := range Tokenize(trimmed) {
		if c, ok := parseCriterion(tok); ok {
			criteria = append(criteria, c)
		}
	}

	if len(criteria) > 0 {
		return CriteriaPlan(criteria...)
	}
	return GlobalTextPlan(trimmed)
}

// parseCriterion splits a token on its first colon
func parseCriterion(token string) (Criterion, bool) {
	key, value, found := strings.Cut(token, criterionSeparator)
	if !found || key == "" || value == "" {
		return Criterion{}, false
	}
	return Criterion{Key: key, Pattern: value}, true
}
