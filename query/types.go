package query

import (
	"fmt"
	"strings"
)

// PlanKind selects how a Plan is evaluated
type PlanKind int

const (
	// GlobalText matches one pattern against every column (OR across columns)
	GlobalText PlanKind = iota

	// CriteriaList matches each criterion against its own column (AND across criteria)
	CriteriaList
)

// String returns the name of the plan kind
func (k PlanKind) String() string {
	switch k {
	case GlobalText:
		return "global_text"
	case CriteriaList:
		return "criteria"
	default:
		return fmt.Sprintf("PlanKind(%d)", int(k))
	}
}

// MarshalText encodes the plan kind by name
func (k PlanKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Criterion is one key:value constraint from the query string
type Criterion struct {
	Key     string `json:"key"`
	Pattern string `json:"pattern"`
}

// String returns the criterion in query syntax
func (c Criterion) String() string {
	return c.Key + ":" + c.Pattern
}

// Plan is the parsed form of a query string.
//
// For GlobalText plans only Text is set; for CriteriaList plans only Criteria
// is set. A Plan is built per search and never stored.
type Plan struct {
	Kind     PlanKind    `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Criteria []Criterion `json:"criteria,omitempty"`
}

// GlobalTextPlan returns a plan matching pattern against every column
func GlobalTextPlan(pattern string) Plan {
	return Plan{Kind: GlobalText, Text: pattern}
}

// CriteriaPlan returns a plan that ANDs the given criteria
func CriteriaPlan(criteria ...Criterion) Plan {
	return Plan{Kind: CriteriaList, Criteria: criteria}
}

// String returns the plan in query syntax
func (p Plan) String() string {
	if p.Kind == GlobalText {
		return p.Text
	}
	parts := make([]string, len(p.Criteria))
	for i, c := range p.Criteria {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
