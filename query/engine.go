package query

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vegasq/catfilter/table"
)

// Resolution records how one criterion was bound to a column
type Resolution struct {
	Criterion Criterion `json:"criterion"`
	Column    string    `json:"column,omitempty"`
	Tier      MatchTier `json:"tier"`
	Wildcard  bool      `json:"wildcard,omitempty"` // pattern matches the whole field
}

// Skipped reports whether the criterion was ignored because no column matched
func (r Resolution) Skipped() bool {
	return r.Tier == Unresolved
}

// Explanation describes how a plan was evaluated against a table
type Explanation struct {
	Plan        Plan          `json:"plan"`
	Resolutions []Resolution  `json:"resolutions,omitempty"`
	Matched     int           `json:"matched"`
	Total       int           `json:"total"`
	Duration    time.Duration `json:"duration"`
}

// Skipped returns the criteria that did not resolve to any column
func (e Explanation) Skipped() []Criterion {
	var skipped []Criterion
	for _, r := range e.Resolutions {
		if r.Skipped() {
			skipped = append(skipped, r.Criterion)
		}
	}
	return skipped
}

// Engine evaluates plans against tables.
//
// An Engine only holds configuration; it keeps nothing between calls and is
// safe for concurrent use. Each call filters exactly the table it is given.
type Engine struct {
	aliases  AliasMap
	observer Observer
}

// Option configures an Engine
type Option func(*Engine)

// WithAliases replaces the alias map used for column resolution
func WithAliases(aliases AliasMap) Option {
	return func(e *Engine) {
		e.aliases = aliases
	}
}

// WithObserver registers an observer for search events
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// NewEngine creates an engine using DefaultAliases unless overridden
func NewEngine(opts ...Option) *Engine {
	e := &Engine{aliases: DefaultAliases()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aliases returns a copy of the engine's alias map
func (e *Engine) Aliases() AliasMap {
	return AliasMap(nil).Merge(e.aliases)
}

// Execute filters t by plan and returns a new table with t's columns and the
// matching rows in their original order. It never fails: unknown columns are
// ignored and no match yields a table with zero rows. A nil t yields an
// empty table.
func (e *Engine) Execute(t *table.Table, plan Plan) *table.Table {
	out, _ := e.run(t, plan)
	return out
}

// Explain evaluates plan like Execute and reports how it was applied
func (e *Engine) Explain(t *table.Table, plan Plan) Explanation {
	_, exp := e.run(t, plan)
	return exp
}

// Search parses raw and executes it against t. A blank query is "no filter"
// and returns t itself.
func (e *Engine) Search(t *table.Table, raw string) *table.Table {
	out, _ := e.SearchExplain(t, raw)
	return out
}

// SearchExplain is Search that also returns the explanation. For a blank
// query the explanation reports every row as matched.
func (e *Engine) SearchExplain(t *table.Table, raw string) (*table.Table, Explanation) {
	if strings.TrimSpace(raw) == "" {
		if t == nil {
			t = table.Empty()
		}
		return t, Explanation{Plan: GlobalTextPlan(""), Matched: t.Len(), Total: t.Len()}
	}
	return e.run(t, Parse(raw))
}

func (e *Engine) run(t *table.Table, plan Plan) (*table.Table, Explanation) {
	start := time.Now()
	if t == nil {
		t = table.Empty()
	}

	searchID := ""
	if e.observer != nil {
		searchID = uuid.NewString()
	}
	e.emit(EventParse, searchID, plan)

	exp := Explanation{Plan: plan, Total: t.Len()}

	var keep []int
	if plan.Kind == CriteriaList {
		keep, exp.Resolutions = e.filterCriteria(t, plan.Criteria, searchID)
	} else {
		keep = filterGlobal(t, plan.Text)
	}

	out := t.Select(keep)
	exp.Matched = out.Len()
	exp.Duration = time.Since(start)
	e.emit(EventExecute, searchID, exp)

	return out, exp
}

// columnMatcher is a compiled criterion bound to a column position
type columnMatcher struct {
	index   int
	matcher *Matcher
}

// filterCriteria ANDs every resolved criterion. Criteria whose key resolves to
// no column do not constrain the result.
func (e *Engine) filterCriteria(t *table.Table, criteria []Criterion, searchID string) ([]int, []Resolution) {
	columns := t.ColumnNames()
	resolutions := make([]Resolution, 0, len(criteria))
	matchers := make([]columnMatcher, 0, len(criteria))

	for _, c := range criteria {
		name, tier := ResolveColumn(c.Key, columns, e.aliases)
		res := Resolution{Criterion: c, Column: name, Tier: tier}
		if tier != Unresolved {
			m := Compile(c.Pattern)
			res.Wildcard = m.IsWildcard()
			matchers = append(matchers, columnMatcher{index: t.ColumnIndex(name), matcher: m})
		}
		resolutions = append(resolutions, res)
		e.emit(EventResolve, searchID, res)
	}

	keep := make([]int, 0, t.Len())
	for i, row := range t.Rows() {
		if matchesAll(row, matchers) {
			keep = append(keep, i)
		}
	}
	return keep, resolutions
}

func matchesAll(row table.Row, matchers []columnMatcher) bool {
	for _, cm := range matchers {
		if !cm.matcher.Match(row.Text(cm.index)) {
			return false
		}
	}
	return true
}

// filterGlobal keeps rows where any column matches pattern
func filterGlobal(t *table.Table, pattern string) []int {
	m := Compile(pattern)
	keep := make([]int, 0, t.Len())
	for i, row := range t.Rows() {
		for _, cell := range row {
			if m.MatchCell(cell) {
				keep = append(keep, i)
				break
			}
		}
	}
	return keep
}

func (e *Engine) emit(typ EventType, searchID string, data interface{}) {
	if e.observer == nil {
		return
	}
	e.observer.OnEvent(Event{
		Type:      typ,
		SearchID:  searchID,
		Timestamp: time.Now(),
		Data:      data,
	})
}

var defaultEngine = NewEngine()

// Execute filters t by plan using DefaultAliases
func Execute(t *table.Table, plan Plan) *table.Table {
	return defaultEngine.Execute(t, plan)
}

// Search parses raw and filters t using DefaultAliases
func Search(t *table.Table, raw string) *table.Table {
	return defaultEngine.Search(t, raw)
}
