// Package repl runs an interactive search loop over a loaded table.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vegasq/catfilter/output"
	"github.com/vegasq/catfilter/query"
	"github.com/vegasq/catfilter/table"
)

// Loader produces the table the REPL searches
type Loader func() (*table.Table, error)

// REPL holds the loaded table and how results are shown
type REPL struct {
	engine *query.Engine
	load   Loader
	format string
	limit  int
	logger *slog.Logger

	table *table.Table
}

// Option configures a REPL
type Option func(*REPL)

// WithFormat selects the output format for results (default "table")
func WithFormat(name string) Option {
	return func(r *REPL) {
		r.format = name
	}
}

// WithLimit caps the number of rows printed per search. Zero means no cap.
func WithLimit(n int) Option {
	return func(r *REPL) {
		r.limit = n
	}
}

// WithLogger sets the logger used for reload failures
func WithLogger(l *slog.Logger) Option {
	return func(r *REPL) {
		r.logger = l
	}
}

// New creates a REPL and loads the table once
func New(engine *query.Engine, load Loader, opts ...Option) (*REPL, error) {
	r := &REPL{
		engine: engine,
		load:   load,
		format: "table",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, err := output.New(r.format, io.Discard); err != nil {
		return nil, err
	}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *REPL) reload() error {
	t, err := r.load()
	if err != nil {
		return err
	}
	r.table = t
	return nil
}

const helpText = `Type a search and press enter. A blank line shows every row.
  text             rows where any column contains text
  key:value ...    rows where every key's column matches its value (* is a wildcard)
Commands:
  :columns         list columns and types
  :explain <q>     show how a search resolves
  :reload          reload the data
  :help            show this help
  :q, exit         quit
Any other line, even one starting with ':', is a search.
`

// Run reads searches from in until EOF or a quit command. Each search runs
// against the loaded table, never against the previous result.
func (r *REPL) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintf(out, "%d rows loaded. Type :help for help, :q to quit.\n", r.table.Len())

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == ":q" || line == "exit" || line == `\q`:
			return nil

		case line == ":help":
			fmt.Fprint(out, helpText)

		case line == ":columns":
			r.print(out, output.SchemaTable(r.table.Columns()))

		case line == ":reload":
			if err := r.reload(); err != nil {
				r.logger.Error("reload_failed", "error", err)
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "%d rows loaded.\n", r.table.Len())

		case line == ":explain" || strings.HasPrefix(line, ":explain "):
			_, exp := r.engine.SearchExplain(r.table, strings.TrimPrefix(line, ":explain"))
			if err := exp.Print(out); err != nil {
				return err
			}

		default:
			result := r.engine.Search(r.table, line)
			if r.limit > 0 {
				result = result.Slice(0, r.limit)
			}
			r.print(out, result)
		}
	}
}

func (r *REPL) print(out io.Writer, t *table.Table) {
	f, err := output.New(r.format, out)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if err := f.Format(t); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}
