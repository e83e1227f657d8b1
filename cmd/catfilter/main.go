package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/vegasq/catfilter/internal/logging"
	"github.com/vegasq/catfilter/internal/repl"
	"github.com/vegasq/catfilter/internal/server"
	"github.com/vegasq/catfilter/output"
	"github.com/vegasq/catfilter/query"
	"github.com/vegasq/catfilter/reader"
	"github.com/vegasq/catfilter/table"
)

// config holds the parsed command line
type config struct {
	query            string
	format           string
	limit            int
	schema           bool
	explain          bool
	aliasesFile      string
	noDefaultAliases bool
	delimiter        string
	noHeader         bool
	trim             bool
	interactive      bool
	serve            string
	logLevel         string
	seqURL           string
	filename         string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func newFlagSet(cfg *config, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("catfilter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.query, "q", "", "Search (e.g. \"VSR\" or \"Tuertyp:VSR Dicke:39\")")
	fs.StringVar(&cfg.format, "f", "table", "Output format: "+strings.Join(output.Names, ", "))
	fs.IntVar(&cfg.limit, "limit", 0, "Limit number of rows (0 = unlimited)")
	fs.BoolVar(&cfg.schema, "schema", false, "Show columns and types instead of data")
	fs.BoolVar(&cfg.explain, "explain", false, "Print how the search was resolved to stderr")
	fs.StringVar(&cfg.aliasesFile, "aliases", "", "JSON file of extra column aliases ({\"key\":\"Column\"})")
	fs.BoolVar(&cfg.noDefaultAliases, "no-default-aliases", false, "Do not use the built-in column aliases")
	fs.StringVar(&cfg.delimiter, "delimiter", "", "Field delimiter for text files (default ',' or tab for .tsv)")
	fs.BoolVar(&cfg.noHeader, "no-header", false, "Text files have no header row; columns are named Column1..N")
	fs.BoolVar(&cfg.trim, "trim", false, "Trim whitespace around text cells")
	fs.BoolVar(&cfg.interactive, "i", false, "Interactive search prompt")
	fs.StringVar(&cfg.serve, "serve", "", "Serve the HTTP API on this address (e.g. :8080)")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.seqURL, "seq", "", "Also send logs to a Seq server at this URL")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: catfilter [options] <file>\n\n")
		fmt.Fprintf(stderr, "Search a product catalog (CSV, TSV or Parquet, optionally .lz4 compressed).\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  catfilter -q VSR catalog.csv\n")
		fmt.Fprintf(stderr, "  catfilter -q \"Tuertyp:VSR Dicke:39\" -f csv catalog.parquet\n")
		fmt.Fprintf(stderr, "  catfilter -q \"Artikel:A-*\" \"data/*.csv\"\n")
		fmt.Fprintf(stderr, "  catfilter -schema catalog.parquet\n")
		fmt.Fprintf(stderr, "  catfilter -i catalog.csv\n")
		fmt.Fprintf(stderr, "  catfilter -serve :8080 catalog.parquet\n")
	}
	return fs
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cfg config
	fs := newFlagSet(&cfg, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	// Validate flag values
	if cfg.limit < 0 {
		fmt.Fprintf(stderr, "Error: -limit must be non-negative, got %d\n", cfg.limit)
		return 1
	}

	// Validate flag combinations
	modes := 0
	for _, on := range []bool{cfg.schema, cfg.interactive, cfg.serve != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		fmt.Fprintf(stderr, "Error: -schema, -i and -serve cannot be used together\n")
		return 1
	}
	if modes == 1 && cfg.query != "" {
		fmt.Fprintf(stderr, "Error: -q cannot be combined with -schema, -i or -serve\n")
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Error: missing file argument\n\n")
		fs.Usage()
		return 1
	}
	cfg.filename = fs.Arg(0)

	if _, err := output.New(cfg.format, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts, err := readerOptions(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := logging.SetupLogger(logging.Config{
		Level:  cfg.logLevel,
		SeqURL: cfg.seqURL,
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	engine, err := newEngine(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	load := func() (*table.Table, error) {
		return reader.LoadMultiple(cfg.filename, opts)
	}

	switch {
	case cfg.schema:
		return runSchema(cfg, opts, stdout, stderr)
	case cfg.interactive:
		return runREPL(cfg, engine, load, logger, stdin, stdout, stderr)
	case cfg.serve != "":
		return runServer(cfg, engine, load, logger, stderr)
	}

	t, err := load()
	if err != nil {
		reportLoadError(stderr, cfg.filename, err)
		return 1
	}

	result, exp := engine.SearchExplain(t, cfg.query)
	if cfg.explain {
		if err := exp.Print(stderr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if cfg.limit > 0 {
		result = result.Slice(0, cfg.limit)
	}

	formatter, _ := output.New(cfg.format, stdout)
	if err := formatter.Format(result); err != nil {
		fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
		return 1
	}
	return 0
}

// readerOptions turns the text-file flags into reader options
func readerOptions(cfg config) (reader.Options, error) {
	opts := reader.Options{NoHeader: cfg.noHeader, TrimSpace: cfg.trim}

	switch d := cfg.delimiter; {
	case d == "":
	case d == `\t` || d == "tab":
		opts.Delimiter = '\t'
	case utf8.RuneCountInString(d) == 1:
		opts.Delimiter, _ = utf8.DecodeRuneInString(d)
	default:
		return opts, fmt.Errorf("-delimiter must be a single character, got %q", d)
	}
	return opts, nil
}

// newEngine builds the search engine with the alias flags applied
func newEngine(cfg config, logger *slog.Logger) (*query.Engine, error) {
	aliases := query.DefaultAliases()
	if cfg.noDefaultAliases {
		aliases = query.AliasMap{}
	}

	if cfg.aliasesFile != "" {
		f, err := os.Open(cfg.aliasesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open alias file: %w", err)
		}
		defer func() { _ = f.Close() }()

		extra, err := query.LoadAliases(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.aliasesFile, err)
		}
		aliases = aliases.Merge(extra)
	}

	return query.NewEngine(
		query.WithAliases(aliases),
		query.WithObserver(query.NewLoggingObserver(logger)),
	), nil
}

// runSchema prints the columns of the file, or of the first file a glob matches
func runSchema(cfg config, opts reader.Options, stdout, stderr io.Writer) int {
	filePath := cfg.filename

	// Check if pattern contains glob wildcards
	if strings.ContainsAny(filePath, "*?[") {
		matches, err := filepath.Glob(filePath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid glob pattern: %v\n", err)
			return 1
		}
		if len(matches) == 0 {
			fmt.Fprintf(stderr, "Error: no files match pattern: %s\n", filePath)
			return 1
		}
		filePath = matches[0]
		if len(matches) > 1 {
			fmt.Fprintf(stderr, "# Showing schema from: %s (%d files matched)\n", filePath, len(matches))
		}
	}

	columns, err := reader.SchemaOf(filePath, opts)
	if err != nil {
		reportLoadError(stderr, filePath, err)
		return 1
	}

	formatter, _ := output.New(cfg.format, stdout)
	if err := formatter.Format(output.SchemaTable(columns)); err != nil {
		fmt.Fprintf(stderr, "Error formatting output: %v\n", err)
		return 1
	}
	return 0
}

func runREPL(cfg config, engine *query.Engine, load repl.Loader, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) int {
	r, err := repl.New(engine, load,
		repl.WithFormat(cfg.format),
		repl.WithLimit(cfg.limit),
		repl.WithLogger(logger),
	)
	if err != nil {
		reportLoadError(stderr, cfg.filename, err)
		return 1
	}
	if err := r.Run(stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runServer serves the HTTP API until SIGINT or SIGTERM. The catalog loads in
// the background; the API answers 503 until it is ready.
func runServer(cfg config, engine *query.Engine, load server.Loader, logger *slog.Logger, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := server.NewCatalog(load)
	e := server.New(catalog, engine, logger)
	server.LoadAsync(catalog, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_listening", "addr", cfg.serve)
		errCh <- e.Start(cfg.serve)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func reportLoadError(stderr io.Writer, filename string, err error) {
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintf(stderr, "Error: file '%s' not found\n", filename)
		fmt.Fprintf(stderr, "Please check the file path and try again.\n")
	case errors.Is(err, reader.ErrUnsupportedFormat):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Supported files: .csv, .txt, .tsv, .tab, .parquet (optionally with .lz4)\n")
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
}
