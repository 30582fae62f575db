package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/docquery-io/docquery"
	"github.com/docquery-io/docquery/internal/config"
	logpkg "github.com/docquery-io/docquery/internal/logger"
	"github.com/docquery-io/docquery/internal/version"
	"github.com/docquery-io/docquery/schema"
)

// multiFlag collects repeated flag values.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

func main() {
	var schemas multiFlag
	var (
		cfgPath    = flag.String("config", "", "lint config YAML (optional)")
		collection = flag.String("collection", "", "collection to validate against")
		filterExpr = flag.String("filter", "", "filter expression to validate")
		sortExpr   = flag.String("sort", "", "sort expression to validate")
		evalExpr   = flag.String("eval", "", "eval expression to validate")
		level      = flag.String("log-level", "", "log level override")
	)
	flag.Var(&schemas, "schema", "collection definition YAML (repeatable)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fatal("load config: %v", err)
		}
	}
	if len(schemas) > 0 {
		cfg.Schemas = schemas
	}
	if *level != "" {
		cfg.Logging.Level = *level
	}

	logger, err := logpkg.New(config.GetEnv(), cfg.Logging.Level)
	if err != nil {
		fatal("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("docquery-lint",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Strings("schemas", cfg.Schemas),
	)

	if len(cfg.Schemas) == 0 {
		fatal("at least one -schema file is required")
	}
	if *collection == "" {
		fatal("-collection is required")
	}
	if *filterExpr == "" && *sortExpr == "" && *evalExpr == "" {
		fatal("nothing to validate: pass -filter, -sort or -eval")
	}

	reg, err := schema.LoadRegistry(cfg.Schemas...)
	if err != nil {
		fatal("load schemas: %v", err)
	}

	v := docquery.New(reg,
		docquery.WithLogger(logger),
		docquery.WithMaxJoinDepth(cfg.Validation.MaxJoinDepth),
	)

	failed := false
	check := func(grammar, expr string, fn func(string, string) error) {
		if expr == "" {
			return
		}
		if err := fn(*collection, expr); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", grammar, err)
			failed = true
			return
		}
		fmt.Printf("%s: ok\n", grammar)
	}
	check("filter", *filterExpr, v.Filter)
	check("sort", *sortExpr, v.Sort)
	check("eval", *evalExpr, v.Eval)

	if failed {
		os.Exit(1)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
