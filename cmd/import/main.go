// Package main loads a legacy roster CSV export into the store.
//
// Usage:
//
//	go run ./cmd/import --file qlp.csv
//	go run ./cmd/import --file qlp.csv --repair --dry-run
//
// The database is selected with the same DB_DRIVER / DB_DSN / DATA_DIR
// settings as the server. Rows are upserted by CPF.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/importer"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/store/sqlstore"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "import: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "", "CSV export to load (required)")
	repair := fs.Bool("repair", false, "Repair damaged text before storing")
	dryRun := fs.Bool("dry-run", false, "Parse and report without writing")
	batch := fs.Int("batch", importer.DefaultBatchSize, "Rows per upsert")
	sep := fs.String("sep", "", "Field separator (default: detect ';' or ',')")
	envFile := fs.String("env-file", ".env", "Path to .env file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("--file is required")
	}

	cfg, err := config.Load([]string{"--env-file", *envFile})
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	opts := importer.Options{Repair: *repair}
	if *sep != "" {
		opts.Comma = []rune(*sep)[0]
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := importer.ReadCSV(f, opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", *file, err)
	}
	for _, skipped := range res.Skipped {
		log.Warn("row skipped", "line", skipped.Line, "reason", skipped.Reason)
	}
	log.Info("export parsed",
		"rows", res.Rows,
		"employees", len(res.Employees),
		"skipped", len(res.Skipped),
		"repaired_fields", res.Repaired,
	)

	if *dryRun {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := sqlstore.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}
	st, err := sqlstore.Open(ctx, sqlstore.Config{
		Dialect:      dialect,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, log.Component("store"))
	if err != nil {
		return err
	}
	defer st.Close()

	written, err := importer.Load(ctx, st, res.Employees, *batch)
	if err != nil {
		return err
	}

	log.Info("import complete", "written", written, "driver", dialect)
	return nil
}
