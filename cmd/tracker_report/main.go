package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/spf13/afero"

	"github.com/personal-finance-tracker/internal/bootstrap"
	"github.com/personal-finance-tracker/internal/config"
	"github.com/personal-finance-tracker/internal/domain/ledger"
	"github.com/personal-finance-tracker/internal/domain/report"
	"github.com/personal-finance-tracker/internal/export"
	"github.com/personal-finance-tracker/internal/logger"
	"github.com/personal-finance-tracker/internal/store"
)

type options struct {
	dataFile string
	month    string
	year     string
	format   string
	out      string
}

func main() {
	app := kingpin.New("tracker_report", "Offline reports over the personal finance ledger")
	opts := &options{}

	app.Flag("data", "Read this ledger file instead of the configured backend").StringVar(&opts.dataFile)
	app.Flag("month", "Restrict to a month (YYYY-MM)").StringVar(&opts.month)
	app.Flag("year", "Restrict to a year (YYYY); ignored when --month is set").StringVar(&opts.year)

	cmdSummary := app.Command("summary", "Show balance, spending totals and the category breakdown")
	cmdExport := app.Command("export", "Export the filtered entries")
	cmdExport.Flag("format", "Export format").Default(string(export.FormatCSV)).EnumVar(&opts.format, string(export.FormatCSV), string(export.FormatXLSX))
	cmdExport.Flag("out", "Output file, defaults to entries_<date>.<format> in the current directory").StringVar(&opts.out)

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.LoadConfig("tracker_report")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if opts.dataFile != "" {
		cfg.Storage.Backend = config.BackendFile
		cfg.Storage.DataFile = opts.dataFile
	}

	// Reports go to stdout, so logs go to stderr
	log := logger.NewLoggerWithWriter(os.Stderr, cfg)

	loc, err := cfg.Application.Location()
	kingpin.FatalIfError(err, "timezone")
	now := time.Now().In(loc)

	ctx := context.Background()
	fsys := afero.NewOsFs()

	entryStore, closeStore, err := bootstrap.OpenStore(ctx, log, cfg, fsys)
	kingpin.FatalIfError(err, "storage")
	defer closeStore(ctx)

	switch cmd {
	case cmdSummary.FullCommand():
		err = runSummary(ctx, os.Stdout, entryStore, opts, now)
	case cmdExport.FullCommand():
		err = runExport(ctx, fsys, os.Stdout, entryStore, opts, now)
	}
	if err != nil {
		_ = closeStore(ctx)
		kingpin.Fatalf("%s: %v", cmd, err)
	}
}

func runSummary(ctx context.Context, w io.Writer, s store.Store, opts *options, now time.Time) error {
	filter, err := report.ParseFilter(opts.month, opts.year)
	if err != nil {
		return err
	}
	l, err := s.Load(ctx)
	if err != nil {
		return err
	}
	printSummary(w, report.Summarize(l, filter, now))
	return nil
}

func runExport(ctx context.Context, fsys afero.Fs, w io.Writer, s store.Store, opts *options, now time.Time) error {
	filter, err := report.ParseFilter(opts.month, opts.year)
	if err != nil {
		return err
	}
	l, err := s.Load(ctx)
	if err != nil {
		return err
	}
	entries := report.FilterByPeriod(l.Entries, filter)

	format := export.Format(opts.format)
	out := opts.out
	if out == "" {
		out = export.Filename(format, ledger.DateOf(now))
	}

	f, err := fsys.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case export.FormatXLSX:
		data, err := export.XLSX(entries)
		if err != nil {
			return err
		}
		if _, err := f.Write(data); err != nil {
			return err
		}
	default:
		if err := export.WriteCSV(f, entries); err != nil {
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %d entries to %s\n", len(entries), out)
	return nil
}
