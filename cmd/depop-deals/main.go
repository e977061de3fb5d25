package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/maltedev/depop-deal-finder/internal/app"
	"github.com/maltedev/depop-deal-finder/internal/browser"
	"github.com/maltedev/depop-deal-finder/internal/config"
	"github.com/maltedev/depop-deal-finder/internal/parser"
	"github.com/maltedev/depop-deal-finder/internal/report"
	"github.com/maltedev/depop-deal-finder/internal/scraper"
	"github.com/maltedev/depop-deal-finder/internal/storage"
	"github.com/spf13/pflag"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := newFlagSet(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	req, err := parseRequest(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		flags.Usage()
		return exitUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	logger := newLogger(cfg.Logging, stderr)
	slog.SetDefault(logger)

	// Reject the category before launching a browser.
	if _, err := scraper.ParseCategory(req.Category); err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	a, err := build(cfg, stdout, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return exitFailure
	}

	if _, err := a.Run(ctx, req); err != nil {
		return exitCode(err, logger, stderr)
	}

	return exitOK
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("depop-deals", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.String("size", "", "Your size (e.g. S, M, L, XL, 10.5, 32)")
	config.RegisterFlags(flags)

	flags.Usage = func() {
		fmt.Fprintln(stderr, "Scrape Depop listings based on category (mens or womens), price, and size.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: depop-deals <category> <price> [--size SIZE] [flags]")
		fmt.Fprintln(stderr)
		flags.PrintDefaults()
	}

	return flags
}

func parseRequest(flags *pflag.FlagSet) (app.Request, error) {
	if flags.NArg() != 2 {
		return app.Request{}, fmt.Errorf("%w: expected <category> <price>, got %d arguments", errUsage, flags.NArg())
	}

	price, err := strconv.ParseFloat(flags.Arg(1), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return app.Request{}, fmt.Errorf("%w: price must be a non-negative number, got %q", errUsage, flags.Arg(1))
	}

	size, err := flags.GetString("size")
	if err != nil {
		return app.Request{}, err
	}

	return app.Request{
		Category: flags.Arg(0),
		MaxPrice: price,
		Size:     strings.TrimSpace(size),
	}, nil
}

func build(cfg *config.Config, stdout io.Writer, logger *slog.Logger) (*app.App, error) {
	browserOpts, err := cfg.BrowserOptions()
	if err != nil {
		return nil, err
	}

	renderer, err := browser.NewRenderer(browserOpts, logger)
	if err != nil {
		return nil, err
	}

	sigs, err := cfg.Signatures()
	if err != nil {
		return nil, err
	}

	p, err := parser.NewDepopParser(cfg.Site.Domain,
		parser.WithSignatures(sigs),
		parser.WithCurrencySymbol(cfg.Site.CurrencySymbol),
		parser.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	log, err := storage.NewAppendLog(cfg.Report.LogFile)
	if err != nil {
		return nil, err
	}

	reporter := report.New(stdout, log, report.WithCurrencySymbol(cfg.Site.CurrencySymbol))

	return app.New(cfg.Site.BaseURL, scraper.NewDepopScraper(renderer, p, logger), reporter, logger), nil
}

func exitCode(err error, logger *slog.Logger, stderr io.Writer) int {
	switch {
	case errors.Is(err, scraper.ErrInvalidCategory):
		fmt.Fprintln(stderr, err)
		return exitUsage
	case errors.Is(err, scraper.ErrFetch):
		logger.Error("could not load listing page", "error", err)
	case errors.Is(err, storage.ErrLogFile):
		logger.Error("could not write log file", "error", err)
	default:
		logger.Error("run failed", "error", err)
	}
	return exitFailure
}

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
