package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	EnginePlaywright = "playwright"
	EngineChromedp   = "chromedp"
)

var ErrNavigation = errors.New("navigation failed")

// Renderer returns the fully rendered HTML of a page.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

type Options struct {
	Engine         string
	Headless       bool
	Timeout        time.Duration
	WaitTimeout    time.Duration
	WaitSelector   string
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	Locale         string
}

func DefaultOptions() *Options {
	return &Options{
		Engine:         EnginePlaywright,
		Headless:       true,
		Timeout:        30 * time.Second,
		WaitTimeout:    10 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		Locale:         "en-US",
	}
}

// NewRenderer returns the renderer for opts.Engine.
func NewRenderer(opts *Options, logger *slog.Logger) (Renderer, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch strings.ToLower(opts.Engine) {
	case "", EnginePlaywright:
		return NewPlaywrightRenderer(opts, logger), nil
	case EngineChromedp:
		return NewChromedpRenderer(opts, logger), nil
	default:
		return nil, fmt.Errorf("unknown browser engine %q", opts.Engine)
	}
}

func navigationError(url string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrNavigation, url, err)
}

func joinCloseErrors(errs []error) error {
	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %w", errors.Join(errs...))
	}
	return nil
}
