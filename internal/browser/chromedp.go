package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chromedp/chromedp"
)

// ChromedpRenderer drives a locally installed Chrome through the DevTools
// protocol. Each Render call gets its own browser process.
type ChromedpRenderer struct {
	opts   *Options
	logger *slog.Logger
}

func NewChromedpRenderer(opts *Options, logger *slog.Logger) *ChromedpRenderer {
	return &ChromedpRenderer{
		opts:   opts,
		logger: logger.With("component", "browser", "engine", EngineChromedp),
	}
}

func (r *ChromedpRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("headless", r.opts.Headless),
		chromedp.Flag("incognito", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("lang", r.opts.Locale),
		chromedp.UserAgent(r.opts.UserAgent),
		chromedp.WindowSize(r.opts.ViewportWidth, r.opts.ViewportHeight),
	)
}

func (r *ChromedpRenderer) Render(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.opts.Timeout)
	defer cancelRun()

	r.logger.Info("navigating", "url", url)

	if err := chromedp.Run(runCtx, chromedp.Navigate(url)); err != nil {
		return "", navigationError(url, err)
	}

	if r.opts.WaitSelector != "" {
		waitCtx, cancelWait := context.WithTimeout(runCtx, r.opts.WaitTimeout)
		err := chromedp.Run(waitCtx, chromedp.WaitVisible(r.opts.WaitSelector, chromedp.ByQuery))
		cancelWait()
		if err != nil {
			r.logger.Warn("product cards did not appear", "selector", r.opts.WaitSelector, "error", err)
		}
	}

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", navigationError(url, fmt.Errorf("failed to get page content: %w", err))
	}

	r.logger.Debug("rendered page", "url", url, "bytes", len(html))

	return html, nil
}
