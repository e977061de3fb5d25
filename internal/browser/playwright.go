package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightRenderer launches a fresh Chromium with an isolated context for
// every Render call.
type PlaywrightRenderer struct {
	opts   *Options
	logger *slog.Logger
}

func NewPlaywrightRenderer(opts *Options, logger *slog.Logger) *PlaywrightRenderer {
	return &PlaywrightRenderer{
		opts:   opts,
		logger: logger.With("component", "browser", "engine", EnginePlaywright),
	}
}

// session owns every playwright resource opened for one render.
type session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
}

func (r *PlaywrightRenderer) open() (*session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}
	s := &session{pw: pw}

	s.browser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(r.opts.Headless),
		Args: []string{
			"--incognito",
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	s.context, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(r.opts.UserAgent),
		AcceptDownloads:   playwright.Bool(false),
		JavaScriptEnabled: playwright.Bool(true),
		Locale:            playwright.String(r.opts.Locale),
		Viewport: &playwright.Size{
			Width:  r.opts.ViewportWidth,
			Height: r.opts.ViewportHeight,
		},
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	return s, nil
}

func (s *session) Close() error {
	var errs []error

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	return joinCloseErrors(errs)
}

func (r *PlaywrightRenderer) Render(ctx context.Context, url string) (html string, err error) {
	if err := ctx.Err(); err != nil {
		return "", navigationError(url, err)
	}

	s, err := r.open()
	if err != nil {
		return "", navigationError(url, err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			r.logger.Warn("failed to release browser session", "error", cerr)
		}
	}()

	page, err := s.context.NewPage()
	if err != nil {
		return "", navigationError(url, fmt.Errorf("failed to create new page: %w", err))
	}
	page.SetDefaultTimeout(float64(r.opts.Timeout.Milliseconds()))

	r.logger.Info("navigating", "url", url)

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(r.opts.Timeout.Milliseconds())),
	}); err != nil {
		return "", navigationError(url, err)
	}

	if r.opts.WaitSelector != "" {
		if _, err := page.WaitForSelector(r.opts.WaitSelector, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(float64(r.opts.WaitTimeout.Milliseconds())),
		}); err != nil {
			r.logger.Warn("product cards did not appear", "selector", r.opts.WaitSelector, "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", navigationError(url, err)
	}

	html, err = page.Content()
	if err != nil {
		return "", navigationError(url, fmt.Errorf("failed to get page content: %w", err))
	}

	r.logger.Debug("rendered page", "url", url, "bytes", len(html))

	return html, nil
}
