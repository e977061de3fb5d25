package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/maltedev/depop-deal-finder/internal/browser"
	"github.com/maltedev/depop-deal-finder/internal/parser"
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrFetch           = errors.New("failed to fetch listing page")
)

type Scraper interface {
	ScrapeListing(ctx context.Context, url string) (*parser.Extraction, error)
}

// DepopScraper renders a listing page and extracts its product cards.
type DepopScraper struct {
	renderer browser.Renderer
	parser   parser.Parser
	logger   *slog.Logger
}

func NewDepopScraper(r browser.Renderer, p parser.Parser, logger *slog.Logger) *DepopScraper {
	return &DepopScraper{
		renderer: r,
		parser:   p,
		logger:   logger.With("component", "scraper"),
	}
}

func (s *DepopScraper) ScrapeListing(ctx context.Context, url string) (*parser.Extraction, error) {
	s.logger.Info("scraping listing", "url", url)

	html, err := s.renderer.Render(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	result, err := s.parser.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("failed to extract products: %w", err)
	}

	s.logger.Info("found products", "count", len(result.Products), "faults", len(result.Faults))

	return result, nil
}
