package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maltedev/depop-deal-finder/internal/filter"
	"github.com/maltedev/depop-deal-finder/internal/models"
	"github.com/maltedev/depop-deal-finder/internal/scraper"
)

// Request is one search: a category, a price ceiling and an optional size.
type Request struct {
	Category string
	MaxPrice float64
	Size     string
}

type Reporter interface {
	Write(products []models.Product) error
}

type App struct {
	baseURL  string
	scraper  scraper.Scraper
	reporter Reporter
	logger   *slog.Logger
}

func New(baseURL string, s scraper.Scraper, r Reporter, logger *slog.Logger) *App {
	return &App{
		baseURL:  baseURL,
		scraper:  s,
		reporter: r,
		logger:   logger,
	}
}

// Run scrapes the category listing, filters it and reports the survivors.
// An invalid category fails before any page is fetched.
func (a *App) Run(ctx context.Context, req Request) ([]models.Product, error) {
	logger := a.logger.With("run_id", uuid.NewString())

	url, err := scraper.BuildURL(a.baseURL, req.Category)
	if err != nil {
		return nil, err
	}

	logger.Info("starting search", "url", url, "max_price", req.MaxPrice, "size", req.Size)

	result, err := a.scraper.ScrapeListing(ctx, url)
	if err != nil {
		return nil, err
	}

	for _, fault := range result.Faults {
		logger.Debug("extraction fault", "error", fault)
	}

	filtered := filter.Apply(result.Products, filter.Criteria{
		MaxPrice: req.MaxPrice,
		Size:     req.Size,
	})

	logger.Info("filtered products",
		"scraped", len(result.Products),
		"matched", len(filtered),
		"faults", len(result.Faults))

	if err := a.reporter.Write(filtered); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return filtered, nil
}
