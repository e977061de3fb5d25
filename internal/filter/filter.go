package filter

import (
	"strings"

	"github.com/maltedev/depop-deal-finder/internal/models"
)

const (
	ShoeSizeMarker = "US"
	InchMark       = `"`
)

// Criteria narrows a listing. An empty Size disables size filtering.
type Criteria struct {
	MaxPrice float64
	Size     string
}

// Apply filters by price first, then by size.
func Apply(products []models.Product, c Criteria) []models.Product {
	return BySize(ByPrice(products, c.MaxPrice), c.Size)
}

// ByPrice keeps products with a price at or below max. Products without a
// price are dropped.
func ByPrice(products []models.Product, max float64) []models.Product {
	filtered := make([]models.Product, 0, len(products))

	for _, p := range products {
		if price, ok := p.PriceValue(); ok && price <= max {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// BySize keeps products whose size matches the token. An empty token returns
// products unchanged.
func BySize(products []models.Product, size string) []models.Product {
	if size == "" {
		return products
	}

	filtered := make([]models.Product, 0, len(products))

	for _, p := range products {
		if candidate, ok := p.SizeValue(); ok && MatchSize(candidate, size) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

// MatchSize compares a listed size to a token. Shoe sizes ("US 10.5") and
// waist sizes (`30"`) are compared without their unit; everything else must
// match exactly.
func MatchSize(candidate, token string) bool {
	switch {
	case strings.HasPrefix(candidate, ShoeSizeMarker):
		rest := strings.TrimPrefix(candidate, ShoeSizeMarker)
		return strings.TrimLeft(rest, " ") == token
	case strings.HasSuffix(candidate, InchMark):
		return strings.TrimSuffix(candidate, InchMark) == token
	default:
		return candidate == token
	}
}
