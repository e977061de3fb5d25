package scraper

import (
	"fmt"
	"strings"
)

const DefaultBaseURL = "https://www.depop.com/category/"

type Category string

const (
	CategoryMens   Category = "mens"
	CategoryWomens Category = "womens"
)

func ParseCategory(raw string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case CategoryMens, CategoryWomens:
		return c, nil
	default:
		return "", fmt.Errorf("%w %q: please enter mens or womens", ErrInvalidCategory, raw)
	}
}

// BuildURL returns the listing URL for a category under baseURL.
func BuildURL(baseURL, category string) (string, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return "", err
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return baseURL + string(c) + "/", nil
}
