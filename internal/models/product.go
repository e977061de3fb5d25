package models

import (
	"math"
	"net/url"
	"strings"
)

// Product is one listing card extracted from a category page. Price and Size are
// nil when the card carries no value for them.
type Product struct {
	Link  string   `json:"link"`
	Price *float64 `json:"price,omitempty"`
	Size  *string  `json:"size,omitempty"`
}

func NewProduct(link string, price *float64, size *string) Product {
	p := Product{Link: link}
	if price != nil {
		v := *price
		p.Price = &v
	}
	if size != nil {
		if s := strings.TrimSpace(*size); s != "" {
			p.Size = &s
		}
	}
	return p
}

func (p Product) HasPrice() bool {
	return p.Price != nil
}

func (p Product) HasSize() bool {
	return p.Size != nil
}

// PriceValue returns the price and whether it is present.
func (p Product) PriceValue() (float64, bool) {
	if p.Price == nil {
		return 0, false
	}
	return *p.Price, true
}

// SizeValue returns the size token and whether it is present.
func (p Product) SizeValue() (string, bool) {
	if p.Size == nil {
		return "", false
	}
	return *p.Size, true
}

func (p Product) Validate() []string {
	var errors []string

	if p.Link == "" {
		errors = append(errors, "Link is required")
	} else if u, err := url.Parse(p.Link); err != nil || !u.IsAbs() || u.Host == "" {
		errors = append(errors, "Link must be an absolute URL")
	}

	if p.Price != nil {
		if math.IsNaN(*p.Price) || math.IsInf(*p.Price, 0) {
			errors = append(errors, "Price must be finite")
		} else if *p.Price < 0 {
			errors = append(errors, "Price must not be negative")
		}
	}

	if p.Size != nil && strings.TrimSpace(*p.Size) == "" {
		errors = append(errors, "Size must not be blank")
	}

	return errors
}

func Float(v float64) *float64 {
	return &v
}

func String(s string) *string {
	return &s
}
