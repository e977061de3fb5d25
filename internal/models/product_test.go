package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProductNormalizesSize(t *testing.T) {
	p := NewProduct("https://www.depop.com/products/a", Float(12), String("  M  "))
	size, ok := p.SizeValue()
	assert.True(t, ok)
	assert.Equal(t, "M", size)

	blank := NewProduct("https://www.depop.com/products/a", nil, String("   "))
	assert.False(t, blank.HasSize())
	assert.False(t, blank.HasPrice())
}

func TestNewProductCopiesPrice(t *testing.T) {
	price := 10.0
	p := NewProduct("https://www.depop.com/products/a", &price, nil)
	price = 99

	got, ok := p.PriceValue()
	assert.True(t, ok)
	assert.Equal(t, 10.0, got)
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected []string
	}{
		{
			name:    "valid product",
			product: NewProduct("https://www.depop.com/products/a", Float(5), String("L")),
		},
		{
			name:     "missing link",
			product:  Product{},
			expected: []string{"Link is required"},
		},
		{
			name:     "relative link",
			product:  Product{Link: "/products/a"},
			expected: []string{"Link must be an absolute URL"},
		},
		{
			name:     "negative price",
			product:  Product{Link: "https://www.depop.com/a", Price: Float(-1)},
			expected: []string{"Price must not be negative"},
		},
		{
			name:     "infinite price",
			product:  Product{Link: "https://www.depop.com/a", Price: Float(math.Inf(1))},
			expected: []string{"Price must be finite"},
		},
		{
			name:     "blank size",
			product:  Product{Link: "https://www.depop.com/a", Size: String(" ")},
			expected: []string{"Size must not be blank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.Validate())
		})
	}
}
