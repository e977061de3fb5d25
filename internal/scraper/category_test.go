package scraper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		category string
		expected string
	}{
		{"mens", "https://www.depop.com/category/mens/"},
		{"MENS", "https://www.depop.com/category/mens/"},
		{"Womens", "https://www.depop.com/category/womens/"},
		{" womens ", "https://www.depop.com/category/womens/"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			url, err := BuildURL(DefaultBaseURL, tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, url)
		})
	}
}

func TestBuildURLInvalidCategory(t *testing.T) {
	for _, category := range []string{"", "kids", "men", "womens/", "mens?x=1"} {
		t.Run(category, func(t *testing.T) {
			url, err := BuildURL(DefaultBaseURL, category)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCategory))
			assert.Empty(t, url)
		})
	}
}

func TestBuildURLBaseWithoutSlash(t *testing.T) {
	url, err := BuildURL("https://www.depop.com/category", "mens")
	require.NoError(t, err)
	assert.Equal(t, "https://www.depop.com/category/mens/", url)

	url, err = BuildURL("", "womens")
	require.NoError(t, err)
	assert.Equal(t, "https://www.depop.com/category/womens/", url)
}
