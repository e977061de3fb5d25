package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maltedev/depop-deal-finder/internal/parser"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://www.depop.com/category/", cfg.Site.BaseURL)
	assert.Equal(t, "https://www.depop.com", cfg.Site.Domain)
	assert.Equal(t, "$", cfg.Site.CurrencySymbol)
	assert.Equal(t, "playwright", cfg.Browser.Engine)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 30*time.Second, cfg.Browser.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Browser.WaitTimeout)
	assert.Equal(t, "depop.txt", cfg.Report.LogFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Empty(t, cfg.Selectors)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DEPOP_BROWSER_ENGINE", "chromedp")
	t.Setenv("DEPOP_BROWSER_HEADLESS", "false")
	t.Setenv("DEPOP_BROWSER_TIMEOUT", "45s")
	t.Setenv("DEPOP_REPORT_LOG_FILE", "deals.txt")
	t.Setenv("DEPOP_LOGGING_FORMAT", "json")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "chromedp", cfg.Browser.Engine)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 45*time.Second, cfg.Browser.Timeout)
	assert.Equal(t, "deals.txt", cfg.Report.LogFile)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DEPOP_REPORT_LOG_FILE", "env.txt")

	cfg, err := Load(newFlags(t, "--log-file", "flag.txt", "--engine", "chromedp", "--log-level", "debug"))
	require.NoError(t, err)

	assert.Equal(t, "flag.txt", cfg.Report.LogFile)
	assert.Equal(t, "chromedp", cfg.Browser.Engine)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "depop.yaml")
	content := `
site:
  currency_symbol: "£"
browser:
  wait_timeout: 2s
selectors:
  size: span.size
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(newFlags(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, "£", cfg.Site.CurrencySymbol)
	assert.Equal(t, 2*time.Second, cfg.Browser.WaitTimeout)

	sigs, err := cfg.Signatures()
	require.NoError(t, err)
	assert.Equal(t, "span.size", sigs[parser.KindSize].Selector())
}

func TestLoadMissingExplicitConfigFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load(nil)
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown engine", func(c *Config) { c.Browser.Engine = "selenium" }},
		{"zero timeout", func(c *Config) { c.Browser.Timeout = 0 }},
		{"negative wait", func(c *Config) { c.Browser.WaitTimeout = -time.Second }},
		{"empty log file", func(c *Config) { c.Report.LogFile = "" }},
		{"empty domain", func(c *Config) { c.Site.Domain = "" }},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"unknown selector", func(c *Config) { c.Selectors = map[string]string{"title": "h1"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBrowserOptions(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	opts, err := cfg.BrowserOptions()
	require.NoError(t, err)

	assert.Equal(t, "playwright", opts.Engine)
	assert.Equal(t, "li.styles__ProductCardContainer-sc-4aad5806-7.kDwiaz", opts.WaitSelector)
	assert.Equal(t, cfg.Browser.Timeout, opts.Timeout)
}
