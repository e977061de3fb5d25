package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/maltedev/depop-deal-finder/internal/browser"
	"github.com/maltedev/depop-deal-finder/internal/parser"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "DEPOP"

type Config struct {
	Site      SiteConfig        `mapstructure:"site"`
	Browser   BrowserConfig     `mapstructure:"browser"`
	Report    ReportConfig      `mapstructure:"report"`
	Logging   LoggingConfig     `mapstructure:"logging"`
	Selectors map[string]string `mapstructure:"selectors"`
}

type SiteConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Domain         string `mapstructure:"domain"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

type BrowserConfig struct {
	Engine         string        `mapstructure:"engine"`
	Headless       bool          `mapstructure:"headless"`
	Timeout        time.Duration `mapstructure:"timeout"`
	WaitTimeout    time.Duration `mapstructure:"wait_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
	ViewportWidth  int           `mapstructure:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height"`
	Locale         string        `mapstructure:"locale"`
}

type ReportConfig struct {
	LogFile string `mapstructure:"log_file"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"engine":    "browser.engine",
	"headless":  "browser.headless",
	"log-file":  "report.log_file",
	"log-level": "logging.level",
}

// RegisterFlags adds the flags that override configuration values.
func RegisterFlags(flags *pflag.FlagSet) {
	defaults := browser.DefaultOptions()
	flags.String("config", "", "Path to a config file (default ./depop.yaml)")
	flags.String("engine", defaults.Engine, "Browser engine: playwright or chromedp")
	flags.Bool("headless", defaults.Headless, "Run the browser without a window")
	flags.String("log-file", "depop.txt", "File the results are appended to")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
}

// Load reads configuration from defaults, an optional .env file, an optional
// config file, DEPOP_* environment variables and flags, in increasing priority.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("depop")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/depop-deals")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	b := browser.DefaultOptions()

	v.SetDefault("site.base_url", "https://www.depop.com/category/")
	v.SetDefault("site.domain", parser.DefaultDomain)
	v.SetDefault("site.currency_symbol", parser.DefaultCurrencySymbol)

	v.SetDefault("browser.engine", b.Engine)
	v.SetDefault("browser.headless", b.Headless)
	v.SetDefault("browser.timeout", b.Timeout)
	v.SetDefault("browser.wait_timeout", b.WaitTimeout)
	v.SetDefault("browser.user_agent", b.UserAgent)
	v.SetDefault("browser.viewport_width", b.ViewportWidth)
	v.SetDefault("browser.viewport_height", b.ViewportHeight)
	v.SetDefault("browser.locale", b.Locale)

	v.SetDefault("report.log_file", "depop.txt")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("selectors", map[string]string{})
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Browser.Engine) {
	case browser.EnginePlaywright, browser.EngineChromedp:
	default:
		return fmt.Errorf("browser engine must be 'playwright' or 'chromedp', got: %s", c.Browser.Engine)
	}

	if c.Browser.Timeout <= 0 {
		return fmt.Errorf("browser timeout must be positive, got: %s", c.Browser.Timeout)
	}

	if c.Browser.WaitTimeout < 0 {
		return fmt.Errorf("browser wait timeout must not be negative, got: %s", c.Browser.WaitTimeout)
	}

	if c.Report.LogFile == "" {
		return fmt.Errorf("report log file is required")
	}

	if c.Site.Domain == "" {
		return fmt.Errorf("site domain is required")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be debug, info, warn or error, got: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", c.Logging.Format)
	}

	if _, err := c.Signatures(); err != nil {
		return err
	}

	return nil
}

// Signatures returns the default markup signatures with configured overrides.
func (c *Config) Signatures() (parser.Signatures, error) {
	sigs, err := parser.DefaultSignatures().Override(c.Selectors)
	if err != nil {
		return nil, fmt.Errorf("invalid selectors: %w (known: %s)", err, strings.Join(parser.KnownKinds(), ", "))
	}
	return sigs, nil
}

// BrowserOptions converts the browser section into renderer options. The
// renderer waits for the first product card.
func (c *Config) BrowserOptions() (*browser.Options, error) {
	sigs, err := c.Signatures()
	if err != nil {
		return nil, err
	}

	return &browser.Options{
		Engine:         strings.ToLower(c.Browser.Engine),
		Headless:       c.Browser.Headless,
		Timeout:        c.Browser.Timeout,
		WaitTimeout:    c.Browser.WaitTimeout,
		WaitSelector:   sigs[parser.KindCard].Selector(),
		UserAgent:      c.Browser.UserAgent,
		ViewportWidth:  c.Browser.ViewportWidth,
		ViewportHeight: c.Browser.ViewportHeight,
		Locale:         c.Browser.Locale,
	}, nil
}
