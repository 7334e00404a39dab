// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Ebay          EbayConfig          `yaml:"ebay"`
	Sold          SoldConfig          `yaml:"sold"`
	Pricing       PricingConfig       `yaml:"pricing"`
	Refresh       RefreshConfig       `yaml:"refresh"`
	RateLimit     IngressConfig       `yaml:"rate_limit"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// EbayConfig defines eBay Browse API settings.
type EbayConfig struct {
	AppID     string      `yaml:"app_id"`
	CertID    string      `yaml:"cert_id"`
	TokenURL  string      `yaml:"token_url"`
	BrowseURL string      `yaml:"browse_url"`
	RateLimit QuotaConfig `yaml:"rate_limit"`
}

// SoldConfig defines the sold-listings API settings.
type SoldConfig struct {
	APIKey     string      `yaml:"api_key"`
	URL        string      `yaml:"url"`
	Host       string      `yaml:"host"`
	CategoryID string      `yaml:"category_id"`
	RateLimit  QuotaConfig `yaml:"rate_limit"`
}

// QuotaConfig defines outbound call limits for one upstream API. A
// max_calls of zero leaves only the per-second limit.
type QuotaConfig struct {
	PerSecond float64       `yaml:"per_second"`
	Burst     int           `yaml:"burst"`
	MaxCalls  int64         `yaml:"max_calls"`
	Window    time.Duration `yaml:"window"`
}

// PricingConfig defines region handling for price lookups.
type PricingConfig struct {
	DefaultRegion string                         `yaml:"default_region"`
	StrictRegions bool                           `yaml:"strict_regions"`
	Regions       map[string]domain.RegionConfig `yaml:"regions"`
}

// RegionTable returns the configured regions, or the built-in US and UK
// table when none are configured.
func (p *PricingConfig) RegionTable() domain.RegionTable {
	if len(p.Regions) == 0 {
		return domain.DefaultRegions()
	}
	t := make(domain.RegionTable, len(p.Regions))
	for code, rc := range p.Regions {
		t[domain.ParseRegion(code)] = rc
	}
	return t
}

// RefreshConfig defines the scheduled catalog refresh.
type RefreshConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Interval    time.Duration `yaml:"interval"`
	BatchSize   int           `yaml:"batch_size"`
	ItemTimeout time.Duration `yaml:"item_timeout"`
	Stagger     time.Duration `yaml:"stagger"`
}

// IngressConfig defines the per-client sliding-window limit on price
// lookups. Requests of zero or less disables it.
type IngressConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// NotificationsConfig defines where refresh summaries are sent.
type NotificationsConfig struct {
	Discord  DiscordConfig  `yaml:"discord"`
	Telegram TelegramConfig `yaml:"telegram"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled      bool   `yaml:"enabled"`
	WebhookURL   string `yaml:"webhook_url"`
	FailuresOnly bool   `yaml:"failures_only"`
}

// TelegramConfig defines Telegram Bot API settings.
type TelegramConfig struct {
	Enabled      bool   `yaml:"enabled"`
	BotToken     string `yaml:"bot_token"`
	ChatID       int64  `yaml:"chat_id"`
	FailuresOnly bool   `yaml:"failures_only"`
}

// TracingConfig defines OTLP trace export.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"` // host:port of an OTLP/gRPC collector
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyEbayDefaults(&cfg.Ebay)
	applySoldDefaults(&cfg.Sold)
	applyPricingDefaults(&cfg.Pricing)
	applyRefreshDefaults(&cfg.Refresh)
	applyIngressDefaults(&cfg.RateLimit)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 60 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.BrowseURL == "" {
		e.BrowseURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	}
	applyQuotaDefaults(&e.RateLimit, 5000)
}

func applySoldDefaults(s *SoldConfig) {
	if s.URL == "" {
		s.URL = "https://ebay-average-selling-price.p.rapidapi.com/findCompletedItems"
	}
	if s.Host == "" {
		s.Host = "ebay-average-selling-price.p.rapidapi.com"
	}
	if s.CategoryID == "" {
		s.CategoryID = "9355"
	}
	applyQuotaDefaults(&s.RateLimit, 0)
}

func applyQuotaDefaults(q *QuotaConfig, maxCalls int64) {
	if q.PerSecond == 0 {
		q.PerSecond = 5.0
	}
	if q.Burst == 0 {
		q.Burst = 10
	}
	if q.MaxCalls == 0 {
		q.MaxCalls = maxCalls
	}
	if q.Window == 0 {
		q.Window = 24 * time.Hour
	}
}

func applyPricingDefaults(p *PricingConfig) {
	if p.DefaultRegion == "" {
		p.DefaultRegion = string(domain.DefaultRegion)
	}
	p.DefaultRegion = string(domain.ParseRegion(p.DefaultRegion))
}

func applyRefreshDefaults(r *RefreshConfig) {
	if r.Interval == 0 {
		r.Interval = 24 * time.Hour
	}
	if r.BatchSize == 0 {
		r.BatchSize = 25
	}
	if r.ItemTimeout == 0 {
		r.ItemTimeout = 30 * time.Second
	}
	if r.Stagger == 0 {
		r.Stagger = 500 * time.Millisecond
	}
}

func applyIngressDefaults(i *IngressConfig) {
	if i.Requests == 0 {
		i.Requests = 10
	}
	if i.Window == 0 {
		i.Window = 10 * time.Second
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "collectopedia"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535 (got %d)", cfg.Server.Port))
	}

	if cfg.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}

	if (cfg.Ebay.AppID == "") != (cfg.Ebay.CertID == "") {
		errs = append(errs, errors.New("ebay.app_id and ebay.cert_id must be set together"))
	}
	errs = append(errs, validateQuota("ebay.rate_limit", &cfg.Ebay.RateLimit)...)
	errs = append(errs, validateQuota("sold.rate_limit", &cfg.Sold.RateLimit)...)

	errs = append(errs, validatePricing(&cfg.Pricing)...)

	if cfg.Refresh.Interval < time.Minute {
		errs = append(errs, fmt.Errorf("refresh.interval must be at least 1m (got %s)", cfg.Refresh.Interval))
	}
	if cfg.Refresh.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("refresh.batch_size must be positive (got %d)", cfg.Refresh.BatchSize))
	}
	if cfg.Refresh.ItemTimeout < 0 || cfg.Refresh.Stagger < 0 {
		errs = append(errs, errors.New("refresh.item_timeout and refresh.stagger must not be negative"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, errors.New("notifications.discord.webhook_url is required when discord is enabled"))
	}
	if tg := cfg.Notifications.Telegram; tg.Enabled && (tg.BotToken == "" || tg.ChatID == 0) {
		errs = append(errs, errors.New("notifications.telegram.bot_token and chat_id are required when telegram is enabled"))
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1 (got %g)", cfg.Tracing.SampleRatio))
	}

	if cfg.RateLimit.Window <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.window must be positive (got %s)", cfg.RateLimit.Window))
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level,
		))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}

func validateQuota(section string, q *QuotaConfig) []error {
	var errs []error
	if q.PerSecond <= 0 {
		errs = append(errs, fmt.Errorf("%s.per_second must be positive", section))
	}
	if q.Burst < 1 {
		errs = append(errs, fmt.Errorf("%s.burst must be at least 1", section))
	}
	if q.Window <= 0 {
		errs = append(errs, fmt.Errorf("%s.window must be positive", section))
	}
	return errs
}

func validatePricing(p *PricingConfig) []error {
	var errs []error
	table := p.RegionTable()
	if _, ok := table[domain.Region(p.DefaultRegion)]; !ok {
		errs = append(errs, fmt.Errorf(
			"pricing.default_region %q is not a configured region", p.DefaultRegion,
		))
	}
	for code, rc := range p.Regions {
		if rc.MarketplaceID == "" || rc.LocationCountry == "" || rc.DeliveryCountry == "" {
			errs = append(errs, fmt.Errorf(
				"pricing.regions.%s needs marketplace_id, location_country and delivery_country",
				strings.ToUpper(code),
			))
		}
	}
	return errs
}
