package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"suplio/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Provider   ProviderConfig
	Extraction ExtractionConfig
	Dictionary DictionaryConfig
	Matching   MatchingConfig
	DB         DBConfig
	Log        LogConfig
}

// ProviderSettings holds settings for a single model provider.
type ProviderSettings struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ProviderConfig holds model provider settings with multi-provider support.
// Secondary and tertiary providers, when configured, form a fallback chain.
type ProviderConfig struct {
	Primary   ProviderSettings `mapstructure:"primary"`
	Secondary ProviderSettings `mapstructure:"secondary"`
	Tertiary  ProviderSettings `mapstructure:"tertiary"`
}

// Chain returns the configured providers in fallback order.
func (p *ProviderConfig) Chain() []*ProviderSettings {
	chain := []*ProviderSettings{}
	for _, s := range []*ProviderSettings{&p.Primary, &p.Secondary, &p.Tertiary} {
		if s.Provider != "" {
			chain = append(chain, s)
		}
	}
	return chain
}

// ExtractionConfig holds page/batch executor settings.
type ExtractionConfig struct {
	Concurrency      int     `mapstructure:"concurrency"`
	PageCap          int     `mapstructure:"page_cap"`
	BatchSize        int     `mapstructure:"batch_size"`
	CompactThreshold int     `mapstructure:"compact_threshold"`
	TimeoutSecs      int     `mapstructure:"timeout_secs"`
	MaxRetries       int     `mapstructure:"max_retries"`
	BackoffMillis    int     `mapstructure:"backoff_millis"`
	RatePerSecond    float64 `mapstructure:"rate_per_second"`
	MaxProducts      int     `mapstructure:"max_products"`
	DefaultCurrency  string  `mapstructure:"default_currency"`
	DefaultLanguage  string  `mapstructure:"default_language"`
}

// Timeout returns the per-call provider timeout.
func (e *ExtractionConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// Backoff returns the base retry backoff.
func (e *ExtractionConfig) Backoff() time.Duration {
	return time.Duration(e.BackoffMillis) * time.Millisecond
}

// DictionaryConfig holds dictionary store settings.
type DictionaryConfig struct {
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

// MatchingConfig holds similarity matcher settings.
type MatchingConfig struct {
	Threshold float64 `mapstructure:"threshold"`
}

// DBConfig holds PostgreSQL connection settings for the dictionary
// repository. An empty host means no database is configured.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the SUPLIO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SUPLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider defaults
	v.SetDefault("provider.primary.provider", "claude")
	v.SetDefault("provider.primary.api_key", "")
	v.SetDefault("provider.primary.default_model", "")
	v.SetDefault("provider.primary.timeout_secs", 120)
	for _, tier := range []string{"secondary", "tertiary"} {
		v.SetDefault("provider."+tier+".provider", "")
		v.SetDefault("provider."+tier+".api_key", "")
		v.SetDefault("provider."+tier+".default_model", "")
		v.SetDefault("provider."+tier+".timeout_secs", 120)
	}

	// Extraction defaults
	v.SetDefault("extraction.concurrency", 4)
	v.SetDefault("extraction.page_cap", 20)
	v.SetDefault("extraction.batch_size", 40)
	v.SetDefault("extraction.compact_threshold", 400)
	v.SetDefault("extraction.timeout_secs", 120)
	v.SetDefault("extraction.max_retries", 2)
	v.SetDefault("extraction.backoff_millis", 500)
	v.SetDefault("extraction.rate_per_second", 2)
	v.SetDefault("extraction.max_products", 0)
	v.SetDefault("extraction.default_currency", "IDR")
	v.SetDefault("extraction.default_language", "id")

	// Dictionary defaults
	v.SetDefault("dictionary.refresh_ttl", "10m")

	// Matching defaults
	v.SetDefault("matching.threshold", 0.85)

	// DB defaults (empty host: dictionary served from the embedded seed)
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "suplio")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "suplio_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks options that must be present before any provider call is
// made. A failure here is fatal for the whole extraction run.
func (c *Config) Validate() error {
	chain := c.Provider.Chain()
	if len(chain) == 0 {
		return domain.ErrMissingProvider
	}
	for _, s := range chain {
		if s.APIKey == "" {
			return fmt.Errorf("provider %s: %w", s.Provider, domain.ErrMissingAPIKey)
		}
	}
	if c.Extraction.Concurrency <= 0 {
		return fmt.Errorf("extraction.concurrency must be positive")
	}
	return nil
}
