package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultRegistryURL is the production location of the network registry document.
const DefaultRegistryURL = "https://ethpandaops-platform-production-cartographoor.ams3.digitaloceanspaces.com/networks.json"

// Config holds all configuration for the application.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Registry RegistryConfig `mapstructure:"registry"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Menu     MenuConfig     `mapstructure:"menu"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Release  ReleaseConfig  `mapstructure:"release"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string        `mapstructure:"port"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// RegistryConfig holds configuration for the network registry source.
type RegistryConfig struct {
	URL             string        `mapstructure:"url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	UserAgent       string        `mapstructure:"user_agent"`
	MaxBodySize     int           `mapstructure:"max_body_size"`
}

// DefaultMaxBodySize bounds registry responses, compressed or inflated.
const DefaultMaxBodySize = 16 << 20

// CacheConfig holds settings for the caching layer.
// A zero or negative default expiration keeps the registry for the life of the process.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// MenuConfig holds presentation related settings handed to the widget.
type MenuConfig struct {
	Variant       string     `mapstructure:"variant"`
	HostRulesFile string     `mapstructure:"host_rules_file"`
	Links         []LinkItem `mapstructure:"links"`
}

// LinkItem is a static link shown in the menu footer.
type LinkItem struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
	Icon string `mapstructure:"icon"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ReleaseConfig holds settings for the release packager.
type ReleaseConfig struct {
	Name        string   `mapstructure:"name"`
	Dir         string   `mapstructure:"dir"`
	Source      string   `mapstructure:"source"`
	PackageJSON string   `mapstructure:"package_json"`
	BuildCmd    string   `mapstructure:"build_cmd"`
	S3          S3Config `mapstructure:"s3"`
}

// S3Config describes an S3-compatible bucket that release artifacts are published to.
type S3Config struct {
	Enabled      bool   `mapstructure:"enabled"`
	Endpoint     string `mapstructure:"endpoint"`
	Region       string `mapstructure:"region"`
	Bucket       string `mapstructure:"bucket"`
	Prefix       string `mapstructure:"prefix"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "panda-menu")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.wait_timeout", "10s")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("registry.url", DefaultRegistryURL)
	v.SetDefault("registry.timeout", "15s")
	v.SetDefault("registry.refresh_interval", "0s")
	v.SetDefault("registry.user_agent", "panda-menu")
	v.SetDefault("registry.max_body_size", DefaultMaxBodySize)
	v.SetDefault("cache.default_expiration", "0s")
	v.SetDefault("cache.cleanup_interval", "1h")
	v.SetDefault("menu.variant", "button")
	v.SetDefault("menu.host_rules_file", "")
	v.SetDefault("menu.links", []map[string]string{
		{"name": "GitHub", "url": "https://github.com/ethpandaops", "icon": "📦"},
		{"name": "Website", "url": "https://ethpandaops.io", "icon": "📚"},
		{"name": "Lab", "url": "https://lab.ethpandaops.io/", "icon": "🧪"},
	})
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "panda_menu")
	v.SetDefault("release.name", "panda-menu")
	v.SetDefault("release.dir", "release")
	v.SetDefault("release.source", "dist/panda-menu.js")
	v.SetDefault("release.package_json", "package.json")
	v.SetDefault("release.build_cmd", "")
	v.SetDefault("release.s3.enabled", false)
	v.SetDefault("release.s3.region", "us-east-1")
	v.SetDefault("release.s3.prefix", "panda-menu/")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("PANDA_MENU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validVariants is the set of recognized presentation variants.
var validVariants = map[string]bool{
	"button":  true,
	"sidebar": true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Registry.URL) == "" {
		return fmt.Errorf("registry.url is required")
	}
	if c.Registry.Timeout < 0 {
		return fmt.Errorf("registry.timeout must be non-negative")
	}
	if !validVariants[c.Menu.Variant] {
		return fmt.Errorf("invalid menu.variant %q: must be one of button, sidebar", c.Menu.Variant)
	}
	if c.Release.S3.Enabled && c.Release.S3.Bucket == "" {
		return fmt.Errorf("release.s3.bucket is required when release.s3.enabled is set")
	}
	return nil
}

func (c RegistryConfig) GetTimeout() time.Duration {
	return c.Timeout
}

func (c RegistryConfig) GetRefreshInterval() time.Duration {
	return c.RefreshInterval
}

// GetMaxBodySize falls back to DefaultMaxBodySize for non-positive values.
func (c RegistryConfig) GetMaxBodySize() int {
	if c.MaxBodySize <= 0 {
		return DefaultMaxBodySize
	}
	return c.MaxBodySize
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}
