package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Geocoder provider names accepted in providers.geocoder
const (
	GeocoderGeoapify  = "geoapify"
	GeocoderNominatim = "nominatim"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
	Providers ProvidersConfig
	Cache     CacheConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	SessionTTL      time.Duration // How long an idle selection session is kept
	MaxSessions     int           // Upper bound on live selection sessions
	SettleTimeout   time.Duration // How long a request waits for cascading fetches
	ResolveTimezone bool          // Attach an IANA timezone to resolved coordinates
}

// ProvidersConfig holds the external API settings
type ProvidersConfig struct {
	CountryStateCity CountryStateCityConfig
	Geocoder         string // geoapify, nominatim
	Geoapify         GeoapifyConfig
	Nominatim        NominatimConfig
}

type CountryStateCityConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type GeoapifyConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Path        string        // sqlite file for option lists, empty disables persistence
	TTL         time.Duration // Lifetime of a cached option list
	GeocodeSize int           // Max geocode results kept in memory
	GeocodeTTL  time.Duration // Lifetime of a cached geocode result
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.storefront-location")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("app.sessionttl", "30m")
	viper.SetDefault("app.maxsessions", 1024)
	viper.SetDefault("app.settletimeout", "10s")
	viper.SetDefault("app.resolvetimezone", true)
	viper.SetDefault("providers.countrystatecity.baseurl", "https://api.countrystatecity.in/v1")
	viper.SetDefault("providers.countrystatecity.apikey", "")
	viper.SetDefault("providers.countrystatecity.timeout", "10s")
	viper.SetDefault("providers.geocoder", GeocoderGeoapify)
	viper.SetDefault("providers.geoapify.baseurl", "https://api.geoapify.com/v1")
	viper.SetDefault("providers.geoapify.apikey", "")
	viper.SetDefault("providers.geoapify.timeout", "10s")
	viper.SetDefault("providers.nominatim.baseurl", "https://nominatim.openstreetmap.org")
	viper.SetDefault("providers.nominatim.useragent", "storefront-location/1.0")
	viper.SetDefault("providers.nominatim.timeout", "10s")
	viper.SetDefault("cache.path", "storefront-location.sqlite3")
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.geocodesize", 512)
	viper.SetDefault("cache.geocodettl", "1h")

	// Read from environment variables, e.g. STOREFRONT_PROVIDERS_GEOAPIFY_APIKEY
	viper.SetEnvPrefix("STOREFRONT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the application cannot start with
func (c *Config) Validate() error {
	switch strings.ToLower(c.Providers.Geocoder) {
	case GeocoderGeoapify, GeocoderNominatim:
	default:
		return fmt.Errorf("unknown geocoder provider %q", c.Providers.Geocoder)
	}
	if c.App.MaxSessions <= 0 {
		return fmt.Errorf("app.maxsessions must be positive, got %d", c.App.MaxSessions)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
