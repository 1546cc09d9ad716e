package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Precedence order:
// 1. Command-line flags (bound by individual commands)
// 2. Environment variables (ATSBUDDY_API_BASEURL, etc.)
// 3. Config file values
// 4. Default values
type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Auth          AuthConfig          `mapstructure:"auth"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// APIConfig holds backend endpoint configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"baseURL"`
	Timeout time.Duration `mapstructure:"timeout"`
	Breaker BreakerConfig `mapstructure:"circuitBreaker"`
}

// BreakerConfig represents circuit breaker configuration
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// AuthConfig holds identity provider and credential storage configuration.
// An empty GoogleClientID disables the Google sign-in path without failing
// the app.
type AuthConfig struct {
	GoogleClientID     string `mapstructure:"googleClientID"`
	GoogleClientSecret string `mapstructure:"googleClientSecret"`
	CredentialsFile    string `mapstructure:"credentialsFile"`
}

// GoogleEnabled reports whether the Google sign-in path is configured.
func (a AuthConfig) GoogleEnabled() bool {
	return strings.TrimSpace(a.GoogleClientID) != ""
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
}

// ObservabilityConfig holds tracing configuration
type ObservabilityConfig struct {
	Enabled       bool       `mapstructure:"enabled"`
	ServiceName   string     `mapstructure:"serviceName"`
	ConsoleOutput bool       `mapstructure:"consoleOutput"`
	SampleRate    float64    `mapstructure:"sampleRate"`
	OTLP          OTLPConfig `mapstructure:"otlp"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ATSBUDDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/atsbuddy/")
	v.AddConfigPath("$HOME/.atsbuddy")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Backend API
	v.SetDefault("api.baseURL", "http://localhost:8000")
	v.SetDefault("api.timeout", 30*time.Second)

	// Circuit breaker: off by default so the client imposes no availability
	// policy beyond the transport unless asked to.
	v.SetDefault("api.circuitBreaker.enabled", false)
	v.SetDefault("api.circuitBreaker.maxRequests", 3)
	v.SetDefault("api.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("api.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("api.circuitBreaker.minRequests", 3)
	v.SetDefault("api.circuitBreaker.failureThreshold", 0.6)

	// Auth
	v.SetDefault("auth.googleClientID", "")
	v.SetDefault("auth.googleClientSecret", "")
	v.SetDefault("auth.credentialsFile", "") // empty: user config dir

	// App
	v.SetDefault("app.logLevel", "warn")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})

	// Observability
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "atsbuddy")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return fmt.Errorf("API base URL is required (set ATSBUDDY_API_BASEURL)")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if c.API.Breaker.Enabled {
		if c.API.Breaker.FailureThreshold <= 0 || c.API.Breaker.FailureThreshold > 1 {
			return fmt.Errorf("circuit breaker failure threshold must be in (0, 1]")
		}
	}

	return nil
}
