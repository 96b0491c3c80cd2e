package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultListenAddress = "localhost:9684"
	DefaultLogLevel      = "info"
	DefaultUpstreamURL   = "http://localhost:5601"
	DefaultFetchTimeout  = 5 * time.Second
	DefaultUsernameEnv   = "OPENSEARCH_DASHBOARDS_USER"
	DefaultPasswordEnv   = "OPENSEARCH_DASHBOARDS_PASSWORD"
)

// Config is the top-level exporter configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	// ListenAddress is the host:port the metrics HTTP server binds to.
	ListenAddress string `yaml:"listen_address"`

	// LogLevel selects the slog level: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	// Upstream describes the monitored OpenSearch Dashboards instance.
	Upstream UpstreamConfig `yaml:"upstream"`
}

// UpstreamConfig holds the connection settings for the Dashboards API.
type UpstreamConfig struct {
	// URL is the base URL of the Dashboards instance. A trailing slash
	// is tolerated; the client strips it before appending API paths.
	URL string `yaml:"url"`

	// Timeout bounds each status/stats fetch.
	Timeout time.Duration `yaml:"timeout"`

	// Auth configures HTTP basic auth for the API endpoints.
	Auth AuthConfig `yaml:"auth"`

	// TLS holds optional TLS options for HTTPS upstreams.
	TLS TLSConfig `yaml:"tls"`
}

// AuthConfig specifies the basic-auth credentials for the upstream API.
type AuthConfig struct {
	// Username is the literal username (safe to store in config).
	// When empty, the variable named by UsernameEnv is consulted.
	Username string `yaml:"username"`

	// UsernameEnv is the name of the environment variable that holds the
	// username when Username is empty.
	UsernameEnv string `yaml:"username_env"`

	// PasswordEnv is the name of the environment variable that holds the
	// password. The password itself never lives in the config file.
	PasswordEnv string `yaml:"password_env"`
}

// User returns the basic-auth username, preferring the literal config value
// over the environment variable.
func (a AuthConfig) User() string {
	if a.Username != "" {
		return a.Username
	}
	if a.UsernameEnv == "" {
		return ""
	}
	return os.Getenv(a.UsernameEnv)
}

// Password returns the basic-auth password resolved from the environment.
// Returns empty string if PasswordEnv is unset or the variable is not found.
func (a AuthConfig) Password() string {
	if a.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(a.PasswordEnv)
}

// TLSConfig holds upstream TLS options.
type TLSConfig struct {
	// InsecureSkipVerify disables TLS certificate verification.
	// Only use this for self-signed certs in lab environments.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// Load reads and parses the YAML config file at path. An empty path skips
// the file entirely. Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Level converts the configured log level to its slog value.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		LogLevel:      DefaultLogLevel,
		Upstream: UpstreamConfig{
			URL:     DefaultUpstreamURL,
			Timeout: DefaultFetchTimeout,
			Auth: AuthConfig{
				UsernameEnv: DefaultUsernameEnv,
				PasswordEnv: DefaultPasswordEnv,
			},
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return fmt.Errorf("listen_address %q: %w", cfg.ListenAddress, err)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required")
	}
	u, err := url.Parse(cfg.Upstream.URL)
	if err != nil {
		return fmt.Errorf("upstream.url %q: %w", cfg.Upstream.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("upstream.url %q: scheme must be http or https", cfg.Upstream.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("upstream.url %q: host is required", cfg.Upstream.URL)
	}
	if cfg.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive")
	}
	return nil
}
