package main

import (
	"fmt"
	"os"
	"time"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/yamlutil"
)

// Config is the YAML server configuration. Flags override file values.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Browser   BrowserConfig   `yaml:"browser"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Renders   RendersConfig   `yaml:"renders"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"`
}

type BrowserConfig struct {
	Bin     string `yaml:"bin"`
	Sandbox bool   `yaml:"sandbox"`
}

type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"windowSeconds"`
}

type RendersConfig struct {
	// MaxConcurrent bounds simultaneous browser sessions. Zero means
	// unbounded, a negative value sizes the bound from the CPU count.
	MaxConcurrent int `yaml:"maxConcurrent"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        defaultHost,
			Port:        defaultPort,
			Environment: "local",
		},
		RateLimit: RateLimitConfig{
			Requests:      web2pdf.DefaultRateLimit,
			WindowSeconds: int(web2pdf.DefaultRateWindow / time.Second),
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty
// path returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// ApplyFlags overlays explicitly set flags onto the config.
func (c *Config) ApplyFlags(f *serverFlags) {
	if f.changed("host") {
		c.Server.Host = f.host
	}
	if f.changed("port") {
		c.Server.Port = f.port
	}
	if f.changed("browser-bin") {
		c.Browser.Bin = f.browserBin
	}
	if f.changed("sandbox") {
		c.Browser.Sandbox = f.sandbox
	}
	if f.changed("max-renders") {
		c.Renders.MaxConcurrent = f.maxRenders
	}
	if f.changed("rate-limit") {
		c.RateLimit.Requests = f.rateLimit
	}
	if f.changed("rate-window") {
		c.RateLimit.WindowSeconds = int(f.rateWindow / time.Second)
	}
}

// RateWindow returns the configured window as a duration.
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}
