package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all CLI configuration
type Config struct {
	// Server settings
	Host   string
	APIKey string

	// Request settings
	RequestTimeout time.Duration

	// Task wait settings
	WaitInterval time.Duration
	WaitTimeout  time.Duration

	// Watch settings
	WatchInterval time.Duration
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Host:           "http://localhost:7700",
		RequestTimeout: 30 * time.Second,
		WaitInterval:   50 * time.Millisecond,
		WaitTimeout:    5 * time.Second,
		WatchInterval:  time.Second,
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() {
	if host := os.Getenv("MEILI_HOST"); host != "" {
		c.Host = host
	}

	if apiKey := os.Getenv("MEILI_API_KEY"); apiKey != "" {
		c.APIKey = apiKey
	}

	if timeout := os.Getenv("MEILI_REQUEST_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.RequestTimeout = time.Duration(t) * time.Millisecond
		}
	}

	if interval := os.Getenv("MEILI_WAIT_INTERVAL"); interval != "" {
		if i, err := strconv.Atoi(interval); err == nil {
			c.WaitInterval = time.Duration(i) * time.Millisecond
		}
	}

	if timeout := os.Getenv("MEILI_WAIT_TIMEOUT"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			c.WaitTimeout = time.Duration(t) * time.Millisecond
		}
	}

	if interval := os.Getenv("MEILI_WATCH_INTERVAL"); interval != "" {
		if i, err := strconv.Atoi(interval); err == nil {
			c.WatchInterval = time.Duration(i) * time.Millisecond
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Host)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("host must be a valid URL, got: %q", c.Host)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %v", c.RequestTimeout)
	}

	if c.WaitInterval <= 0 {
		return fmt.Errorf("wait interval must be positive, got: %v", c.WaitInterval)
	}

	if c.WaitTimeout < c.WaitInterval {
		return fmt.Errorf("wait timeout must be at least the wait interval, got: %v < %v", c.WaitTimeout, c.WaitInterval)
	}

	if c.WatchInterval <= 0 {
		return fmt.Errorf("watch interval must be positive, got: %v", c.WatchInterval)
	}

	return nil
}
