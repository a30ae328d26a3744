// Package config holds the verification run configuration: target URL,
// wait timeouts, and screenshot artifact paths. Defaults reproduce the
// standard localhost verification; a YAML file can override any field.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Timeouts are expressed in milliseconds, matching the browser layer.
const (
	// DefaultTargetURL is the locally running Jubee app
	DefaultTargetURL = "http://localhost:3000"

	// DefaultButtonTimeout bounds the wait for the optional landing button
	DefaultButtonTimeout = 5000

	// DefaultHeadingTimeout bounds the wait for the home heading
	DefaultHeadingTimeout = 15000

	// DefaultNavigationTimeout bounds page navigation and all other waits
	DefaultNavigationTimeout = 30000

	// DefaultHomeScreenshot is written on a successful run
	DefaultHomeScreenshot = "verification_home.png"

	// DefaultErrorScreenshot is written when the run fails
	DefaultErrorScreenshot = "verification_error.png"
)

// Config represents the configuration for a verification run
type Config struct {
	// TargetURL is the address of the running Jubee app
	TargetURL string `yaml:"target_url"`

	// Headless controls whether the browser runs without a visible window
	Headless bool `yaml:"headless"`

	// Viewport dimensions for the browser context
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	// Wait timeouts in milliseconds
	ButtonTimeout     float64 `yaml:"button_timeout_ms"`
	HeadingTimeout    float64 `yaml:"heading_timeout_ms"`
	NavigationTimeout float64 `yaml:"navigation_timeout_ms"`

	// Screenshot artifact paths
	HomeScreenshot  string `yaml:"home_screenshot"`
	ErrorScreenshot string `yaml:"error_screenshot"`

	// Verbosity controls console output: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity"`
}

// Default returns a configuration reproducing the standard verification run.
func Default() *Config {
	return &Config{
		TargetURL:         DefaultTargetURL,
		Headless:          true,
		ViewportWidth:     1280,
		ViewportHeight:    720,
		ButtonTimeout:     DefaultButtonTimeout,
		HeadingTimeout:    DefaultHeadingTimeout,
		NavigationTimeout: DefaultNavigationTimeout,
		HomeScreenshot:    DefaultHomeScreenshot,
		ErrorScreenshot:   DefaultErrorScreenshot,
		Verbosity:         "normal",
	}
}

// Load reads a YAML configuration file, overlaying it onto the defaults.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.TargetURL)
	if err != nil {
		return fmt.Errorf("invalid target URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid target URL %q: scheme must be http or https", c.TargetURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid target URL %q: missing host", c.TargetURL)
	}

	if c.ButtonTimeout <= 0 {
		return fmt.Errorf("button_timeout_ms must be positive")
	}
	if c.HeadingTimeout <= 0 {
		return fmt.Errorf("heading_timeout_ms must be positive")
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("navigation_timeout_ms must be positive")
	}

	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive")
	}

	if c.HomeScreenshot == "" {
		return fmt.Errorf("home_screenshot path is required")
	}
	if c.ErrorScreenshot == "" {
		return fmt.Errorf("error_screenshot path is required")
	}

	validLevels := map[string]bool{
		"":        true,
		"quiet":   true,
		"normal":  true,
		"verbose": true,
		"debug":   true,
	}
	if !validLevels[c.Verbosity] {
		return fmt.Errorf("invalid verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Verbosity)
	}

	return nil
}
