// Package config provides ipmi-batch configuration loaded from a YAML file
// and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/ipmi-go/pkg/collector"
	"github.com/mash-protocol/ipmi-go/pkg/ipmi"
	"github.com/mash-protocol/ipmi-go/pkg/log"
)

// Config holds ipmi-batch configuration.
type Config struct {
	// Device is the OpenIPMI character device.
	Device string `yaml:"device" envconfig:"IPMI_DEVICE"`

	// NSim is the maximum number of outstanding requests per batch.
	NSim int `yaml:"nsim" envconfig:"IPMI_NSIM"`

	// Timeout bounds each wait for a response.
	Timeout time.Duration `yaml:"timeout" envconfig:"IPMI_TIMEOUT"`

	// TrustMessageIDs accepts repeated responses for the same request.
	TrustMessageIDs bool `yaml:"trust_message_ids" envconfig:"IPMI_TRUST_MESSAGE_IDS"`

	// Logging
	LogLevel    string `yaml:"log_level" envconfig:"IPMI_LOG_LEVEL"`
	ProtocolLog string `yaml:"protocol_log" envconfig:"IPMI_PROTOCOL_LOG"`

	// VendorFile replaces the built-in vendor description.
	VendorFile string `yaml:"vendor_file" envconfig:"IPMI_VENDOR_FILE"`

	// Interval is the collection period of watch mode.
	Interval time.Duration `yaml:"interval" envconfig:"IPMI_INTERVAL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Device:   ipmi.DefaultDevice,
		NSim:     collector.DefaultNSim,
		Timeout:  ipmi.DefaultTimeout,
		LogLevel: "info",
		Interval: 10 * time.Second,
	}
}

// LoadError provides details about a configuration loading error.
type LoadError struct {
	// File is the path to the file that failed to load, empty for
	// environment errors.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads path over the defaults, then applies IPMI_* environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, &LoadError{File: path, Message: "failed to parse YAML", Cause: err}
		}
	}

	if err := envconfig.Process("", c); err != nil {
		return nil, &LoadError{Message: "invalid environment", Cause: err}
	}
	return c, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Device == "" {
		return fmt.Errorf("config: device is required")
	}
	if c.NSim < 1 {
		return fmt.Errorf("config: nsim must be at least 1, got %d", c.NSim)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("config: interval must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Engine returns the batch engine configuration.
func (c *Config) Engine(logger *slog.Logger, plog log.Logger) ipmi.Config {
	return ipmi.Config{
		Device:          c.Device,
		Timeout:         c.Timeout,
		TrustMessageIDs: c.TrustMessageIDs,
		Logger:          logger,
		ProtocolLogger:  plog,
	}
}

// Vendor loads the configured vendor description, or the built-in one.
func (c *Config) Vendor() (*collector.Vendor, error) {
	if c.VendorFile == "" {
		return collector.DefaultVendor(), nil
	}
	return collector.LoadVendor(c.VendorFile)
}
