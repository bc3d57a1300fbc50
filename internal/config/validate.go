package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateMapping(); err != nil {
		return err
	}
	if err := c.validateConversion(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.BaseURL == "" {
		return errors.New("server.base_url must be set (or set RDFMAP_SERVER_URL)")
	}
	parsed, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url is not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("server.base_url must use http or https, got %q", c.Server.BaseURL)
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateMapping() error {
	if c.Mapping.MinConfidence < 0 || c.Mapping.MinConfidence > 1 {
		return errors.New("mapping.min_confidence must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateConversion() error {
	if !slices.Contains(OutputFormats, c.Conversion.OutputFormat) {
		return fmt.Errorf("conversion.output_format must be one of %s", strings.Join(OutputFormats, ", "))
	}
	if c.Conversion.PollIntervalMS <= 0 {
		return errors.New("conversion.poll_interval_ms must be positive")
	}
	return nil
}
