package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeServer(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMapping()
	c.normalizeConversion()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.BaseURL = strings.TrimSpace(c.Server.BaseURL)
	if value, ok := os.LookupEnv("RDFMAP_SERVER_URL"); ok && strings.TrimSpace(value) != "" {
		c.Server.BaseURL = strings.TrimSpace(value)
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaultServerBaseURL
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")

	c.Server.APIToken = strings.TrimSpace(c.Server.APIToken)
	if c.Server.APIToken == "" {
		if value, ok := os.LookupEnv("RDFMAP_API_TOKEN"); ok {
			c.Server.APIToken = strings.TrimSpace(value)
		}
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultServerRequestTimeout
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMapping() {
	c.Mapping.BaseIRI = strings.TrimSpace(c.Mapping.BaseIRI)
	if c.Mapping.BaseIRI == "" {
		c.Mapping.BaseIRI = defaultMappingBaseIRI
	}
	c.Mapping.TargetClass = strings.TrimSpace(c.Mapping.TargetClass)
}

func (c *Config) normalizeConversion() {
	c.Conversion.OutputFormat = strings.ToLower(strings.TrimSpace(c.Conversion.OutputFormat))
	if c.Conversion.OutputFormat == "" {
		c.Conversion.OutputFormat = defaultOutputFormat
	}
	if c.Conversion.PollIntervalMS <= 0 {
		c.Conversion.PollIntervalMS = defaultPollIntervalMS
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
