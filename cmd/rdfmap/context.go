package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"rdfmap/internal/config"
	"rdfmap/internal/jobs"
	"rdfmap/internal/jobstore"
	"rdfmap/internal/logging"
	"rdfmap/internal/querycache"
	"rdfmap/internal/webapi"
	"rdfmap/internal/workflow"
)

type commandContext struct {
	configFlag  *string
	serverFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	clientOnce sync.Once
	client     *webapi.Client
	clientErr  error

	cache *querycache.Cache
}

func newCommandContext(configFlag, serverFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		serverFlag:  serverFlag,
		verboseFlag: verboseFlag,
		cache:       querycache.New(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.serverFlag != nil {
			if server := strings.TrimSpace(*c.serverFlag); server != "" {
				cfg.Server.BaseURL = strings.TrimRight(server, "/")
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		if c.verboseFlag != nil && *c.verboseFlag {
			logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: os.Stderr})
			if err == nil {
				c.logger = logger
				return
			}
		}
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) apiClient() (*webapi.Client, error) {
	c.clientOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.clientErr = err
			return
		}
		client, err := webapi.New(
			cfg.Server.BaseURL,
			cfg.Server.APIToken,
			cfg.RequestTimeout(),
			webapi.WithCache(c.cache),
			webapi.WithLogger(c.ensureLogger()),
		)
		if err != nil {
			c.clientErr = err
			return
		}
		c.client = client
	})
	return c.client, c.clientErr
}

// service builds a workflow service without local job tracking.
func (c *commandContext) service() (*workflow.Service, error) {
	client, err := c.apiClient()
	if err != nil {
		return nil, err
	}
	return workflow.NewService(client, workflow.WithLogger(c.ensureLogger())), nil
}

// withStore runs fn with an open job store, closing it afterwards.
func (c *commandContext) withStore(fn func(*jobstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := jobstore.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// trackedService runs fn with a workflow service that records queued
// conversions into the job store.
func (c *commandContext) trackedService(fn func(*workflow.Service, *jobstore.Store) error) error {
	client, err := c.apiClient()
	if err != nil {
		return err
	}
	return c.withStore(func(store *jobstore.Store) error {
		service := workflow.NewService(client,
			workflow.WithLogger(c.ensureLogger()),
			workflow.WithJobRecorder(store),
		)
		return fn(service, store)
	})
}

func (c *commandContext) poller(opts ...jobs.PollerOption) (*jobs.Poller, error) {
	client, err := c.apiClient()
	if err != nil {
		return nil, err
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	base := []jobs.PollerOption{
		jobs.WithInterval(cfg.PollInterval()),
		jobs.WithLogger(c.ensureLogger()),
	}
	return jobs.NewPoller(client, append(base, opts...)...), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
