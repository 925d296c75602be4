package container

import (
	"context"
	"fmt"
	"sync"

	authform "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.AuthForm"
	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	demo "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Demo"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
)

// WebContainer manages the web service dependencies and their lifecycle
type WebContainer struct {
	config    *config.Config
	logger    *logger.Logger
	generator *demo.Generator

	authClient *authform.Client

	// Mutex for thread-safe access
	mu sync.Mutex

	// Cleanup functions
	cleanupFuncs []func() error
}

// PublisherContainer manages dependencies for the demo publisher
type PublisherContainer struct {
	config *config.PublisherConfig
	logger *logger.Logger

	mu           sync.Mutex
	cleanupFuncs []func() error
}

// NewWebContainer creates a new container for the web service
func NewWebContainer() (*WebContainer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load web configuration: %w", err)
	}
	return NewWebContainerFromConfig(cfg, logger.NewLogger(&cfg.Logging)), nil
}

// NewWebContainerFromConfig skips environment loading
func NewWebContainerFromConfig(cfg *config.Config, log *logger.Logger) *WebContainer {
	return &WebContainer{
		config:    cfg,
		logger:    log,
		generator: demo.Default(),
	}
}

// NewPublisherContainer creates a new container for the demo publisher
func NewPublisherContainer() (*PublisherContainer, error) {
	cfg, err := config.LoadPublisherConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load publisher configuration: %w", err)
	}

	return NewPublisherContainerFromConfig(cfg, logger.NewLogger(&cfg.Logging)), nil
}

// NewPublisherContainerFromConfig skips environment loading
func NewPublisherContainerFromConfig(cfg *config.PublisherConfig, log *logger.Logger) *PublisherContainer {
	return &PublisherContainer{
		config: cfg,
		logger: log,
	}
}

// GetConfig returns the configuration
func (c *WebContainer) GetConfig() *config.Config {
	return c.config
}

// GetConfig returns the publisher configuration
func (c *PublisherContainer) GetConfig() *config.PublisherConfig {
	return c.config
}

// GetLogger returns the logger
func (c *WebContainer) GetLogger() *logger.Logger {
	return c.logger
}

// GetLogger returns the logger
func (c *PublisherContainer) GetLogger() *logger.Logger {
	return c.logger
}

// GetGenerator returns the demo data generator
func (c *WebContainer) GetGenerator() *demo.Generator {
	return c.generator
}

// GetAuthClient returns the client for the external auth API, creating it on first use
func (c *WebContainer) GetAuthClient() *authform.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.authClient == nil {
		c.authClient = authform.NewClient(c.config.Auth.APIBase, c.config.Auth.Timeout)
		c.logger.WithField("api_base", c.config.Auth.APIBase).Info("Auth API client ready")
	}
	return c.authClient
}

// AddCleanupFunc adds a cleanup function
func (c *WebContainer) AddCleanupFunc(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// AddCleanupFunc adds a cleanup function
func (c *PublisherContainer) AddCleanupFunc(fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
}

// Shutdown runs the cleanup functions in reverse order
func (c *WebContainer) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down container...")

	c.mu.Lock()
	funcs := c.cleanupFuncs
	c.cleanupFuncs = nil
	c.mu.Unlock()

	if err := runCleanup(ctx, c.logger, funcs); err != nil {
		return err
	}

	c.logger.Info("Container shutdown complete")
	return nil
}

// Shutdown gracefully shuts down the publisher container
func (c *PublisherContainer) Shutdown(ctx context.Context) error {
	c.logger.Info("Shutting down publisher container...")

	c.mu.Lock()
	funcs := c.cleanupFuncs
	c.cleanupFuncs = nil
	c.mu.Unlock()

	if err := runCleanup(ctx, c.logger, funcs); err != nil {
		return err
	}

	c.logger.Info("Publisher container shutdown complete")
	return nil
}

// runCleanup calls funcs last-registered first. Failures are logged and do
// not stop the remaining cleanups.
func runCleanup(ctx context.Context, log *logger.Logger, funcs []func() error) error {
	for i := len(funcs) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := funcs[i](); err != nil {
			log.ErrorWithError(err, "Error during cleanup")
		}
	}
	return nil
}
