package container

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Config"
	logger "gitlab.com/maplesense1/greenhouse.web_ui/src/production/GHM.Logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth:    config.AuthConfig{APIBase: "http://api.local", Timeout: time.Second},
		Session: config.SessionConfig{MaxAge: time.Hour},
	}
}

func TestGetAuthClientIsShared(t *testing.T) {
	c := NewWebContainerFromConfig(testConfig(), logger.Nop())

	first := c.GetAuthClient()
	require.NotNil(t, first)
	assert.Same(t, first, c.GetAuthClient())
	assert.Equal(t, "http://api.local", first.APIBase())
	assert.NotNil(t, c.GetGenerator())
}

func TestShutdownRunsCleanupInReverse(t *testing.T) {
	c := NewWebContainerFromConfig(testConfig(), logger.Nop())

	var order []int
	c.AddCleanupFunc(func() error { order = append(order, 1); return nil })
	c.AddCleanupFunc(func() error { order = append(order, 2); return errors.New("ignored") })
	c.AddCleanupFunc(func() error { order = append(order, 3); return nil })

	require.NoError(t, c.Shutdown(context.Background()))
	assert.Equal(t, []int{3, 2, 1}, order)

	require.NoError(t, c.Shutdown(context.Background()))
	assert.Len(t, order, 3, "cleanup runs once")
}

func TestPublisherShutdownRunsCleanup(t *testing.T) {
	c := NewPublisherContainerFromConfig(&config.PublisherConfig{Interval: time.Second}, logger.Nop())

	var stopped []string
	c.AddCleanupFunc(func() error { stopped = append(stopped, "broker"); return nil })
	c.AddCleanupFunc(func() error { stopped = append(stopped, "publisher"); return nil })

	require.NoError(t, c.Shutdown(context.Background()))
	assert.Equal(t, []string{"publisher", "broker"}, stopped)
}

func TestShutdownStopsOnCancelledContext(t *testing.T) {
	c := NewWebContainerFromConfig(testConfig(), logger.Nop())

	called := false
	c.AddCleanupFunc(func() error { called = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Shutdown(ctx), context.Canceled)
	assert.False(t, called)
}
