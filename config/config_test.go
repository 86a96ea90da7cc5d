package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valery1707/wro4j/config"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	assert.True(t, cfg.IgnoreMissingResources)
	assert.False(t, cfg.Debug)
}

func TestHolder_SetAndGet(t *testing.T) {
	t.Parallel()

	h := config.NewHolder()
	require.NotNil(t, h.Get())
	assert.True(t, h.Get().Config().IgnoreMissingResources)

	h.Set(config.NewContext(config.Config{Debug: true}))
	assert.True(t, h.Get().Config().Debug)
}

func TestProxy_ForwardsPerCall(t *testing.T) {
	t.Parallel()

	h := config.NewHolder()
	proxy := config.NewProxy(h.Resolver())

	// The proxy is injected once but must observe scope switches.
	assert.False(t, proxy.Config().Debug)

	h.Set(config.NewContext(config.Config{Debug: true}))
	assert.True(t, proxy.Config().Debug)

	h.Set(config.NewContext(config.Config{Debug: false}))
	assert.False(t, proxy.Config().Debug)
}
