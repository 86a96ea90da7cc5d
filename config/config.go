// Package config holds the runtime configuration, the request-scoped
// context and the YAML model factory.
package config

import (
	"sync"
	"time"
)

// Config is the runtime configuration shared by all components. It is a
// value type: contexts carry copies, so a config read never races with a
// context switch.
type Config struct {
	// Debug enables verbose processing diagnostics.
	Debug bool

	// IgnoreMissingResources keeps the partial-failure policy: an
	// unreadable resource contributes empty content instead of failing
	// the whole group. When false, a read failure aborts the request.
	IgnoreMissingResources bool

	// CacheUpdatePeriod is how often cached artifacts should be
	// recomputed by a surrounding scheduler. Zero disables periodic
	// refresh. The core itself never evicts on time.
	CacheUpdatePeriod time.Duration

	// ModelUpdatePeriod is how often the model should be reloaded by a
	// surrounding scheduler. Zero disables periodic reload.
	ModelUpdatePeriod time.Duration
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{IgnoreMissingResources: true}
}

// ReadOnlyContext is the view of the current request scope handed to
// injected consumers. Implementations must be safe for concurrent use.
type ReadOnlyContext interface {
	Config() Config
}

// Context is the mutable request-scope state owned by the serving layer.
type Context struct {
	cfg Config
}

// NewContext builds a context carrying the given configuration.
func NewContext(cfg Config) *Context {
	return &Context{cfg: cfg}
}

// Config implements ReadOnlyContext.
func (c *Context) Config() Config { return c.cfg }

// Resolver returns the context of the current logical scope. The serving
// layer owns scope bookkeeping; the core only ever resolves through this
// indirection, and does so on every call, never caching the result.
type Resolver func() ReadOnlyContext

// Holder is a minimal current-context store for serving layers that do
// not carry a context of their own. Safe for concurrent use.
type Holder struct {
	mu      sync.RWMutex
	current ReadOnlyContext
}

// NewHolder builds a Holder seeded with a default-config context.
func NewHolder() *Holder {
	return &Holder{current: NewContext(DefaultConfig())}
}

// Set replaces the current context.
func (h *Holder) Set(ctx ReadOnlyContext) {
	h.mu.Lock()
	h.current = ctx
	h.mu.Unlock()
}

// Get returns the current context.
func (h *Holder) Get() ReadOnlyContext {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Resolver returns a Resolver backed by the holder.
func (h *Holder) Resolver() Resolver {
	return func() ReadOnlyContext { return h.Get() }
}

// proxy forwards every ReadOnlyContext call to whatever the resolver
// returns at call time. A single injected field therefore stays correct
// across scope switches without re-injection.
type proxy struct {
	resolve Resolver
}

// NewProxy wraps a resolver into a ReadOnlyContext.
func NewProxy(resolve Resolver) ReadOnlyContext {
	return proxy{resolve: resolve}
}

func (p proxy) Config() Config { return p.resolve().Config() }
