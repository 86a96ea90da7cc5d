package injector

import "sync"

// Builder accumulates (key, factory) bindings and seals them into an
// Injector.
//
// Build is a two-phase protocol. Phase one registers factories; some of
// them need the injector that does not exist yet, so they capture the
// builder and resolve it through Injector() at call time. Phase two
// seals the registry, constructs the injector, binds it under
// KeyInjector and fills the back-reference cell, after which the
// deferred factories may run. This breaks the circular dependency
// between the injector and the components the injector injects without
// any caller-visible two-step initialization.
type Builder struct {
	mu        sync.Mutex
	factories map[Key]Factory
	built     *Injector
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{factories: make(map[Key]Factory)}
}

// Register binds a factory to a key.
//
// It fails fast on a nil factory, a duplicate key or a sealed builder.
func (b *Builder) Register(key Key, factory Factory) error {
	if factory == nil {
		return ErrNilFactory
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built != nil {
		return ErrSealed
	}
	if _, exists := b.factories[key]; exists {
		return DuplicateKeyError{Key: key}
	}
	b.factories[key] = factory
	return nil
}

// Injector returns the built injector, or ErrNotBuilt before Build.
// Deferred factories call this at resolve time.
func (b *Builder) Injector() (*Injector, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built == nil {
		return nil, ErrNotBuilt
	}
	return b.built, nil
}

// Delegating returns a factory producing the given singleton after
// lazily injecting its fields through the builder's injector. The
// factory is stable: it always returns the same instance, and repeated
// injection of that instance assigns the same values.
func (b *Builder) Delegating(singleton any) Factory {
	return func() (any, error) {
		inj, err := b.Injector()
		if err != nil {
			return nil, err
		}
		if err := inj.Inject(singleton); err != nil {
			return nil, err
		}
		return singleton, nil
	}
}

// Static returns a factory producing a fixed value with no injection.
func Static(value any) Factory {
	return func() (any, error) { return value, nil }
}

// Build seals the registry and constructs the injector.
//
// The injector itself is bound under KeyInjector. Build can run once;
// later calls return ErrSealed.
func (b *Builder) Build() (*Injector, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built != nil {
		return nil, ErrSealed
	}

	registry := make(map[Key]Factory, len(b.factories)+1)
	for k, f := range b.factories {
		registry[k] = f
	}
	inj := &Injector{registry: registry}
	registry[KeyInjector] = func() (any, error) { return inj, nil }

	// Fill the back-reference cell only after the registry is sealed.
	b.built = inj
	return inj, nil
}
