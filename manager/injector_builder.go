package manager

import (
	"errors"
	"os"

	"go.uber.org/zap"

	"github.com/valery1707/wro4j/cache"
	"github.com/valery1707/wro4j/config"
	"github.com/valery1707/wro4j/hashing"
	"github.com/valery1707/wro4j/injector"
	"github.com/valery1707/wro4j/locator"
	"github.com/valery1707/wro4j/model"
	"github.com/valery1707/wro4j/naming"
	"github.com/valery1707/wro4j/processor"
)

// ErrNilDependency is returned by Build when a With setter was called
// with nil for a mandatory dependency.
var ErrNilDependency = errors.New("manager: nil dependency")

// InjectorBuilder is the composition root. It accumulates strategy
// implementations through With setters, then Build assembles the sealed
// registry, wires every component (including the components used to
// build other components) and returns the ready Manager.
//
// Every unset dependency gets a sensible default; the only mandatory
// input is the model factory.
type InjectorBuilder struct {
	modelFactory      model.Factory
	modelTransformers []model.Transformer
	locatorFactory    locator.Factory
	processors        processor.Factory
	rawCache          cache.Strategy
	hash              hashing.Strategy
	naming            naming.Strategy
	extractor         GroupExtractor
	resolver          config.Resolver
	callbacks         *CallbackRegistry
	logger            *zap.Logger

	extra map[injector.Key]injector.Factory
	built bool
	err   error
}

// NewInjectorBuilder returns a builder with empty configuration.
func NewInjectorBuilder() *InjectorBuilder {
	return &InjectorBuilder{
		callbacks: NewCallbackRegistry(),
		extra:     make(map[injector.Key]injector.Factory),
	}
}

// fail records the first configuration error; Build reports it.
func (b *InjectorBuilder) fail(err error) *InjectorBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// WithModelFactory sets the entity graph loader. Mandatory.
func (b *InjectorBuilder) WithModelFactory(f model.Factory) *InjectorBuilder {
	if f == nil {
		return b.fail(ErrNilDependency)
	}
	b.modelFactory = f
	return b
}

// WithModelTransformers appends model transformers applied on every
// model load, in order.
func (b *InjectorBuilder) WithModelTransformers(ts ...model.Transformer) *InjectorBuilder {
	for _, t := range ts {
		if t == nil {
			return b.fail(ErrNilDependency)
		}
	}
	b.modelTransformers = append(b.modelTransformers, ts...)
	return b
}

// WithLocatorFactory sets the resource content reader. Defaults to a
// filesystem locator rooted at the working directory.
func (b *InjectorBuilder) WithLocatorFactory(f locator.Factory) *InjectorBuilder {
	if f == nil {
		return b.fail(ErrNilDependency)
	}
	b.locatorFactory = f
	return b
}

// WithProcessorsFactory sets the processor registry. Defaults to an
// empty registry (raw concatenation).
func (b *InjectorBuilder) WithProcessorsFactory(f processor.Factory) *InjectorBuilder {
	if f == nil {
		return b.fail(ErrNilDependency)
	}
	b.processors = f
	return b
}

// WithCacheStrategy sets the raw cache backend. Build wraps it in the
// synchronized decorator; never pass an already decorated strategy.
// Defaults to the in-memory LRU strategy.
func (b *InjectorBuilder) WithCacheStrategy(s cache.Strategy) *InjectorBuilder {
	if s == nil {
		return b.fail(ErrNilDependency)
	}
	b.rawCache = s
	return b
}

// WithHashStrategy sets the fingerprint strategy. Defaults to SHA-1.
func (b *InjectorBuilder) WithHashStrategy(s hashing.Strategy) *InjectorBuilder {
	if s == nil {
		return b.fail(ErrNilDependency)
	}
	b.hash = s
	return b
}

// WithNamingStrategy sets the artifact renaming strategy. Defaults to
// NoOp.
func (b *InjectorBuilder) WithNamingStrategy(s naming.Strategy) *InjectorBuilder {
	if s == nil {
		return b.fail(ErrNilDependency)
	}
	b.naming = s
	return b
}

// WithGroupExtractor sets the request path decoder. Defaults to
// DefaultGroupExtractor.
func (b *InjectorBuilder) WithGroupExtractor(e GroupExtractor) *InjectorBuilder {
	if e == nil {
		return b.fail(ErrNilDependency)
	}
	b.extractor = e
	return b
}

// WithContextResolver sets the current-scope resolver backing the
// injected ReadOnlyContext proxy. Defaults to a fresh config.Holder.
func (b *InjectorBuilder) WithContextResolver(r config.Resolver) *InjectorBuilder {
	if r == nil {
		return b.fail(ErrNilDependency)
	}
	b.resolver = r
	return b
}

// WithCallback registers a lifecycle callback.
func (b *InjectorBuilder) WithCallback(cb LifecycleCallback) *InjectorBuilder {
	b.callbacks.Add(cb)
	return b
}

// WithLogger sets the diagnostics logger for every built component.
func (b *InjectorBuilder) WithLogger(l *zap.Logger) *InjectorBuilder {
	if l == nil {
		return b.fail(ErrNilDependency)
	}
	b.logger = l
	return b
}

// Register binds an additional (key, factory) pair, extending the set
// of contracts consumers may declare in their Requirements.
func (b *InjectorBuilder) Register(key injector.Key, f injector.Factory) *InjectorBuilder {
	if f == nil {
		return b.fail(injector.ErrNilFactory)
	}
	b.extra[key] = f
	return b
}

// Build assembles the sealed registry, constructs the injector and
// returns the fully wired Manager.
//
// The registry is populated with factory closures before the injector
// exists; closures that need it resolve it through the builder after
// sealing. Build may be called once.
func (b *InjectorBuilder) Build() (*Manager, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, injector.ErrSealed
	}
	if b.modelFactory == nil {
		return nil, ErrNilDependency
	}
	b.built = true
	b.applyDefaults()

	preExecutor := processor.NewPreProcessorExecutor(b.logger)
	groupsProcessor := processor.NewGroupsProcessor(b.logger)
	mgr := NewManager(b.logger)

	// Decorators are composed here, once; consumers only ever see the
	// decorated instances.
	synchronizedCache, err := cache.NewSynchronized(b.rawCache)
	if err != nil {
		return nil, err
	}
	decoratedModelFactory, err := model.Decorate(b.modelFactory, b.modelTransformers...)
	if err != nil {
		return nil, err
	}

	ib := injector.NewBuilder()
	awareLocatorFactory, err := locator.NewInjectorAware(b.locatorFactory, func(target any) error {
		inj, err := ib.Injector()
		if err != nil {
			return err
		}
		return inj.Inject(target)
	})
	if err != nil {
		return nil, err
	}

	resolver := b.resolver
	bindings := map[injector.Key]injector.Factory{
		injector.KeyPreProcessorExecutor: ib.Delegating(preExecutor),
		injector.KeyGroupsProcessor:      ib.Delegating(groupsProcessor),
		injector.KeyProcessorsFactory:    injector.Static(b.processors),
		injector.KeyLocatorFactory:       injector.Static(locator.Factory(awareLocatorFactory)),
		injector.KeyModelFactory:         injector.Static(model.Factory(decoratedModelFactory)),
		injector.KeyHashStrategy:         injector.Static(b.hash),
		injector.KeyNamingStrategy:       injector.Static(b.naming),
		injector.KeyCacheStrategy:        injector.Static(synchronizedCache),
		injector.KeyGroupExtractor:       injector.Static(b.extractor),
		injector.KeyCallbackRegistry:     injector.Static(b.callbacks),
		injector.KeyContext:              injector.Static(config.NewProxy(resolver)),
		injector.KeyConfig: func() (any, error) {
			// Resolved per injection, so consumers wired in different
			// scopes see that scope's configuration.
			return resolver().Config(), nil
		},
	}
	for key, factory := range bindings {
		if err := ib.Register(key, factory); err != nil {
			return nil, err
		}
	}
	for key, factory := range b.extra {
		if err := ib.Register(key, factory); err != nil {
			return nil, err
		}
	}

	inj, err := ib.Build()
	if err != nil {
		return nil, err
	}
	if err := inj.Inject(mgr); err != nil {
		return nil, err
	}
	return mgr, nil
}

func (b *InjectorBuilder) applyDefaults() {
	if b.locatorFactory == nil {
		f, _ := locator.NewSimpleFactory(locator.NewFSLocator(os.DirFS(".")))
		b.locatorFactory = f
	}
	if b.processors == nil {
		b.processors = processor.NewSimpleFactory()
	}
	if b.rawCache == nil {
		b.rawCache = cache.NewDefaultLRU()
	}
	if b.hash == nil {
		b.hash = hashing.SHA1{}
	}
	if b.naming == nil {
		b.naming = naming.NoOp{}
	}
	if b.extractor == nil {
		b.extractor = DefaultGroupExtractor{}
	}
	if b.resolver == nil {
		b.resolver = config.NewHolder().Resolver()
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
}
