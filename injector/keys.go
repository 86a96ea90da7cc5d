package injector

// Well-known contract keys. Domain packages declare requirements against
// these; the composition root (manager.NewInjectorBuilder) binds them.
// The constants are plain strings so domain packages depend only on this
// package, never on each other through the registry.
const (
	// KeyInjector resolves to the sealed *Injector itself.
	KeyInjector Key = "injector"

	// KeyPreProcessorExecutor resolves to the per-resource chain executor.
	KeyPreProcessorExecutor Key = "preProcessorExecutor"

	// KeyGroupsProcessor resolves to the merge engine.
	KeyGroupsProcessor Key = "groupsProcessor"

	// KeyProcessorsFactory resolves to the processor registry.
	KeyProcessorsFactory Key = "processorsFactory"

	// KeyLocatorFactory resolves to the resource locator factory.
	KeyLocatorFactory Key = "uriLocatorFactory"

	// KeyModelFactory resolves to the (decorated) model factory.
	KeyModelFactory Key = "modelFactory"

	// KeyHashStrategy resolves to the content fingerprint strategy.
	KeyHashStrategy Key = "hashStrategy"

	// KeyNamingStrategy resolves to the output renaming strategy.
	KeyNamingStrategy Key = "namingStrategy"

	// KeyCacheStrategy resolves to the synchronized cache strategy.
	KeyCacheStrategy Key = "cacheStrategy"

	// KeyContext resolves to the forwarding ReadOnlyContext proxy.
	KeyContext Key = "readOnlyContext"

	// KeyConfig resolves to the current scope's config.Config value.
	KeyConfig Key = "configuration"

	// KeyGroupExtractor resolves to the request path extractor.
	KeyGroupExtractor Key = "groupExtractor"

	// KeyCallbackRegistry resolves to the lifecycle callback registry.
	KeyCallbackRegistry Key = "callbackRegistry"
)
