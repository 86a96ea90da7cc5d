package manager_test

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valery1707/wro4j/cache"
	"github.com/valery1707/wro4j/config"
	"github.com/valery1707/wro4j/hashing"
	"github.com/valery1707/wro4j/injector"
	"github.com/valery1707/wro4j/locator"
	"github.com/valery1707/wro4j/manager"
	"github.com/valery1707/wro4j/model"
	"github.com/valery1707/wro4j/naming"
	"github.com/valery1707/wro4j/processor"
)

func testModel() *model.Model {
	return model.New(model.Group{Name: "core", Resources: []model.Resource{
		{URI: "/a.css", Type: model.CSS},
		{URI: "/b.js", Type: model.JS},
	}})
}

func testLocators(t *testing.T) locator.Factory {
	t.Helper()
	f, err := locator.NewSimpleFactory(locator.NewMemoryLocator(map[string]string{
		"/a.css": "a{}",
		"/b.js":  "b();",
	}))
	require.NoError(t, err)
	return f
}

// countingFactory counts model loads to observe cache hits.
type countingFactory struct {
	creates atomic.Int32
}

func (f *countingFactory) Create() (*model.Model, error) {
	f.creates.Add(1)
	return testModel(), nil
}

func newTestBuilder(t *testing.T) (*manager.InjectorBuilder, *countingFactory) {
	t.Helper()
	factory := &countingFactory{}
	b := manager.NewInjectorBuilder().
		WithModelFactory(factory).
		WithLocatorFactory(testLocators(t))
	return b, factory
}

func TestProcess_ReturnsContentAndFingerprint(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t)
	mgr, err := b.Build()
	require.NoError(t, err)

	entry, err := mgr.Process("core", model.CSS, true)
	require.NoError(t, err)
	assert.Equal(t, "a{}", entry.Content)

	want, err := hashing.SHA1{}.Hash(strings.NewReader("a{}"))
	require.NoError(t, err)
	assert.Equal(t, want, entry.Hash)

	entry, err = mgr.Process("core", model.JS, true)
	require.NoError(t, err)
	assert.Equal(t, "b();", entry.Content)
}

func TestProcess_CachesPerKey(t *testing.T) {
	t.Parallel()

	b, factory := newTestBuilder(t)
	mgr, err := b.Build()
	require.NoError(t, err)

	first, err := mgr.Process("core", model.CSS, true)
	require.NoError(t, err)
	second, err := mgr.Process("core", model.CSS, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), factory.creates.Load())

	// A different key computes again.
	_, err = mgr.Process("core", model.CSS, false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), factory.creates.Load())

	// Clearing forces recomputation.
	require.NoError(t, mgr.ClearCache())
	_, err = mgr.Process("core", model.CSS, true)
	require.NoError(t, err)
	assert.Equal(t, int32(3), factory.creates.Load())
}

func TestProcess_ConcurrentRequestsComputeOnce(t *testing.T) {
	t.Parallel()

	b, factory := newTestBuilder(t)
	mgr, err := b.Build()
	require.NoError(t, err)

	const n = 12
	var wg sync.WaitGroup
	results := make([]cache.Entry, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := mgr.Process("core", model.CSS, true)
			assert.NoError(t, err)
			results[i] = e
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), factory.creates.Load())
	for _, e := range results {
		assert.Equal(t, results[0], e)
	}
}

func TestProcess_UnknownGroup(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t)
	mgr, err := b.Build()
	require.NoError(t, err)

	_, err = mgr.Process("missing", model.CSS, true)
	assert.ErrorIs(t, err, model.ErrGroupNotFound)
}

func TestProcessRequest_DecodesPath(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t)
	mgr, err := b.Build()
	require.NoError(t, err)

	entry, err := mgr.ProcessRequest("core.js?minimize=false")
	require.NoError(t, err)
	assert.Equal(t, "b();", entry.Content)

	_, err = mgr.ProcessRequest("nonsense")
	assert.ErrorIs(t, err, manager.ErrBadRequestPath)
}

func TestVersionedName_UsesNamingStrategy(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t)
	mgr, err := b.WithNamingStrategy(naming.Fingerprint{}).Build()
	require.NoError(t, err)

	entry, err := mgr.Process("core", model.CSS, true)
	require.NoError(t, err)
	assert.Equal(t, "core-"+entry.Hash+".css", mgr.VersionedName("core.css", entry))
}

// milestoneRecorder records processing milestones in order.
type milestoneRecorder struct {
	manager.NoOpCallback
	mu     sync.Mutex
	events []string
}

func (r *milestoneRecorder) OnBeforeMerge() { r.record("before-merge") }

func (r *milestoneRecorder) OnAfterMerge() { r.record("after-merge") }

func (r *milestoneRecorder) OnProcessingComplete() { r.record("complete") }

func (r *milestoneRecorder) record(event string) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func TestProcess_InvokesLifecycleCallbacks(t *testing.T) {
	t.Parallel()

	recorder := &milestoneRecorder{}
	b, _ := newTestBuilder(t)
	mgr, err := b.WithCallback(recorder).Build()
	require.NoError(t, err)

	_, err = mgr.Process("core", model.CSS, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"before-merge", "after-merge", "complete"}, recorder.events)

	// Cache hits skip the pipeline and its callbacks.
	_, err = mgr.Process("core", model.CSS, true)
	require.NoError(t, err)
	assert.Len(t, recorder.events, 3)
}

func TestProcess_ContextProxyObservesScopeSwitch(t *testing.T) {
	t.Parallel()

	holder := config.NewHolder()
	strict := config.DefaultConfig()
	strict.IgnoreMissingResources = false
	holder.Set(config.NewContext(strict))

	brokenModel := model.FactoryFunc(func() (*model.Model, error) {
		return model.New(model.Group{Name: "core", Resources: []model.Resource{
			{URI: "/missing.css", Type: model.CSS},
		}}), nil
	})

	mgr, err := manager.NewInjectorBuilder().
		WithModelFactory(brokenModel).
		WithLocatorFactory(testLocators(t)).
		WithContextResolver(holder.Resolver()).
		Build()
	require.NoError(t, err)

	// Strict scope: the unreadable resource fails the request.
	_, err = mgr.Process("core", model.CSS, true)
	var merge processor.MergeError
	require.ErrorAs(t, err, &merge)

	// Tolerant scope: the same injected context now ignores the missing
	// resource. No re-injection happened in between.
	holder.Set(config.NewContext(config.DefaultConfig()))
	entry, err := mgr.Process("core", model.CSS, false)
	require.NoError(t, err)
	assert.Empty(t, entry.Content)
}

func TestInjectorBuilder_Validation(t *testing.T) {
	t.Parallel()

	_, err := manager.NewInjectorBuilder().Build()
	assert.ErrorIs(t, err, manager.ErrNilDependency)

	_, err = manager.NewInjectorBuilder().WithModelFactory(nil).Build()
	assert.ErrorIs(t, err, manager.ErrNilDependency)

	_, err = manager.NewInjectorBuilder().
		WithModelFactory(&countingFactory{}).
		WithCacheStrategy(nil).
		Build()
	assert.ErrorIs(t, err, manager.ErrNilDependency)

	_, err = manager.NewInjectorBuilder().
		WithModelFactory(&countingFactory{}).
		WithModelTransformers(nil).
		Build()
	assert.ErrorIs(t, err, manager.ErrNilDependency)
}

func TestInjectorBuilder_BuildOnce(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t)
	_, err := b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.ErrorIs(t, err, injector.ErrSealed)
}

func TestInjectorBuilder_ExtraBindings(t *testing.T) {
	t.Parallel()

	type auditLog struct{ name string }
	audit := &auditLog{name: "audit"}

	b, _ := newTestBuilder(t)
	mgr, err := b.Register("auditLog", injector.Static(audit)).Build()
	require.NoError(t, err)

	// A consumer constructed outside the composition root gets the
	// extension contract through the same injector.
	consumer := &wantsAudit{}
	require.NoError(t, mgr.Inject(consumer))
	assert.Same(t, audit, consumer.log)
}

// wantsAudit declares a contract the base registry knows nothing about.
type wantsAudit struct {
	log any
}

func (w *wantsAudit) Requirements() []injector.Key {
	return []injector.Key{"auditLog"}
}

func (w *wantsAudit) Assign(_ injector.Key, value any) error {
	w.log = value
	return nil
}

func TestManager_InjectIsIdempotent(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t)
	mgr, err := b.Build()
	require.NoError(t, err)

	groups := processor.NewGroupsProcessor(nil)
	require.NoError(t, mgr.Inject(groups))
	require.NoError(t, mgr.Inject(groups))
}

func TestInjectorBuilder_SQLiteCacheBackend(t *testing.T) {
	t.Parallel()

	store, err := cache.OpenSQLite(t.TempDir() + "/wro.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	b, factory := newTestBuilder(t)
	mgr, err := b.WithCacheStrategy(store).Build()
	require.NoError(t, err)

	first, err := mgr.Process("core", model.CSS, true)
	require.NoError(t, err)
	second, err := mgr.Process("core", model.CSS, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), factory.creates.Load())
}
