// Package manager ties the processing core together: it owns the
// composition root that builds the object graph (InjectorBuilder) and
// the Manager facade serving per-request processing with caching.
package manager

import (
	"strings"

	"go.uber.org/zap"

	"github.com/valery1707/wro4j/cache"
	"github.com/valery1707/wro4j/hashing"
	"github.com/valery1707/wro4j/injector"
	"github.com/valery1707/wro4j/model"
	"github.com/valery1707/wro4j/naming"
	"github.com/valery1707/wro4j/processor"
)

// Manager is the top-level processing facade. A serving layer calls
// Process once per request; repeated requests for an unchanged group hit
// the cache and skip the merge pipeline entirely.
//
// Managers are built by InjectorBuilder.Build and are safe for
// concurrent use afterwards.
type Manager struct {
	modelFactory    model.Factory
	groupsProcessor *processor.GroupsProcessor
	cache           *cache.Synchronized
	hash            hashing.Strategy
	naming          naming.Strategy
	callbacks       *CallbackRegistry
	extractor       GroupExtractor
	injector        *injector.Injector
	logger          *zap.Logger
}

// NewManager returns an unwired manager logging through logger (nil
// means no logging). The injector populates everything else.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Requirements implements injector.Injectable.
func (m *Manager) Requirements() []injector.Key {
	return []injector.Key{
		injector.KeyModelFactory,
		injector.KeyGroupsProcessor,
		injector.KeyCacheStrategy,
		injector.KeyHashStrategy,
		injector.KeyNamingStrategy,
		injector.KeyCallbackRegistry,
		injector.KeyGroupExtractor,
		injector.KeyInjector,
	}
}

// Assign implements injector.Injectable.
func (m *Manager) Assign(key injector.Key, value any) error {
	var err error
	switch key {
	case injector.KeyModelFactory:
		m.modelFactory, err = injector.As[model.Factory](key, value)
	case injector.KeyGroupsProcessor:
		m.groupsProcessor, err = injector.As[*processor.GroupsProcessor](key, value)
	case injector.KeyCacheStrategy:
		m.cache, err = injector.As[*cache.Synchronized](key, value)
	case injector.KeyHashStrategy:
		m.hash, err = injector.As[hashing.Strategy](key, value)
	case injector.KeyNamingStrategy:
		m.naming, err = injector.As[naming.Strategy](key, value)
	case injector.KeyCallbackRegistry:
		m.callbacks, err = injector.As[*CallbackRegistry](key, value)
	case injector.KeyGroupExtractor:
		m.extractor, err = injector.As[GroupExtractor](key, value)
	case injector.KeyInjector:
		m.injector, err = injector.As[*injector.Injector](key, value)
	default:
		err = injector.UnboundKeyError{Key: key}
	}
	return err
}

// Process returns the merged, processed and fingerprinted artifact for
// one group and type.
//
// The result is cached per (group, type, minimize); concurrent requests
// for the same key run the pipeline at most once and observe the same
// entry.
func (m *Manager) Process(group string, t model.ResourceType, minimize bool) (cache.Entry, error) {
	key := cache.Key{Group: group, Type: t, Minimize: minimize}
	return m.cache.GetOrCompute(key, func() (cache.Entry, error) {
		return m.computeEntry(group, t, minimize)
	})
}

// ProcessRequest decodes a serving-layer request path and processes it.
func (m *Manager) ProcessRequest(requestPath string) (cache.Entry, error) {
	req, err := m.extractor.Extract(requestPath)
	if err != nil {
		return cache.Entry{}, err
	}
	return m.Process(req.Group, req.Type, req.Minimize)
}

func (m *Manager) computeEntry(group string, t model.ResourceType, minimize bool) (cache.Entry, error) {
	mdl, err := m.modelFactory.Create()
	if err != nil {
		return cache.Entry{}, err
	}
	g, err := mdl.Group(group)
	if err != nil {
		return cache.Entry{}, err
	}

	m.callbacks.OnBeforeMerge()
	content, err := m.groupsProcessor.Process([]model.Group{g}, t, minimize)
	if err != nil {
		return cache.Entry{}, err
	}
	m.callbacks.OnAfterMerge()

	fingerprint, err := m.hash.Hash(strings.NewReader(content))
	if err != nil {
		return cache.Entry{}, err
	}
	m.callbacks.OnProcessingComplete()

	m.logger.Debug("processed group",
		zap.String("group", group),
		zap.String("type", string(t)),
		zap.Bool("minimize", minimize),
		zap.String("fingerprint", fingerprint))
	return cache.Entry{Content: content, Hash: fingerprint}, nil
}

// VersionedName renames an artifact through the naming strategy, e.g.
// "core.css" → "core-<fingerprint>.css".
func (m *Manager) VersionedName(name string, e cache.Entry) string {
	return m.naming.Rename(name, e.Hash)
}

// Inject exposes field injection for collaborators constructed outside
// the composition root.
func (m *Manager) Inject(target any) error {
	return m.injector.Inject(target)
}

// ClearCache drops every cached artifact, forcing recomputation. Called
// by surrounding layers when the model or resources changed.
func (m *Manager) ClearCache() error {
	return m.cache.Clear()
}
