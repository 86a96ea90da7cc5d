package manager

// LifecycleCallback observes processing milestones. Implement the
// methods you care about by embedding NoOpCallback.
type LifecycleCallback interface {
	OnBeforeMerge()
	OnAfterMerge()
	OnProcessingComplete()
}

// NoOpCallback implements LifecycleCallback with empty methods.
type NoOpCallback struct{}

// OnBeforeMerge implements LifecycleCallback.
func (NoOpCallback) OnBeforeMerge() {}

// OnAfterMerge implements LifecycleCallback.
func (NoOpCallback) OnAfterMerge() {}

// OnProcessingComplete implements LifecycleCallback.
func (NoOpCallback) OnProcessingComplete() {}

// CallbackRegistry fans processing milestones out to registered
// callbacks in registration order. Register everything before wiring;
// processing treats the registry as read-only.
type CallbackRegistry struct {
	callbacks []LifecycleCallback
}

// NewCallbackRegistry returns an empty registry.
func NewCallbackRegistry() *CallbackRegistry {
	return &CallbackRegistry{}
}

// Add registers a callback. Nil callbacks are ignored.
func (r *CallbackRegistry) Add(cb LifecycleCallback) *CallbackRegistry {
	if cb != nil {
		r.callbacks = append(r.callbacks, cb)
	}
	return r
}

// OnBeforeMerge implements LifecycleCallback.
func (r *CallbackRegistry) OnBeforeMerge() {
	for _, cb := range r.callbacks {
		cb.OnBeforeMerge()
	}
}

// OnAfterMerge implements LifecycleCallback.
func (r *CallbackRegistry) OnAfterMerge() {
	for _, cb := range r.callbacks {
		cb.OnAfterMerge()
	}
}

// OnProcessingComplete implements LifecycleCallback.
func (r *CallbackRegistry) OnProcessingComplete() {
	for _, cb := range r.callbacks {
		cb.OnProcessingComplete()
	}
}
