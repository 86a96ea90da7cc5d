package locator

import (
	"io"
	"sync"
)

// InjectorAware decorates a factory so its contract fields are injected
// before the first resource is located. The injection function is
// supplied by the composition root; this package stays unaware of the
// injector's types.
type InjectorAware struct {
	decorated Factory
	inject    func(target any) error

	once sync.Once
	err  error
}

// NewInjectorAware wraps a factory. It fails fast on nil arguments.
func NewInjectorAware(decorated Factory, inject func(target any) error) (*InjectorAware, error) {
	if decorated == nil || inject == nil {
		return nil, ErrNilLocator
	}
	return &InjectorAware{decorated: decorated, inject: inject}, nil
}

// Locate implements Factory: injects the decorated factory exactly once,
// then delegates.
func (f *InjectorAware) Locate(uri string) (io.ReadCloser, error) {
	f.once.Do(func() { f.err = f.inject(f.decorated) })
	if f.err != nil {
		return nil, f.err
	}
	return f.decorated.Locate(uri)
}
