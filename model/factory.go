package model

import "errors"

var (
	// ErrNilFactory is returned when a decorator is created around a nil
	// factory.
	ErrNilFactory = errors.New("model: nil model factory")

	// ErrNilTransformer is returned when a nil transformer is registered.
	ErrNilTransformer = errors.New("model: nil model transformer")
)

// Factory creates the entity graph. Implementations typically parse a
// configuration file (see config.NewModelFactory) or assemble the model
// programmatically.
type Factory interface {
	Create() (*Model, error)
}

// FactoryFunc adapts a plain function to the Factory contract.
type FactoryFunc func() (*Model, error)

// Create implements Factory.
func (f FactoryFunc) Create() (*Model, error) { return f() }

// Transformer mutates a freshly created model before it is handed to
// consumers. Transformers run in registration order.
type Transformer func(*Model) (*Model, error)

// FactoryDecorator wraps a raw factory and applies ordered transformers
// to each created model. The composition root registers the decorated
// factory, never the raw one.
type FactoryDecorator struct {
	decorated    Factory
	transformers []Transformer
}

// Decorate builds a FactoryDecorator. It fails fast on a nil factory or
// a nil transformer; a broken graph must surface at build time, not on
// the first Create.
func Decorate(factory Factory, transformers ...Transformer) (*FactoryDecorator, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}
	for _, t := range transformers {
		if t == nil {
			return nil, ErrNilTransformer
		}
	}
	return &FactoryDecorator{decorated: factory, transformers: transformers}, nil
}

// Create implements Factory: creates the model through the decorated
// factory, then applies every transformer in order.
func (d *FactoryDecorator) Create() (*Model, error) {
	m, err := d.decorated.Create()
	if err != nil {
		return nil, err
	}
	for _, t := range d.transformers {
		if m, err = t(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
