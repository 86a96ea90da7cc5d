package processor

import "github.com/valery1707/wro4j/model"

// Option tags a processor at registration time.
type Option func(*tag)

type tag struct {
	typ          model.ResourceType
	minimizeOnly bool
}

// ForType restricts a processor to resources (or merged content) of the
// given type. Without it the processor is type-agnostic.
func ForType(t model.ResourceType) Option {
	return func(g *tag) { g.typ = t }
}

// MinimizeOnly excludes the processor from chains of requests with
// minimization disabled.
func MinimizeOnly() Option {
	return func(g *tag) { g.minimizeOnly = true }
}

// SimpleFactory is an ordered in-memory processor registry. Register
// everything before wiring; the executors treat it as read-only
// afterwards.
type SimpleFactory struct {
	pre  []TaggedPre
	post []TaggedPost
}

// NewSimpleFactory returns an empty registry.
func NewSimpleFactory() *SimpleFactory {
	return &SimpleFactory{}
}

// AddPre registers a pre-processor. Registration order is execution
// order within its set.
func (f *SimpleFactory) AddPre(p PreProcessor, opts ...Option) *SimpleFactory {
	var g tag
	for _, opt := range opts {
		opt(&g)
	}
	f.pre = append(f.pre, TaggedPre{Processor: p, Type: g.typ, MinimizeOnly: g.minimizeOnly})
	return f
}

// AddPost registers a post-processor.
func (f *SimpleFactory) AddPost(p PostProcessor, opts ...Option) *SimpleFactory {
	var g tag
	for _, opt := range opts {
		opt(&g)
	}
	f.post = append(f.post, TaggedPost{Processor: p, Type: g.typ, MinimizeOnly: g.minimizeOnly})
	return f
}

// PreProcessors implements Factory.
func (f *SimpleFactory) PreProcessors() []TaggedPre { return f.pre }

// PostProcessors implements Factory.
func (f *SimpleFactory) PostProcessors() []TaggedPost { return f.post }
