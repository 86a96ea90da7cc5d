// Package processor defines the pre/post processor contracts, the
// processor registry and the executors that chain processors over
// resource and merged content.
package processor

import (
	"errors"
	"io"

	"github.com/valery1707/wro4j/model"
)

var (
	// ErrNilGroups is returned when Process is called with a nil group
	// collection. Caller bug, never wrapped.
	ErrNilGroups = errors.New("processor: nil group collection")

	// ErrNoType is returned when Process is called without a concrete
	// resource type. Caller bug, never wrapped.
	ErrNoType = errors.New("processor: no resource type")
)

// MergeError wraps any processor or read failure raised while merging
// resources, so callers see a single failure category regardless of
// which stage raised.
type MergeError struct{ Err error }

// Error implements the error interface.
func (e MergeError) Error() string {
	return "processor: exception while merging resources: " + e.Err.Error()
}

// Unwrap exposes the stage failure.
func (e MergeError) Unwrap() error { return e.Err }

// PreProcessor transforms one resource's content before merging. The
// output of one chain element becomes the input of the next; processors
// never observe each other's state.
type PreProcessor interface {
	Process(res model.Resource, r io.Reader, w io.Writer) error
}

// PreProcessorFunc adapts a function to the PreProcessor contract.
type PreProcessorFunc func(res model.Resource, r io.Reader, w io.Writer) error

// Process implements PreProcessor.
func (f PreProcessorFunc) Process(res model.Resource, r io.Reader, w io.Writer) error {
	return f(res, r, w)
}

// PostProcessor transforms merged content after all resources of a
// request were pre-processed and concatenated.
type PostProcessor interface {
	Process(r io.Reader, w io.Writer) error
}

// PostProcessorFunc adapts a function to the PostProcessor contract.
type PostProcessorFunc func(r io.Reader, w io.Writer) error

// Process implements PostProcessor.
func (f PostProcessorFunc) Process(r io.Reader, w io.Writer) error {
	return f(r, w)
}

// TaggedPre is one registered pre-processor with its declared type
// affiliation (AnyType means type-agnostic) and minimize-only tag.
type TaggedPre struct {
	Processor    PreProcessor
	Type         model.ResourceType
	MinimizeOnly bool
}

// TaggedPost is one registered post-processor with its tags.
type TaggedPost struct {
	Processor    PostProcessor
	Type         model.ResourceType
	MinimizeOnly bool
}

// Factory is the processor registry consumed by the executors. Both
// slices are in registration order, which is the execution order within
// the type-specific and type-agnostic sets.
type Factory interface {
	PreProcessors() []TaggedPre
	PostProcessors() []TaggedPost
}

// preChain selects the active pre-processor chain for a type and
// minimize flag: type-specific entries first, then type-agnostic ones,
// registration order preserved within each set; minimize-only entries
// are dropped when minimize is off.
func preChain(entries []TaggedPre, t model.ResourceType, minimize bool) []PreProcessor {
	var chain []PreProcessor
	for _, pass := range []model.ResourceType{t, model.AnyType} {
		for _, e := range entries {
			if e.Type != pass {
				continue
			}
			if e.MinimizeOnly && !minimize {
				continue
			}
			chain = append(chain, e.Processor)
		}
	}
	return chain
}

// postChain mirrors preChain for post-processors.
func postChain(entries []TaggedPost, t model.ResourceType, minimize bool) []PostProcessor {
	var chain []PostProcessor
	for _, pass := range []model.ResourceType{t, model.AnyType} {
		for _, e := range entries {
			if e.Type != pass {
				continue
			}
			if e.MinimizeOnly && !minimize {
				continue
			}
			chain = append(chain, e.Processor)
		}
	}
	return chain
}
