// Package injector provides the sealed object-graph registry and the
// field injection protocol used to wire processing components together.
//
// Wiring is explicit: a contract is a Key, a value is produced by a
// Factory, and a consumer declares what it wants by implementing
// Injectable. There is no reflection over struct fields; extension means
// registering more (key, factory) pairs before Build and returning more
// keys from Requirements.
//
// The registry is built once (see Builder), is immutable afterwards and
// is safe for concurrent use. Factories may capture the builder to reach
// the injector that did not exist yet at registration time; they resolve
// it lazily, after Build has sealed the registry.
package injector

import (
	"errors"
	"reflect"
	"strconv"
)

var (
	// ErrNilTarget is returned when Inject is called on a nil target.
	ErrNilTarget = errors.New("injector: nil target")

	// ErrNilFactory is returned when a nil factory is registered.
	ErrNilFactory = errors.New("injector: nil factory")

	// ErrNotBuilt is returned when the injector is resolved through a
	// builder whose Build has not run yet.
	ErrNotBuilt = errors.New("injector: builder not built yet")

	// ErrSealed is returned when a builder is modified after Build.
	ErrSealed = errors.New("injector: builder already sealed")
)

// Key identifies an injectable contract in the registry.
type Key string

// Factory produces the value satisfying a contract. Factories must be
// stable: repeated calls return equal values, so injection stays
// idempotent.
type Factory func() (any, error)

// Injectable is implemented by types that accept injected collaborators.
//
// Requirements lists the contract keys the target wants; every listed
// key must be bound in the registry. Assign receives each resolved
// value; implementations narrow it with As and store it in a field.
// A type extending an embedded base appends its extra keys to the
// base's Requirements and falls back to the base's Assign for keys it
// does not recognize.
type Injectable interface {
	Requirements() []Key
	Assign(key Key, value any) error
}

// UnboundKeyError reports a declared requirement with no registry entry.
// It indicates a broken object graph and is fatal at startup.
type UnboundKeyError struct{ Key Key }

// Error implements the error interface.
func (e UnboundKeyError) Error() string {
	return "injector: no factory bound for key " + strconv.Quote(string(e.Key))
}

// DuplicateKeyError reports a key registered twice on the same builder.
type DuplicateKeyError struct{ Key Key }

// Error implements the error interface.
func (e DuplicateKeyError) Error() string {
	return "injector: duplicate key " + strconv.Quote(string(e.Key))
}

// WrongTypeError reports a resolved value that does not satisfy the
// type the consumer asked for.
type WrongTypeError struct {
	Key Key

	// GotType is reflect.TypeOf(value).String() for the resolved value.
	GotType string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	return "injector: key " + strconv.Quote(string(e.Key)) + " resolved to wrong type (" + e.GotType + ")"
}

// AssignError reports a target that rejected an injected value.
type AssignError struct {
	Key Key
	Err error
}

// Error implements the error interface.
func (e AssignError) Error() string {
	return "injector: assigning key " + strconv.Quote(string(e.Key)) + ": " + e.Err.Error()
}

// Unwrap exposes the rejection cause.
func (e AssignError) Unwrap() error { return e.Err }

// Injector owns a sealed registry and performs field injection. Create
// one through a Builder.
type Injector struct {
	registry map[Key]Factory
}

// Inject populates the contract fields of target.
//
// Targets that do not implement Injectable, or whose Requirements are
// empty, are left untouched: injection with nothing to match is a no-op,
// not an error. A declared requirement with no bound factory is an
// UnboundKeyError. Injection is idempotent: factories are stable, so
// re-injecting an already wired target assigns the same values.
func (i *Injector) Inject(target any) error {
	if target == nil {
		return ErrNilTarget
	}
	injectable, ok := target.(Injectable)
	if !ok {
		return nil
	}
	for _, key := range injectable.Requirements() {
		factory, bound := i.registry[key]
		if !bound {
			return UnboundKeyError{Key: key}
		}
		value, err := factory()
		if err != nil {
			return err
		}
		if err := injectable.Assign(key, value); err != nil {
			return AssignError{Key: key, Err: err}
		}
	}
	return nil
}

// Resolve looks a contract up in the registry and narrows it to T.
//
// It is the typed lookup used by collaborators that pull dependencies
// directly instead of being injected.
func Resolve[T any](i *Injector, key Key) (T, error) {
	var zero T
	factory, ok := i.registry[key]
	if !ok {
		return zero, UnboundKeyError{Key: key}
	}
	value, err := factory()
	if err != nil {
		return zero, err
	}
	return As[T](key, value)
}

// As narrows an injected value to T, returning WrongTypeError on
// mismatch. Assign implementations use it to keep rejection errors
// uniform. A nil value never satisfies a contract and reports as
// "<nil>".
func As[T any](key Key, value any) (T, error) {
	t, ok := value.(T)
	if !ok {
		var zero T
		got := "<nil>"
		if value != nil {
			got = reflect.TypeOf(value).String()
		}
		return zero, WrongTypeError{Key: key, GotType: got}
	}
	return t, nil
}
