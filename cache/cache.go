// Package cache stores processed group artifacts keyed by (group, type,
// minimize). The core defines the key/value contract and the
// synchronization discipline; storage backends are pluggable strategies.
package cache

import (
	"errors"
	"strconv"

	"github.com/valery1707/wro4j/model"
)

// ErrNilStrategy is returned when a decorator is created around a nil
// strategy.
var ErrNilStrategy = errors.New("cache: nil strategy")

// Key identifies one cacheable artifact. Two keys are equal iff all
// three fields are equal.
type Key struct {
	Group    string
	Type     model.ResourceType
	Minimize bool
}

// String renders the key in "group.type?minimize=bool" form, used for
// diagnostics and as the composite key of persistent backends.
func (k Key) String() string {
	return k.Group + "." + string(k.Type) + "?minimize=" + strconv.FormatBool(k.Minimize)
}

// Entry is the cached artifact: final content plus its fingerprint.
type Entry struct {
	Content string
	Hash    string
}

// Strategy is the raw storage contract. Implementations must tolerate
// concurrent calls; the per-key single-computation guarantee is added
// by the Synchronized decorator, which the composition root wraps
// around every strategy before handing it to consumers.
type Strategy interface {
	Get(k Key) (Entry, bool, error)
	Put(k Key, e Entry) error
	Contains(k Key) (bool, error)

	// Clear drops every entry. Invalidation is driven externally (model
	// reload, resource change); the core never decides it.
	Clear() error
}
