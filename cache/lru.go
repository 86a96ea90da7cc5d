package cache

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidSize is returned when an LRU strategy is created with a
// non-positive capacity.
var ErrInvalidSize = errors.New("cache: lru size must be positive")

// DefaultLRUSize is the capacity used by NewDefaultLRU.
const DefaultLRUSize = 128

// LRU is the default in-memory strategy, bounded by entry count with
// least-recently-used eviction.
type LRU struct {
	entries *lru.Cache[Key, Entry]
}

// NewLRU builds an LRU strategy with the given capacity.
func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	entries, err := lru.New[Key, Entry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{entries: entries}, nil
}

// NewDefaultLRU builds an LRU strategy with DefaultLRUSize capacity.
func NewDefaultLRU() *LRU {
	c, err := NewLRU(DefaultLRUSize)
	if err != nil {
		// DefaultLRUSize is a positive constant.
		panic(err)
	}
	return c
}

// Get implements Strategy.
func (c *LRU) Get(k Key) (Entry, bool, error) {
	e, ok := c.entries.Get(k)
	return e, ok, nil
}

// Put implements Strategy.
func (c *LRU) Put(k Key, e Entry) error {
	c.entries.Add(k, e)
	return nil
}

// Contains implements Strategy.
func (c *LRU) Contains(k Key) (bool, error) {
	return c.entries.Contains(k), nil
}

// Clear implements Strategy.
func (c *LRU) Clear() error {
	c.entries.Purge()
	return nil
}
