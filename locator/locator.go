// Package locator resolves resource URIs to readable content. The
// processing core only consumes the Factory contract; concrete locators
// here cover the filesystem and in-memory cases.
package locator

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

var (
	// ErrNilLocator is returned when a factory is built around a nil
	// locator.
	ErrNilLocator = errors.New("locator: nil locator")

	// ErrUnsupportedURI is returned when no registered locator accepts
	// the URI.
	ErrUnsupportedURI = errors.New("locator: unsupported uri")
)

// NotFoundError reports a URI that was accepted but could not be read.
type NotFoundError struct {
	URI string
	Err error
}

// Error implements the error interface.
func (e NotFoundError) Error() string {
	return "locator: cannot read " + strconv.Quote(e.URI) + ": " + e.Err.Error()
}

// Unwrap exposes the underlying read failure.
func (e NotFoundError) Unwrap() error { return e.Err }

// UriLocator reads the content behind one URI scheme.
type UriLocator interface {
	// Accept reports whether this locator handles the URI.
	Accept(uri string) bool

	// Locate opens the content stream for the URI. The caller closes it.
	Locate(uri string) (io.ReadCloser, error)
}

// Factory resolves a URI through an ordered set of locators.
type Factory interface {
	// Locate opens the content stream of the first accepting locator.
	Locate(uri string) (io.ReadCloser, error)
}

// SimpleFactory is an ordered, immutable-after-build locator list.
type SimpleFactory struct {
	locators []UriLocator
}

// NewSimpleFactory builds a factory from locators, first match wins.
// It fails fast on a nil locator.
func NewSimpleFactory(locators ...UriLocator) (*SimpleFactory, error) {
	for _, l := range locators {
		if l == nil {
			return nil, ErrNilLocator
		}
	}
	return &SimpleFactory{locators: locators}, nil
}

// Locate implements Factory.
func (f *SimpleFactory) Locate(uri string) (io.ReadCloser, error) {
	for _, l := range f.locators {
		if l.Accept(uri) {
			return l.Locate(uri)
		}
	}
	return nil, ErrUnsupportedURI
}

// FSLocator serves URIs from an fs.FS root. URIs are treated as paths
// relative to the root; a leading slash is stripped.
type FSLocator struct {
	root fs.FS
}

// NewFSLocator builds a filesystem locator.
func NewFSLocator(root fs.FS) *FSLocator {
	return &FSLocator{root: root}
}

// Accept implements UriLocator: the filesystem locator is the catch-all
// for plain paths (no scheme separator).
func (l *FSLocator) Accept(uri string) bool {
	return !strings.Contains(uri, "://")
}

// Locate implements UriLocator.
func (l *FSLocator) Locate(uri string) (io.ReadCloser, error) {
	f, err := l.root.Open(strings.TrimPrefix(uri, "/"))
	if err != nil {
		return nil, NotFoundError{URI: uri, Err: err}
	}
	return f, nil
}

// MemoryLocator serves URIs from an in-memory map. Useful in tests and
// for generated content.
type MemoryLocator struct {
	content map[string]string
}

// NewMemoryLocator builds a locator over a uri → content map. The map is
// copied, later mutation of the argument has no effect.
func NewMemoryLocator(content map[string]string) *MemoryLocator {
	cp := make(map[string]string, len(content))
	for k, v := range content {
		cp[k] = v
	}
	return &MemoryLocator{content: cp}
}

// Accept implements UriLocator.
func (l *MemoryLocator) Accept(uri string) bool {
	_, ok := l.content[uri]
	return ok
}

// Locate implements UriLocator.
func (l *MemoryLocator) Locate(uri string) (io.ReadCloser, error) {
	c, ok := l.content[uri]
	if !ok {
		return nil, NotFoundError{URI: uri, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewBufferString(c)), nil
}
