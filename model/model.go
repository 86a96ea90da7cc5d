// Package model defines the immutable entity graph processed by the merge
// engine: resources, named ordered groups of resources and the model that
// holds them, plus the factory contract used to load a model.
package model

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNilResource is returned when a nil resource reaches an operation
	// that requires one. It indicates a caller bug, not a bad model.
	ErrNilResource = errors.New("model: nil resource")

	// ErrGroupNotFound is returned when a model does not contain the
	// requested group.
	ErrGroupNotFound = errors.New("model: group not found")
)

// ResourceType discriminates which processors apply to a resource or to
// merged content.
type ResourceType string

const (
	// CSS marks style resources.
	CSS ResourceType = "css"

	// JS marks script resources.
	JS ResourceType = "js"

	// AnyType marks a processor as type-agnostic: it participates in the
	// chain regardless of the requested type.
	AnyType ResourceType = ""
)

// ParseResourceType maps a file extension or type name to a ResourceType.
//
// ok is false for unknown types.
func ParseResourceType(s string) (ResourceType, bool) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "css":
		return CSS, true
	case "js":
		return JS, true
	}
	return AnyType, false
}

// Resource identifies one content unit inside a group.
//
// URI is opaque to the processing core; it only has meaning for the
// locator that reads the content. Resources are value objects: once a
// model is built they are never mutated.
type Resource struct {
	URI  string
	Type ResourceType
}

// String renders the resource for diagnostics.
func (r Resource) String() string {
	return "resource " + strconv.Quote(r.URI) + " (" + string(r.Type) + ")"
}

// Group is a named, ordered sequence of resources. Order is significant
// and preserved through merging.
type Group struct {
	Name      string
	Resources []Resource
}

// Filter returns the resources of the group matching the given type, in
// declaration order.
func (g Group) Filter(t ResourceType) []Resource {
	var out []Resource
	for _, r := range g.Resources {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Model is the full entity graph: every group known to the application.
// Immutable after load.
type Model struct {
	groups []Group
	byName map[string]int
}

// New builds a Model from groups. Group order is preserved; the last
// group wins on duplicate names.
func New(groups ...Group) *Model {
	m := &Model{groups: groups, byName: make(map[string]int, len(groups))}
	for i, g := range groups {
		m.byName[g.Name] = i
	}
	return m
}

// Groups returns all groups in declaration order. The returned slice
// must not be mutated.
func (m *Model) Groups() []Group {
	return m.groups
}

// Group looks a group up by name.
func (m *Model) Group(name string) (Group, error) {
	i, ok := m.byName[name]
	if !ok {
		return Group{}, ErrGroupNotFound
	}
	return m.groups[i], nil
}
