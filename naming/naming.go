// Package naming renames processed artifacts, typically to embed the
// content fingerprint in the served file name.
package naming

import "strings"

// Strategy renames an output artifact given its final content
// fingerprint.
type Strategy interface {
	Rename(name, fingerprint string) string
}

// NoOp keeps the original name. It is the default.
type NoOp struct{}

// Rename implements Strategy.
func (NoOp) Rename(name, _ string) string { return name }

// Fingerprint inserts the content fingerprint before the extension:
// "core.css" with fingerprint "abc" becomes "core-abc.css".
type Fingerprint struct{}

// Rename implements Strategy.
func (Fingerprint) Rename(name, fingerprint string) string {
	if fingerprint == "" {
		return name
	}
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return name + "-" + fingerprint
	}
	return name[:dot] + "-" + fingerprint + name[dot:]
}
