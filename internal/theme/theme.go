// Package theme loads the theme lookup table: namespaces of key -> CSS value
// pairs such as colors.red-500 -> #ef4444.
//
// A Theme is built once by the loaders in this package and is read-only
// afterwards; reloading produces a new Theme.
package theme

import (
	"maps"
	"slices"
	"strings"
)

// DefaultKey is the key of a namespace's own value, used by bare utilities
// like "rounded" or "shadow".
const DefaultKey = "DEFAULT"

// GroupMarkers name a group's own value inside nested theme maps:
// colors.red.DEFAULT, colors.red._ and colors.red.@ all define "red".
var GroupMarkers = []string{"_", "@", DefaultKey}

// Theme is a set of namespaces.
type Theme struct {
	namespaces map[string]map[string]string
}

// New returns an empty theme.
func New() *Theme {
	return &Theme{namespaces: make(map[string]map[string]string)}
}

// Lookup returns the value of key in namespace. An empty key looks up
// DefaultKey.
func (t *Theme) Lookup(namespace, key string) (string, bool) {
	if key == "" {
		key = DefaultKey
	}
	ns, ok := t.namespaces[namespace]
	if !ok {
		return "", false
	}
	v, ok := ns[key]
	return v, ok
}

// Has reports whether the namespace exists.
func (t *Theme) Has(namespace string) bool {
	_, ok := t.namespaces[namespace]
	return ok
}

// Namespaces returns the namespace names in sorted order.
func (t *Theme) Namespaces() []string {
	return slices.Sorted(maps.Keys(t.namespaces))
}

// Keys returns the keys of namespace in sorted order.
func (t *Theme) Keys(namespace string) []string {
	return slices.Sorted(maps.Keys(t.namespaces[namespace]))
}

// Len returns the total number of entries.
func (t *Theme) Len() int {
	n := 0
	for _, ns := range t.namespaces {
		n += len(ns)
	}
	return n
}

// set adds or replaces one entry. Only loaders call it, before the theme is
// handed out.
func (t *Theme) set(namespace, key, value string) {
	ns, ok := t.namespaces[namespace]
	if !ok {
		ns = make(map[string]string)
		t.namespaces[namespace] = ns
	}
	ns[key] = value
}

// replaceNamespace drops every key of namespace and installs values.
func (t *Theme) replaceNamespace(namespace string, values map[string]string) {
	t.namespaces[namespace] = values
}

// Clone returns a deep copy.
func (t *Theme) Clone() *Theme {
	c := New()
	for name, ns := range t.namespaces {
		c.namespaces[name] = maps.Clone(ns)
	}
	return c
}

// entryID joins namespace and key into the id used by the alias graph.
func entryID(namespace, key string) string {
	return namespace + "." + key
}

func splitEntryID(id string) (namespace, key string) {
	namespace, key, _ = strings.Cut(id, ".")
	return namespace, key
}
