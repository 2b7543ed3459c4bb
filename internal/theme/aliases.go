package theme

import (
	"regexp"
	"strings"
)

// referencePattern matches {namespace.path.to.key} references.
var referencePattern = regexp.MustCompile(`\{([A-Za-z][\w-]*(?:\.[\w.-]+)+)\}`)

func extractReferences(value string) []string {
	if !strings.Contains(value, "{") {
		return nil
	}
	matches := referencePattern.FindAllStringSubmatch(value, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, m[1])
	}
	return refs
}

// referenceID maps a dotted reference to an entry id. Keys are tried with
// path segments joined by "-" (colors.red.500 -> red-500) and then by "."
// (spacing.0.5 -> 0.5). A trailing group marker names the group itself.
func (t *Theme) referenceID(ref string) (string, bool) {
	parts := strings.Split(ref, ".")
	ns := parts[0]
	rest := parts[1:]
	if n := len(rest); n > 0 && isGroupMarker(rest[n-1]) {
		rest = rest[:n-1]
	}

	if len(rest) == 0 {
		if _, ok := t.Lookup(ns, DefaultKey); ok {
			return entryID(ns, DefaultKey), true
		}
		return "", false
	}

	for _, sep := range []string{"-", "."} {
		key := strings.Join(rest, sep)
		if _, ok := t.Lookup(ns, key); ok {
			return entryID(ns, key), true
		}
	}
	return "", false
}

// Resolve returns the value named by a dotted reference such as
// colors.red.500 or spacing.0.5.
func (t *Theme) Resolve(ref string) (string, bool) {
	if !strings.Contains(ref, ".") {
		return "", false
	}
	id, ok := t.referenceID(ref)
	if !ok {
		return "", false
	}
	ns, key := splitEntryID(id)
	return t.namespaces[ns][key], true
}

// ResolveAliases replaces every {reference} in t's values with the value it
// names, following chains in dependency order. filePath is used in errors.
func ResolveAliases(t *Theme, filePath string) error {
	graph := BuildDependencyGraph(t)

	order, err := graph.TopologicalSort()
	if err != nil {
		if cre, ok := err.(*CircularReferenceError); ok {
			cre.FilePath = filePath
		}
		return err
	}

	for _, id := range order {
		ns, key := splitEntryID(id)
		value := t.namespaces[ns][key]
		refs := extractReferences(value)
		if len(refs) == 0 {
			continue
		}

		resolved := referencePattern.ReplaceAllStringFunc(value, func(match string) string {
			ref := match[1 : len(match)-1]
			dep, ok := t.referenceID(ref)
			if !ok {
				if err == nil {
					err = NewUnknownReferenceError(filePath, id, ref)
				}
				return match
			}
			depNS, depKey := splitEntryID(dep)
			return t.namespaces[depNS][depKey]
		})
		if err != nil {
			return err
		}
		t.namespaces[ns][key] = resolved
	}

	return nil
}

func isGroupMarker(s string) bool {
	for _, m := range GroupMarkers {
		if s == m {
			return true
		}
	}
	return false
}
