package design

import (
	"maps"
	"slices"

	"bennypowers.dev/utilgen/internal/collections"
	"bennypowers.dev/utilgen/internal/theme"
)

// Classes lists the named classes the design can generate without
// arbitrary values, prefix included, sorted. Bare integer and fraction
// forms are open-ended and not listed.
func (d *Design) Classes() []string {
	classes := collections.NewSet[string]()
	for name, utilities := range d.utilities {
		for _, u := range utilities {
			if u.Kind == StaticUtility {
				classes.Add(d.Prefix + name)
				continue
			}
			if _, ok := u.DefaultValue(d.Theme); ok {
				classes.Add(d.Prefix + name)
			}
			for _, key := range u.keys(d.Theme) {
				if key != theme.DefaultKey {
					classes.Add(d.Prefix + name + "-" + key)
				}
			}
		}
	}
	return collections.Sorted(classes)
}

// StaticVariantNames returns the names of the static variants, sorted.
func (d *Design) StaticVariantNames() []string {
	return slices.Sorted(maps.Keys(d.staticVariants))
}

func (u *Utility) keys(t *theme.Theme) []string {
	keys := slices.Collect(maps.Keys(u.Values))
	for _, ns := range u.Namespaces {
		keys = append(keys, t.Keys(ns)...)
	}
	return keys
}
