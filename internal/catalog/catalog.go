package catalog

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"archguard/internal/classify"
)

// Entry records one discovered source unit under its short module name.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Layer string `json:"layer"`
}

// Catalog indexes the file universe by short module name (file stem). It is
// used only for remediation suggestions; edge resolution never consults it.
//
// Duplicate stems across directories shadow earlier entries: last write wins,
// order is traversal order. That is acceptable for suggestions and documented
// as an inconsistency, not silently ignored.
type Catalog struct {
	entries map[string]Entry
	shadows []string
}

// Build scans the universe once, recording each file's stem and classified
// layer. The universe must already be in traversal order.
func Build(universe []string, classifier *classify.Classifier) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(universe))}

	for _, rel := range universe {
		stem := Stem(rel)
		if prev, ok := c.entries[stem]; ok {
			c.shadows = append(c.shadows, prev.Path)
		}
		c.entries[stem] = Entry{
			Name:  stem,
			Path:  rel,
			Layer: classifier.Classify(rel),
		}
	}

	return c
}

// Stem returns the short module name of a path: the base name without its
// extension.
func Stem(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Lookup returns the entry for a short module name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// InLayers returns entries whose layer is one of the given layers, excluding
// the named module, sorted by name for deterministic output.
func (c *Catalog) InLayers(layers []string, exclude string) []Entry {
	allowed := make(map[string]bool, len(layers))
	for _, l := range layers {
		allowed[l] = true
	}

	var result []Entry
	for _, e := range c.entries {
		if e.Name != exclude && allowed[e.Layer] {
			result = append(result, e)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Shadowed returns the paths whose catalog entry was overwritten by a later
// file with the same stem.
func (c *Catalog) Shadowed() []string {
	return c.shadows
}

// Len returns the number of distinct module names.
func (c *Catalog) Len() int {
	return len(c.entries)
}
