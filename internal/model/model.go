package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"archguard/internal/errors"
)

// UnknownLayer is the sentinel layer assigned to paths no component rule
// matches. It permits nothing unless a model allows it explicitly.
const UnknownLayer = "Unknown"

// ComponentRule maps a folder glob pattern to a layer. Rules are evaluated
// in declaration order; the first matching rule wins.
type ComponentRule struct {
	Folder string
	Layer  string
}

// Model is the immutable in-memory representation of an architecture model.
// It is constructed once by Load and safe for concurrent reads.
type Model struct {
	layers map[string][]string
	rules  []ComponentRule

	// Warnings lists referenced-but-undeclared layer names found at load
	// time. They do not fail the load; validation treats such layers as
	// unknown.
	Warnings []string
}

// document mirrors the on-disk model shape: a `layers` section mapping layer
// name to its allow-list and an order-significant `components` section.
type document struct {
	Layers     map[string]layerDoc `json:"layers" yaml:"layers" toml:"layers"`
	Components []componentDoc      `json:"components" yaml:"components" toml:"components"`
}

type layerDoc struct {
	Allowed []string `json:"allowed" yaml:"allowed" toml:"allowed"`
}

type componentDoc struct {
	Folder string `json:"folder" yaml:"folder" toml:"folder"`
	Layer  string `json:"layer" yaml:"layer" toml:"layer"`
}

// Load reads and decodes an architecture model document. The decoder is
// chosen by file extension (.json, .yaml/.yml, .toml). Malformed documents
// and documents missing the layers or components section fail with a
// MODEL_LOAD_ERROR.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.ModelLoad, fmt.Sprintf("cannot read model %s", path), err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, errors.Newf(errors.ModelLoad, "unsupported model format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.New(errors.ModelLoad, fmt.Sprintf("malformed model %s", path), err)
	}

	return fromDocument(&doc)
}

func fromDocument(doc *document) (*Model, error) {
	if len(doc.Layers) == 0 {
		return nil, errors.Newf(errors.ModelLoad, "model is missing the layers section")
	}
	if doc.Components == nil {
		return nil, errors.Newf(errors.ModelLoad, "model is missing the components section")
	}

	m := &Model{
		layers: make(map[string][]string, len(doc.Layers)),
		rules:  make([]ComponentRule, 0, len(doc.Components)),
	}

	for name, l := range doc.Layers {
		allowed := make([]string, len(l.Allowed))
		copy(allowed, l.Allowed)
		m.layers[name] = allowed
	}

	for i, c := range doc.Components {
		if c.Folder == "" || c.Layer == "" {
			return nil, errors.Newf(errors.ModelLoad, "component %d needs both folder and layer", i)
		}
		m.rules = append(m.rules, ComponentRule{Folder: c.Folder, Layer: c.Layer})
	}

	m.Warnings = m.collectWarnings()
	return m, nil
}

// collectWarnings reports layer names referenced by components or allow-lists
// that are not declared in the layers section.
func (m *Model) collectWarnings() []string {
	seen := make(map[string]bool)
	var warnings []string

	warn := func(msg string) {
		if !seen[msg] {
			seen[msg] = true
			warnings = append(warnings, msg)
		}
	}

	for _, r := range m.rules {
		if _, ok := m.layers[r.Layer]; !ok && r.Layer != UnknownLayer {
			warn(fmt.Sprintf("component %q assigns undeclared layer %q", r.Folder, r.Layer))
		}
	}
	for name, allowed := range m.layers {
		for _, target := range allowed {
			if _, ok := m.layers[target]; !ok && target != UnknownLayer {
				warn(fmt.Sprintf("layer %q allows undeclared layer %q", name, target))
			}
		}
	}

	sort.Strings(warnings)
	return warnings
}

// AllowedTargets returns the allow-list for a layer. Unknown layers permit
// nothing, so the conservative default flags every edge out of them.
func (m *Model) AllowedTargets(layer string) []string {
	return m.layers[layer]
}

// Allows reports whether source may depend on target.
func (m *Model) Allows(source, target string) bool {
	for _, t := range m.layers[source] {
		if t == target {
			return true
		}
	}
	return false
}

// HasLayer reports whether the layer is declared in the model.
func (m *Model) HasLayer(name string) bool {
	_, ok := m.layers[name]
	return ok
}

// LayerNames returns the declared layer names in sorted order.
func (m *Model) LayerNames() []string {
	names := make([]string, 0, len(m.layers))
	for name := range m.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rules returns the component rules in declaration order. Callers must not
// mutate the returned slice.
func (m *Model) Rules() []ComponentRule {
	return m.rules
}
