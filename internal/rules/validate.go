package rules

import (
	"archguard/internal/catalog"
	"archguard/internal/graph"
	"archguard/internal/model"
)

// Violation is an edge whose target layer is outside its source layer's
// allow-list, plus in-policy alternatives for remediation.
type Violation struct {
	Edge graph.Edge `json:"edge"`

	// Allowed is the source layer's allow-list at validation time.
	Allowed []string `json:"allowed"`

	// Suggestions lists module names whose layer IS allowed from the
	// source layer, excluding the offending name, sorted for determinism.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Validate classifies each edge against the model. An edge is a violation iff
// its target layer is not in the source layer's allow-list; conforming edges
// are never reported, violating edges always are.
func Validate(edges []graph.Edge, m *model.Model, cat *catalog.Catalog) []Violation {
	var violations []Violation

	for _, edge := range edges {
		if m.Allows(edge.SourceLayer, edge.TargetLayer) {
			continue
		}

		allowed := m.AllowedTargets(edge.SourceLayer)
		violations = append(violations, Violation{
			Edge:        edge,
			Allowed:     allowed,
			Suggestions: suggestions(cat, allowed, edge.Import),
		})
	}

	return violations
}

func suggestions(cat *catalog.Catalog, allowed []string, offending string) []string {
	if cat == nil || len(allowed) == 0 {
		return nil
	}

	entries := cat.InLayers(allowed, offending)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
