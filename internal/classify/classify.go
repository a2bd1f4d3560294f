package classify

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"archguard/internal/model"
)

// Classifier resolves file paths to layer names via the model's component
// rules. It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	rules []model.ComponentRule
}

// NewClassifier creates a classifier over the model's rules.
func NewClassifier(m *model.Model) *Classifier {
	return &Classifier{rules: m.Rules()}
}

// Classify returns the layer of the first rule whose glob matches the path,
// or UnknownLayer when none does. Patterns support multi-segment wildcards
// (`**`); paths are normalized to forward slashes before matching so results
// are consistent across OS.
func (c *Classifier) Classify(path string) string {
	rel := filepath.ToSlash(path)

	for _, rule := range c.rules {
		if matched, err := doublestar.Match(rule.Folder, rel); err == nil && matched {
			return rule.Layer
		}
	}

	return model.UnknownLayer
}
