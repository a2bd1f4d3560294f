package report

import (
	"time"

	"github.com/google/uuid"

	"archguard/internal/graph"
	"archguard/internal/rules"
)

// Result is the finalized output of one conformance run. Renderers (console,
// JUnit XML, HTML) consume it and nothing else; the engine never assumes any
// particular renderer is present.
type Result struct {
	RunID       string    `json:"runId"`
	Root        string    `json:"root"`
	ModelPath   string    `json:"modelPath"`
	GeneratedAt time.Time `json:"generatedAt"`

	Edges      []graph.Edge      `json:"edges"`
	Violations []rules.Violation `json:"violations"`
	FileErrors []graph.FileError `json:"fileErrors,omitempty"`

	// ModelWarnings carries load-time warnings about undeclared layers.
	ModelWarnings []string `json:"modelWarnings,omitempty"`
}

// NewResult assembles a result with a fresh run identifier.
func NewResult(root, modelPath string, edges []graph.Edge, violations []rules.Violation, fileErrors []graph.FileError) *Result {
	return &Result{
		RunID:       uuid.NewString(),
		Root:        root,
		ModelPath:   modelPath,
		GeneratedAt: time.Now().UTC(),
		Edges:       edges,
		Violations:  violations,
		FileErrors:  fileErrors,
	}
}

// Conformant reports whether zero violations were observed.
func (r *Result) Conformant() bool {
	return len(r.Violations) == 0
}

// Passed reports whether the run is a clean pass: conformant AND every file
// was analyzed. "No violations observed" is not the same as "no violations
// because half the files could not be analyzed".
func (r *Result) Passed() bool {
	return r.Conformant() && len(r.FileErrors) == 0
}
