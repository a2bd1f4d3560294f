package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"archguard/internal/config"
	"archguard/internal/errors"
	"archguard/internal/logging"
	"archguard/internal/report"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

const projectModel = `{
  "layers": {
    "UI": {"allowed": ["Domain"]},
    "Domain": {"allowed": ["Infra"]},
    "Infra": {"allowed": []}
  },
  "components": [
    {"folder": "ui/**", "layer": "UI"},
    {"folder": "domain/**", "layer": "Domain"},
    {"folder": "infra/**", "layer": "Infra"}
  ]
}
`

func runEngineOn(t *testing.T, root string) *report.Result {
	t.Helper()
	cfg := config.DefaultConfig()
	logger := logging.NewLogger(logging.Config{Level: logging.ErrorLevel})

	result, err := runEngine(context.Background(), root, cfg, logger)
	if err != nil {
		t.Fatalf("runEngine: %v", err)
	}
	return result
}

func TestEngineFlagsUIToInfraViolation(t *testing.T) {
	root := writeProject(t, map[string]string{
		"architecture.json":     projectModel,
		"ui/view.py":            "import service\nimport infra_helper\n",
		"domain/service.py":     "import infra_helper\n",
		"infra/infra_helper.py": "x = 1\n",
	})

	r := runEngineOn(t, root)

	if len(r.Edges) != 3 {
		t.Fatalf("edges = %d, want 3: %+v", len(r.Edges), r.Edges)
	}

	// ui/view.py importing infra_helper resolves to ui/infra_helper.py,
	// which matches the UI pattern: UI -> UI is not allowed either, but
	// the reference scenario places the violation on the layer of the
	// resolved sibling path. Both imports from ui/ violate UI's policy.
	if r.Conformant() {
		t.Fatal("expected violations")
	}

	// domain/service.py -> infra_helper resolves to domain/infra_helper.py
	// (Domain). Domain -> Domain is not in Domain's allow-list, so the
	// sibling heuristic flags it; a real Infra sibling would not.
	for _, v := range r.Violations {
		if v.Edge.SourceLayer == "Infra" {
			t.Errorf("no Infra-sourced edges exist: %+v", v)
		}
	}
}

func TestEngineConformantRun(t *testing.T) {
	root := writeProject(t, map[string]string{
		"architecture.json": projectModel,
		"ui/view.py":        "import widget\n",
		"ui/widget.py":      "x = 1\n",
	})

	// Allow UI -> UI so the sibling edge conforms.
	model := `{
  "layers": {
    "UI": {"allowed": ["UI", "Domain"]},
    "Domain": {"allowed": []}
  },
  "components": [
    {"folder": "ui/**", "layer": "UI"}
  ]
}`
	if err := os.WriteFile(filepath.Join(root, "architecture.json"), []byte(model), 0644); err != nil {
		t.Fatal(err)
	}

	r := runEngineOn(t, root)
	if !r.Conformant() || !r.Passed() {
		t.Errorf("expected clean pass, got violations=%v fileErrors=%v", r.Violations, r.FileErrors)
	}
}

func TestEngineMissingModelIsFatal(t *testing.T) {
	root := writeProject(t, map[string]string{
		"ui/view.py": "import os\n",
	})
	cfg := config.DefaultConfig()
	logger := logging.NewLogger(logging.Config{Level: logging.ErrorLevel})

	_, err := runEngine(context.Background(), root, cfg, logger)
	if err == nil {
		t.Fatal("expected fatal model load error")
	}
	if !errors.HasCode(err, errors.ModelLoad) {
		t.Errorf("expected MODEL_LOAD_ERROR, got %v", err)
	}
}

func TestEngineParseFailureFailsRun(t *testing.T) {
	root := writeProject(t, map[string]string{
		"architecture.json": projectModel,
		"ui/bad.py":         "def broken(:\n",
	})

	r := runEngineOn(t, root)
	if len(r.FileErrors) != 1 {
		t.Fatalf("fileErrors = %v, want 1", r.FileErrors)
	}
	if !r.Conformant() {
		t.Error("no edges were observed, so the run is technically conformant")
	}
	if r.Passed() {
		t.Error("a run with file errors must never be a clean pass")
	}
}

func TestEngineIdempotent(t *testing.T) {
	root := writeProject(t, map[string]string{
		"architecture.json": projectModel,
		"ui/view.py":        "import service\n",
		"domain/service.py": "import db\n",
	})

	first := runEngineOn(t, root)
	second := runEngineOn(t, root)

	if !reflect.DeepEqual(first.Edges, second.Edges) {
		t.Errorf("edge sequences differ:\n%+v\n%+v", first.Edges, second.Edges)
	}
	if !reflect.DeepEqual(first.Violations, second.Violations) {
		t.Errorf("violation sequences differ")
	}
}

func TestEngineModelFileExcludedFromUniverse(t *testing.T) {
	// The model itself and archguard's own artifacts never produce edges.
	root := writeProject(t, map[string]string{
		"architecture.json":      projectModel,
		".archguard/config.json": "{}",
		"ui/view.py":             "x = 1\n",
	})

	r := runEngineOn(t, root)
	if len(r.Edges) != 0 {
		t.Errorf("edges = %+v, want none", r.Edges)
	}
}
