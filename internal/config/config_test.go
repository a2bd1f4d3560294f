package config

import (
	"os"
	"path/filepath"
	"testing"

	"archguard/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Model != "architecture.json" {
		t.Errorf("Model = %q, want architecture.json", cfg.Model)
	}
	if cfg.Scan.MaxFileSizeBytes != 1000000 {
		t.Errorf("MaxFileSizeBytes = %d, want 1000000", cfg.Scan.MaxFileSizeBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Model != "architecture.json" {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".archguard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{
  "version": 1,
  "model": "model/layers.yaml",
  "scan": {"workers": 4, "excludes": ["generated"]}
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Model != "model/layers.yaml" {
		t.Errorf("Model = %q, want model/layers.yaml", cfg.Model)
	}
	if cfg.Scan.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Scan.Workers)
	}
	if len(cfg.Scan.Excludes) != 1 || cfg.Scan.Excludes[0] != "generated" {
		t.Errorf("Excludes = %v, want [generated]", cfg.Scan.Excludes)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Model = "arch.toml"

	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Model != "arch.toml" {
		t.Errorf("Model = %q, want arch.toml", loaded.Model)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"bad version", func(c *Config) { c.Version = 2 }, false},
		{"empty model", func(c *Config) { c.Model = "" }, false},
		{"negative workers", func(c *Config) { c.Scan.Workers = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.HasCode(err, errors.ConfigInvalid) {
					t.Errorf("expected CONFIG_ERROR code, got %v", err)
				}
			}
		})
	}
}
