package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"archguard/internal/catalog"
	"archguard/internal/classify"
	"archguard/internal/config"
	"archguard/internal/graph"
	"archguard/internal/logging"
	"archguard/internal/model"
	"archguard/internal/report"
	"archguard/internal/rules"
	"archguard/internal/scan"
)

// runEngine executes one full conformance run over root: discover the file
// universe, load the model, build the catalog and edge set, validate.
// Model-load failures are fatal and happen before any scanning.
func runEngine(ctx context.Context, root string, cfg *config.Config, logger *logging.Logger) (*report.Result, error) {
	modelPath := cfg.Model
	if modelFlag != "" {
		modelPath = modelFlag
	}
	if !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(root, modelPath)
	}

	m, err := model.Load(modelPath)
	if err != nil {
		return nil, err
	}
	for _, w := range m.Warnings {
		logger.Warn("Model warning", map[string]interface{}{"warning": w})
	}

	excludes := cfg.Scan.Excludes
	if rel, relErr := filepath.Rel(root, modelPath); relErr == nil {
		excludes = append(excludes, filepath.ToSlash(rel))
	}

	universe, err := scan.Discover(root, scan.Options{
		Excludes:         excludes,
		MaxFileSizeBytes: cfg.Scan.MaxFileSizeBytes,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("File universe discovered", map[string]interface{}{"files": len(universe)})

	classifier := classify.NewClassifier(m)
	cat := catalog.Build(universe, classifier)
	for _, shadowed := range cat.Shadowed() {
		logger.Warn("Duplicate module name shadows earlier file", map[string]interface{}{
			"shadowed": shadowed,
		})
	}

	builder := graph.NewBuilder(classifier, logger, graph.Options{
		Workers:     cfg.Scan.Workers,
		FileTimeout: time.Duration(cfg.Scan.FileTimeoutMs) * time.Millisecond,
	})
	edges, fileErrors, err := builder.Build(ctx, root, universe)
	if err != nil {
		return nil, err
	}

	violations := rules.Validate(edges, m, cat)

	result := report.NewResult(root, modelPath, edges, violations, fileErrors)
	result.ModelWarnings = m.Warnings
	return result, nil
}

// resolveRoot returns the scan root from the positional args, defaulting to
// the working directory.
func resolveRoot(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	return os.Getwd()
}

// mustLoadConfig loads the runtime configuration or exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.LoadConfig(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger creates a logger matching the requested output format.
func newLogger(cfg *config.Config, format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" || cfg.Logging.Format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})
}
