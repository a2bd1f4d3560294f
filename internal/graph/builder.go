package graph

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"archguard/internal/classify"
	"archguard/internal/errors"
	"archguard/internal/imports"
	"archguard/internal/logging"
)

// Edge is one observed import reference from a classified source file to a
// classified (putative) target. One edge is recorded per reference, so
// repeated imports of the same name produce repeated edges.
type Edge struct {
	SourceLayer string `json:"sourceLayer"`
	TargetLayer string `json:"targetLayer"`
	SourceUnit  string `json:"sourceUnit"` // file base name
	SourcePath  string `json:"sourcePath"` // relative slash path
	Import      string `json:"import"`     // short module name
	Line        int    `json:"line,omitempty"`
}

// FileError records a file that could not be analyzed. The run continues,
// but a run with file errors is never reported as a clean pass.
type FileError struct {
	Path    string           `json:"path"`
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// Options configures the builder.
type Options struct {
	// Workers bounds concurrent per-file analysis. Zero means GOMAXPROCS.
	Workers int

	// FileTimeout bounds a single file's read and parse. Zero disables it.
	FileTimeout time.Duration
}

// Builder extracts per-file import references and resolves them to directed
// layer edges. Files are independent, so extraction runs on a bounded worker
// pool; results are merged by universe index, which keeps the output order
// equal to the universe order regardless of scheduling.
type Builder struct {
	classifier *classify.Classifier
	logger     *logging.Logger
	opts       Options
}

// NewBuilder creates a builder over the given classifier.
func NewBuilder(classifier *classify.Classifier, logger *logging.Logger, opts Options) *Builder {
	return &Builder{classifier: classifier, logger: logger, opts: opts}
}

// Build resolves every (file, imported module) pair in the universe to an
// Edge. Target resolution is same-directory sibling lookup: the imported name
// plus the importing file's extension, in the importing file's directory. An
// import with no sibling file still classifies via its synthesized path,
// commonly to Unknown.
//
// Per-file parse and read failures become FileErrors and contribute no edges.
// The returned error is non-nil only when ctx is cancelled; in that case the
// partial result must not be treated as a completed run.
func (b *Builder) Build(ctx context.Context, root string, universe []string) ([]Edge, []FileError, error) {
	perFileEdges := make([][]Edge, len(universe))
	perFileErrs := make([]*FileError, len(universe))

	g, gctx := errgroup.WithContext(ctx)
	workers := b.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, rel := range universe {
		i, rel := i, rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			edges, ferr := b.analyzeFile(gctx, root, rel)
			perFileEdges[i] = edges
			perFileErrs[i] = ferr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var edges []Edge
	var fileErrors []FileError
	for i := range universe {
		edges = append(edges, perFileEdges[i]...)
		if perFileErrs[i] != nil {
			fileErrors = append(fileErrors, *perFileErrs[i])
		}
	}

	b.logger.Info("Edge build completed", map[string]interface{}{
		"files":      len(universe),
		"edges":      len(edges),
		"fileErrors": len(fileErrors),
	})

	return edges, fileErrors, nil
}

func (b *Builder) analyzeFile(ctx context.Context, root, rel string) ([]Edge, *FileError) {
	lang, ok := imports.DetectLanguage(rel)
	if !ok {
		// The universe only contains supported files; a mismatch here is
		// a scan bug, not a user error.
		return nil, &FileError{Path: rel, Code: errors.Internal, Message: "unsupported language"}
	}

	if b.opts.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.FileTimeout)
		defer cancel()
	}

	source, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, &FileError{Path: rel, Code: errors.File, Message: err.Error()}
	}

	refs, err := imports.NewExtractor().Extract(ctx, source, lang)
	if err != nil {
		b.logger.Warn("File could not be analyzed", map[string]interface{}{
			"file":  rel,
			"error": err.Error(),
		})
		return nil, &FileError{Path: rel, Code: errors.CodeOf(err), Message: err.Error()}
	}

	sourceLayer := b.classifier.Classify(rel)
	dir := path.Dir(rel)
	ext := path.Ext(rel)

	edges := make([]Edge, 0, len(refs))
	for _, ref := range refs {
		target := path.Join(dir, ref.Module+ext)
		edges = append(edges, Edge{
			SourceLayer: sourceLayer,
			TargetLayer: b.classifier.Classify(target),
			SourceUnit:  path.Base(rel),
			SourcePath:  rel,
			Import:      ref.Module,
			Line:        ref.Line,
		})
	}

	return edges, nil
}
