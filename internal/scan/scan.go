package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"archguard/internal/imports"
)

// alwaysIgnored are directories never worth scanning, including the tool's
// own artifacts. User excludes extend this set.
var alwaysIgnored = map[string]bool{
	".archguard":   true,
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Options controls file-universe discovery.
type Options struct {
	// Excludes lists path globs and directory prefixes removed from the
	// universe. This is the generalized form of the engine excluding its
	// own entry point: any configured path can be kept out of the scan.
	Excludes []string

	// MaxFileSizeBytes skips files larger than this. Zero disables the cap.
	MaxFileSizeBytes int
}

// Discover walks root and returns the relative slash paths of all source
// files with a supported language extension, in lexical walk order. The
// ordering is what makes repeated runs over an unchanged tree yield identical
// edge sequences.
func Discover(root string, opts Options) ([]string, error) {
	var universe []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			name := d.Name()
			if alwaysIgnored[name] || strings.HasPrefix(name, ".") || Excluded(rel, opts.Excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if !imports.Supported(rel) || Excluded(rel, opts.Excludes) {
			return nil
		}

		if opts.MaxFileSizeBytes > 0 {
			info, infoErr := d.Info()
			if infoErr != nil {
				return nil // vanished mid-walk, skip
			}
			if info.Size() > int64(opts.MaxFileSizeBytes) {
				return nil
			}
		}

		universe = append(universe, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return universe, nil
}

// Excluded reports whether a relative slash path matches any exclude entry.
// Entries are tried as doublestar globs first, then as directory prefixes, so
// "generated" excludes both the directory itself and everything under it.
func Excluded(rel string, excludes []string) bool {
	for _, pattern := range excludes {
		normalized := filepath.ToSlash(pattern)

		if matched, err := doublestar.Match(normalized, rel); err == nil && matched {
			return true
		}

		dirPattern := strings.TrimSuffix(normalized, "/") + "/"
		if strings.HasPrefix(rel, dirPattern) {
			return true
		}

		if rel == strings.TrimSuffix(normalized, "/") {
			return true
		}
	}
	return false
}
