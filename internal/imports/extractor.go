package imports

import (
	"context"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"archguard/internal/errors"
)

// Reference is one observed import of a module name, in textual order.
// Repeated imports of the same name yield repeated references.
type Reference struct {
	Module string `json:"module"`
	Line   int    `json:"line"`
}

// Extractor parses one source file's syntax tree and yields the referenced
// module names. It wraps a single tree-sitter parser and is not safe for
// concurrent use; callers create one per worker.
type Extractor struct {
	parser *sitter.Parser
}

// NewExtractor creates a new tree-sitter backed extractor.
func NewExtractor() *Extractor {
	return &Extractor{parser: sitter.NewParser()}
}

// Extract parses source and collects imported module names in textual order,
// duplicates preserved. A file whose tree contains syntax errors fails with a
// PARSE_ERROR; the caller records it and continues the run.
func (e *Extractor) Extract(ctx context.Context, source []byte, lang Language) ([]Reference, error) {
	tsLang := getLanguage(lang)
	if tsLang == nil {
		return nil, errors.Newf(errors.Internal, "no grammar for language %q", lang)
	}

	e.parser.SetLanguage(tsLang)
	tree, err := e.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.New(errors.Timeout, "parse deadline exceeded", ctx.Err())
		}
		return nil, errors.New(errors.Parse, "parse failed", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.Newf(errors.Parse, "source is not syntactically valid %s", lang)
	}

	var refs []Reference
	collect := func(module string, node *sitter.Node) {
		if module != "" {
			refs = append(refs, Reference{Module: module, Line: int(node.StartPoint().Row) + 1})
		}
	}

	// Preorder walk keeps references in textual order of occurrence.
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch lang {
		case LangPython:
			e.visitPython(n, source, collect)
		default:
			e.visitECMAScript(n, source, collect)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)

	return refs, nil
}

// visitPython handles `import a.b` (first dotted segment) and
// `from a.b import c` (last dotted segment of the module path). Bare relative
// imports (`from . import x`) carry no module path and are skipped.
func (e *Extractor) visitPython(n *sitter.Node, source []byte, collect func(string, *sitter.Node)) {
	switch n.Type() {
	case "import_statement":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			name := child
			if child.Type() == "aliased_import" {
				name = child.ChildByFieldName("name")
			}
			if name == nil || name.Type() != "dotted_name" {
				continue
			}
			dotted := name.Content(source)
			collect(firstSegment(dotted), n)
		}
	case "import_from_statement":
		module := n.ChildByFieldName("module_name")
		if module == nil {
			return
		}
		dotted := strings.TrimLeft(module.Content(source), ".")
		collect(lastSegment(dotted), n)
	}
}

// visitECMAScript handles static imports, re-exports, require() and dynamic
// import() for JavaScript and TypeScript. The module name is the stem of the
// last path segment of the import source.
func (e *Extractor) visitECMAScript(n *sitter.Node, source []byte, collect func(string, *sitter.Node)) {
	switch n.Type() {
	case "import_statement", "export_statement":
		if src := n.ChildByFieldName("source"); src != nil {
			collect(moduleFromSource(src.Content(source)), n)
		}
	case "call_expression":
		fn := n.ChildByFieldName("function")
		if fn == nil {
			return
		}
		isRequire := fn.Type() == "identifier" && fn.Content(source) == "require"
		isDynamicImport := fn.Type() == "import"
		if !isRequire && !isDynamicImport {
			return
		}
		args := n.ChildByFieldName("arguments")
		if args == nil || args.NamedChildCount() == 0 {
			return
		}
		if first := args.NamedChild(0); first.Type() == "string" {
			collect(moduleFromSource(first.Content(source)), n)
		}
	}
}

func firstSegment(dotted string) string {
	if dotted == "" {
		return ""
	}
	if i := strings.IndexByte(dotted, '.'); i >= 0 {
		return dotted[:i]
	}
	return dotted
}

func lastSegment(dotted string) string {
	if dotted == "" {
		return ""
	}
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}

// moduleFromSource reduces an import source string to a short module name:
// strip quotes, take the last path segment, drop its extension.
func moduleFromSource(quoted string) string {
	s := strings.Trim(quoted, "\"'`")
	if s == "" {
		return ""
	}
	base := path.Base(s)
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
