package report

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// htmlReport is the template context for FormatHTML.
type htmlReport struct {
	Result  *Result
	Rows    []htmlRow
	Mermaid string
}

type htmlRow struct {
	Mark   string
	Line   string
	IsFail bool
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>archguard report</title>
  <script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script>
  <script>mermaid.initialize({ startOnLoad: true });</script>
  <style>
    body { font-family: sans-serif; padding: 1rem; }
    pre.mermaid { background: #f9f9f9; padding: 1rem; border-radius: 4px; }
    li.fail { color: #b00020; }
  </style>
</head>
<body>
  <h2>archguard report</h2>
  <p>run {{.Result.RunID}} &middot; model {{.Result.ModelPath}}</p>

  <h3>Violation Details</h3>
{{- if .Result.Violations}}
  <p>The following architectural violations were found:</p>
  <ul>
{{- range .Result.Violations}}
    <li class="fail">The file <b>{{.Edge.SourceUnit}}</b> in layer <i>{{.Edge.SourceLayer}}</i> imports
    <b>{{.Edge.Import}}</b> in layer <i>{{.Edge.TargetLayer}}</i>, which is not allowed by the model.</li>
{{- end}}
  </ul>
{{- else}}
  <p>No violations found &mdash; all dependencies comply with the model.</p>
{{- end}}

  <h3>Remediation Suggestions</h3>
{{- if .Result.Violations}}
  <ul>
{{- range .Result.Violations}}
    <li>In <b>{{.Edge.SourceUnit}}</b> ({{.Edge.SourceLayer}}), only imports to layers
    <i>{{if .Allowed}}{{range $i, $l := .Allowed}}{{if $i}}, {{end}}{{$l}}{{end}}{{else}}(none){{end}}</i> are allowed.
    {{- if .Suggestions}} Consider: {{range $i, $s := .Suggestions}}{{if $i}}, {{end}}<code>{{$s}}</code>{{end}}.{{end}}</li>
{{- end}}
  </ul>
{{- else}}
  <p>&mdash;</p>
{{- end}}

{{- if .Result.FileErrors}}
  <h3>Unanalyzed Files</h3>
  <ul>
{{- range .Result.FileErrors}}
    <li class="fail"><b>{{.Path}}</b>: {{.Message}}</li>
{{- end}}
  </ul>
  <p>The result is incomplete; this run is not a clean pass.</p>
{{- end}}

  <h3>Detailed Overview</h3>
  <pre>
{{- range .Rows}}
    {{.Mark}} {{.Line}}
{{- end}}
  </pre>

  <h3>Dependency Graph</h3>
  <pre class="mermaid">
{{.Mermaid}}
  </pre>
</body>
</html>
`))

// FormatHTML renders the result as a standalone HTML report with an embedded
// Mermaid dependency graph.
func FormatHTML(r *Result) ([]byte, error) {
	violated := violationSet(r)

	rows := make([]htmlRow, 0, len(r.Edges))
	for i, e := range r.Edges {
		mark := "PASS"
		if violated[i] {
			mark = "FAIL"
		}
		rows = append(rows, htmlRow{
			Mark:   mark,
			Line:   fmt.Sprintf("%s -> %s (%s->%s)", e.SourceUnit, e.Import, e.SourceLayer, e.TargetLayer),
			IsFail: violated[i],
		})
	}

	ctx := htmlReport{
		Result:  r,
		Rows:    rows,
		Mermaid: mermaidGraph(r),
	}

	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// violationSet maps edge indices to violation status, pairing each violation
// with a distinct edge occurrence so duplicate edges keep duplicate marks.
func violationSet(r *Result) map[int]bool {
	violated := make(map[int]bool)
	for _, v := range r.Violations {
		for i, e := range r.Edges {
			if !violated[i] && e == v.Edge {
				violated[i] = true
				break
			}
		}
	}
	return violated
}

// mermaidGraph builds a `graph LR` definition with one node per source unit
// and imported module.
func mermaidGraph(r *Result) string {
	var b strings.Builder
	b.WriteString("    graph LR\n")
	for _, e := range r.Edges {
		fmt.Fprintf(&b, "    %s[\"%s\\n(%s)\"] --> %s[\"%s\\n(%s)\"]\n",
			mermaidID(e.SourceUnit), e.SourceUnit, e.SourceLayer,
			mermaidID(e.Import), e.Import, e.TargetLayer)
	}
	return strings.TrimRight(b.String(), "\n")
}

var mermaidUnsafe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// mermaidID sanitizes a name into a valid Mermaid node identifier.
func mermaidID(name string) string {
	id := mermaidUnsafe.ReplaceAllString(name, "_")
	if id == "" {
		id = "_"
	}
	return id
}
