package report

import (
	"fmt"
	"strings"
)

// FormatConsole renders the run summary in the classic console style: an
// edge count line, one FAIL line per violation, and file-error lines when
// analysis was incomplete.
func FormatConsole(r *Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[archguard] analyzed %d import edges\n", len(r.Edges))

	for _, w := range r.ModelWarnings {
		fmt.Fprintf(&b, "[archguard] WARN: %s\n", w)
	}

	if r.Conformant() {
		b.WriteString("[archguard] PASS: no violations found\n")
	} else {
		fmt.Fprintf(&b, "[archguard] FAIL: %d violations found\n", len(r.Violations))
		for _, v := range r.Violations {
			fmt.Fprintf(&b, "   FAIL: %s (%s) -> %s (%s)\n",
				v.Edge.SourceUnit, v.Edge.SourceLayer, v.Edge.Import, v.Edge.TargetLayer)
			if len(v.Suggestions) > 0 {
				fmt.Fprintf(&b, "         in-policy alternatives: %s\n", strings.Join(v.Suggestions, ", "))
			}
		}
	}

	if len(r.FileErrors) > 0 {
		fmt.Fprintf(&b, "[archguard] %d file(s) could not be analyzed\n", len(r.FileErrors))
		for _, fe := range r.FileErrors {
			fmt.Fprintf(&b, "   ERROR: %s: %s\n", fe.Path, fe.Message)
		}
		b.WriteString("[archguard] result is incomplete and not a clean pass\n")
	}

	return b.String()
}
