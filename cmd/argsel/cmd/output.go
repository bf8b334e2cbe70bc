package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/corey/argsel/internal/app"
	"github.com/corey/argsel/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// palette returns the color codes, or empty strings when color is off.
type palette struct {
	reset, bold, cyan, green, yellow, gray string
}

func newPalette(color bool) palette {
	if !color {
		return palette{}
	}
	return palette{colorReset, colorBold, colorCyan, colorGreen, colorYellow, colorGray}
}

// formatReport formats a check report for terminal display.
//
//	file:line:col: message  [check]
//	    fix: Swap arguments
//	⚡ 2 findings │ 14 files, 3 packages │ 1 baselined │ 120ms
func formatReport(r *app.Report, color bool) string {
	p := newPalette(color)
	var sb strings.Builder
	for _, f := range r.Findings {
		fmt.Fprintf(&sb, "%s%s%s:%d:%d: ", p.cyan, f.File, p.reset, f.Line, f.Column)
		lines := strings.Split(f.Message, "\n")
		fmt.Fprintf(&sb, "%s  %s[%s]%s\n", lines[0], p.gray, f.Check, p.reset)
		for _, l := range lines[1:] {
			fmt.Fprintf(&sb, "    %s\n", l)
		}
		for _, fx := range f.Fixes {
			if !fx.IsEmpty() {
				fmt.Fprintf(&sb, "    %sfix:%s %s\n", p.green, p.reset, fx.Description)
			}
		}
	}

	noun := "findings"
	if len(r.Findings) == 1 {
		noun = "finding"
	}
	summary := fmt.Sprintf("%s⚡ %d %s%s │ %d files, %d packages",
		p.bold, len(r.Findings), noun, p.reset, r.Files, r.Packages)
	if r.Baselined > 0 {
		summary += fmt.Sprintf(" │ %d baselined", r.Baselined)
	}
	summary += fmt.Sprintf(" │ %s", time.Since(r.Started).Round(time.Millisecond))
	sb.WriteString(summary + "\n")
	return sb.String()
}

// formatWarnings formats packages and files that could not be checked.
func formatWarnings(errs []error, color bool) string {
	p := newPalette(color)
	var sb strings.Builder
	for _, err := range errs {
		fmt.Fprintf(&sb, "%swarning:%s %v\n", p.yellow, p.reset, err)
	}
	return sb.String()
}

// formatBaseline formats a saved baseline for terminal display.
func formatBaseline(b *ports.Baseline, color bool) string {
	p := newPalette(color)
	if b == nil {
		return "⚡ no baseline saved\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s⚡ baseline%s │ %d findings │ saved %s │ run %s\n",
		p.bold, p.reset, len(b.Entries), b.CreatedAt.Local().Format(time.DateTime), b.RunID)
	for _, e := range b.Sorted() {
		first, _, _ := strings.Cut(e.Message, "\n")
		fmt.Fprintf(&sb, "  %s%s%s  %s  %s[%s]%s\n", p.cyan, e.File, p.reset, first, p.gray, e.Check, p.reset)
	}
	return sb.String()
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
