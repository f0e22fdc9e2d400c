// Package observability provides formatted console output for the maintenance commands.
package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles human-readable report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Writer returns the underlying writer, used by interactive prompts.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Banner prints a top-level title framed by rules.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Banner(title string) {
	rule := strings.Repeat("=", boxWidth+10)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintln(p.out, title)
	fmt.Fprintln(p.out, rule)
}

// Section prints a numbered or titled step heading.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Section(title string) {
	fmt.Fprintf(p.out, "\n=== %s ===\n", title)
}

// OK prints a success line.
func (p *Printer) OK(format string, args ...any) {
	p.line("✓", format, args...)
}

// Fail prints a failure line.
func (p *Printer) Fail(format string, args ...any) {
	p.line("✗", format, args...)
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.line("⚠", format, args...)
}

// Info prints an indented informational line.
func (p *Printer) Info(format string, args ...any) {
	p.line(" ", format, args...)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) line(mark, format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Blank prints an empty line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

// JSON prints a value as indented JSON, each line prefixed by indent.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) JSON(indent string, v any) {
	data, err := json.MarshalIndent(v, indent, "  ")
	if err != nil {
		fmt.Fprintf(p.out, "%s<unprintable: %v>\n", indent, err)
		return
	}
	fmt.Fprintf(p.out, "%s%s\n", indent, data)
}

// Box prints content inside a titled box.
func (p *Printer) Box(title, content string) {
	p.printBox(title, strings.TrimSuffix(content, "\n"))
}

// FileCount is one line of a rewrite summary.
type FileCount struct {
	Path  string
	Count int
}

// PrintChangeSummary outputs the files touched by a rewrite run, most changes first.
func (p *Printer) PrintChangeSummary(title string, changes []FileCount, unit string) {
	if len(changes) == 0 {
		p.Box(title, "No files changed")
		return
	}

	sorted := make([]FileCount, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Path < sorted[j].Path
	})

	total := 0
	for _, c := range sorted {
		total += c.Count
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Files modified: %d\n", len(sorted)))
	sb.WriteString(fmt.Sprintf("Total %s: %d\n\n", unit, total))
	for _, c := range sorted {
		sb.WriteString(fmt.Sprintf("%3d  %s\n", c.Count, c.Path))
	}

	p.Box(title, sb.String())
}

// PrintList outputs a bounded list of items under a heading.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintList(heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(p.out, "%s\n", heading)
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(p.out, "  • %s\n", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(p.out, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}
