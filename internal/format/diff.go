package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// DiffResult represents the difference between a query and its formatted form
type DiffResult struct {
	Original  string
	Formatted string
	Changed   bool
}

// linePair is one line position of the original and formatted text. A side
// is empty when that text has fewer lines.
type linePair struct {
	number    int
	original  string
	formatted string
}

// Diff compares original and formatted text
func Diff(original, formatted string) *DiffResult {
	return &DiffResult{
		Original:  original,
		Formatted: formatted,
		Changed:   original != formatted,
	}
}

// changedLines pairs the lines of both texts by position and returns the
// pairs that differ
func (d *DiffResult) changedLines() []linePair {
	orig := strings.Split(d.Original, "\n")
	formatted := strings.Split(d.Formatted, "\n")

	var pairs []linePair
	for i := 0; i < max(len(orig), len(formatted)); i++ {
		p := linePair{number: i + 1}
		if i < len(orig) {
			p.original = orig[i]
		}
		if i < len(formatted) {
			p.formatted = formatted[i]
		}
		if p.original != p.formatted {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// String returns a line-by-line diff with color highlighting
func (d *DiffResult) String() string {
	if !d.Changed {
		return color.GreenString("No changes needed")
	}

	var buf bytes.Buffer
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	for _, p := range d.changedLines() {
		cyan.Fprintf(&buf, "@@ Line %d @@\n", p.number)
		if p.original != "" {
			red.Fprintf(&buf, "- %s\n", p.original)
		}
		if p.formatted != "" {
			green.Fprintf(&buf, "+ %s\n", p.formatted)
		}
	}
	return buf.String()
}

// UnifiedDiff returns the changes in a unified-diff-like layout, or "" when
// nothing changed
func (d *DiffResult) UnifiedDiff(filename string) string {
	if !d.Changed {
		return ""
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- a/%s\n", filename)
	fmt.Fprintf(&buf, "+++ b/%s\n", filename)

	for _, p := range d.changedLines() {
		fmt.Fprintf(&buf, "@@ -%d +%d @@\n", p.number, p.number)
		if p.original != "" {
			fmt.Fprintf(&buf, "-%s\n", p.original)
		}
		if p.formatted != "" {
			fmt.Fprintf(&buf, "+%s\n", p.formatted)
		}
	}
	return buf.String()
}

// Stats summarizes the changed, added and removed line counts
func (d *DiffResult) Stats() string {
	if !d.Changed {
		return "No changes"
	}

	added, removed, changed := 0, 0, 0
	for _, p := range d.changedLines() {
		switch {
		case p.original == "":
			added++
		case p.formatted == "":
			removed++
		default:
			changed++
		}
	}
	return fmt.Sprintf("%d lines changed, %d added, %d removed", changed, added, removed)
}
