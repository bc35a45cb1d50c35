package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Table renders rows of cells in aligned columns under a colored header
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	noColor := false
	if opts != nil {
		noColor = opts.NoColor
	}

	return &Table{
		writer:  w,
		headers: headers,
		rows:    make([][]string, 0),
		noColor: noColor,
	}
}

// AddRow adds a row to the table. Cells beyond the header count are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table. Column widths are measured in runes so lexemes
// with multi-byte characters stay aligned.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	bold := t.style(color.Bold, color.FgCyan)
	t.writeLine(t.headers, widths, func(i int, s string) string { return bold.Sprint(s) })

	gray := t.style(color.FgHiBlack)
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("─", width)
	}
	t.writeLine(sep, widths, func(i int, s string) string { return gray.Sprint(s) })

	for _, row := range t.rows {
		if len(row) > len(widths) {
			row = row[:len(widths)]
		}
		t.writeLine(row, widths, nil)
	}
}

func (t *Table) writeLine(cells []string, widths []int, paint func(int, string) string) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		padded := cell
		// Last column is not padded to avoid trailing whitespace
		if i < len(cells)-1 {
			padded = padRight(cell, widths[i])
		}
		if paint != nil {
			padded = paint(i, padded)
		}
		parts[i] = padded
	}
	fmt.Fprintln(t.writer, strings.Join(parts, "  "))
}

func (t *Table) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if t.noColor {
		c.DisableColor()
	}
	return c
}

// padRight pads s with spaces to width runes
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// KeyValueTable renders a two column "key: value" listing
type KeyValueTable struct {
	writer  io.Writer
	rows    [][2]string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.rows = append(t.rows, [2]string{key, value})
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	if len(t.rows) == 0 {
		return
	}

	keyWidth := 0
	for _, row := range t.rows {
		keyWidth = max(keyWidth, utf8.RuneCountInString(row[0]))
	}

	cyan := color.New(color.FgCyan)
	if t.noColor {
		cyan.DisableColor()
	}
	for _, row := range t.rows {
		cyan.Fprint(t.writer, padRight(row[0]+":", keyWidth+1))
		fmt.Fprintf(t.writer, " %s\n", row[1])
	}
}

// Header renders a bold title underlined to its width
func Header(w io.Writer, title string, noColor bool) {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if noColor {
		bold.DisableColor()
		gray.DisableColor()
	}
	bold.Fprintln(w, title)
	gray.Fprintln(w, strings.Repeat("─", utf8.RuneCountInString(title)))
}
