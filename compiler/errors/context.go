package errors

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LineColumn converts a byte offset in source to a 1-indexed line and column.
// Columns count characters, not bytes. Offsets past the end are clamped.
func LineColumn(source string, pos int) (line, column int) {
	if pos > len(source) {
		pos = len(source)
	}

	line, column = 1, 1
	for _, r := range source[:pos] {
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// SourceContext renders the source line containing pos followed by a caret
// under the failing column:
//
//	  3 | WHEER age > 18
//	    | ^
//
// It returns "" when pos lies beyond the last line of source.
func SourceContext(source string, pos int) string {
	lines := sourceLines(source)
	line, column := LineColumn(source, pos)

	if line < 1 || line > len(lines) {
		return ""
	}

	gutter := strconv.Itoa(line)
	return fmt.Sprintf("  %s | %s\n  %s | %s^",
		gutter, lines[line-1],
		strings.Repeat(" ", len(gutter)), strings.Repeat(" ", column-1))
}

// sourceLines splits source into lines, dropping the empty segment after a
// trailing newline and any carriage return before a newline.
func sourceLines(source string) []string {
	if source == "" {
		return nil
	}

	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// LineText returns the 1-indexed line of source, or "" if out of range
func LineText(source string, line int) string {
	lines := sourceLines(source)
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// charWidth returns the number of characters in s
func charWidth(s string) int {
	return utf8.RuneCountInString(s)
}
