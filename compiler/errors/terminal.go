package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor     = color.New(color.FgRed, color.Bold)
	codeColor       = color.New(color.FgHiBlack)
	hintColor       = color.New(color.FgYellow)
	suggestionColor = color.New(color.FgGreen)
	caretColor      = color.New(color.FgRed)
)

// FormatForTerminal renders the error for a terminal. Colors follow
// color.NoColor, so output is plain when stdout is not a TTY.
func (e *ParseError) FormatForTerminal() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s at line %d:%d %s\n",
		headerColor.Sprint("Parse error"), e.Line, e.Column, codeColor.Sprintf("[%s]", e.Code))
	fmt.Fprintf(&sb, "  %s\n", e.Message)

	if e.HasSuggestion() {
		fmt.Fprintf(&sb, "  %s %s\n", hintColor.Sprint("Did you mean:"), suggestionColor.Sprint(e.Suggestion))
	}

	if e.HasContext() {
		sb.WriteString("\n")
		sb.WriteString(formatContext(e.Context, e.Found))
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatContext colors the caret line and widens the caret to cover found
func formatContext(context, found string) string {
	idx := strings.LastIndex(context, "^")
	if idx < 0 {
		return context
	}

	marker := "^"
	if w := charWidth(found); w > 1 {
		marker = strings.Repeat("^", w)
	}
	return context[:idx] + caretColor.Sprint(marker)
}
