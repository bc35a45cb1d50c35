package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized CLI error message
//
// Example output:
//
//	✗ INVALID FORMAT: unknown output format "jsno"
//
//	   Did you mean: json?
//
//	   → Get help: sqlparse parse --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var header *color.Color
	var symbol string
	switch opts.Level {
	case ErrorLevelWarning:
		header, symbol = color.New(color.FgYellow, color.Bold), "!"
	case ErrorLevelInfo:
		header, symbol = color.New(color.FgCyan, color.Bold), "i"
	default:
		header, symbol = color.New(color.FgRed, color.Bold), "✗"
	}
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	if opts.NoColor {
		header.DisableColor()
		yellow.DisableColor()
		cyan.DisableColor()
	}

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// InvalidChoiceError reports a flag or config value outside its allowed set,
// suggesting the closest allowed value
func InvalidChoiceError(name, value string, choices []string, command string, noColor bool) string {
	var suggestions []string
	if best := FindBestMatch(value, choices, nil); best != "" {
		suggestions = []string{best}
	}
	return FormatError(ErrorOptions{
		Context:     "invalid " + name,
		Problem:     fmt.Sprintf("%q is not one of %s", value, strings.Join(choices, ", ")),
		Suggestions: suggestions,
		HelpCommands: []string{
			fmt.Sprintf("Get help: sqlparse %s --help", command),
		},
		NoColor: noColor,
	})
}

// InputError reports a failure to read the SQL input
func InputError(err error, noColor bool) string {
	return FormatError(ErrorOptions{
		Context: "input error",
		Problem: err.Error(),
		HelpCommands: []string{
			"Pass the query as an argument, with --file, or on stdin",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelWarning,
		Problem: message,
		NoColor: noColor,
	})
}
