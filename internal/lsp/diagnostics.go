package lsp

import (
	"errors"
	"strings"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/parser"
)

const diagnosticSource = "sqlparse"

// parseFunc parses one statement. The error, if any, is a *errors.ParseError.
type parseFunc func(source string) (*parser.Statement, error)

// diagnose parses every statement of a document and returns one diagnostic
// per failing statement, positioned in document coordinates
func diagnose(text string, parse parseFunc) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0)

	for _, seg := range parser.SplitStatements(text) {
		_, err := parse(seg.Text)

		var perr *sqlerrors.ParseError
		if !errors.As(err, &perr) {
			continue
		}

		start := seg.Offset + perr.Offset
		end := start + len(perr.Found)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: position(text, start),
				End:   position(text, end),
			},
			Severity: protocol.DiagnosticSeverityError,
			Code:     perr.Code,
			Source:   diagnosticSource,
			Message:  diagnosticMessage(perr),
		})
	}
	return diagnostics
}

func diagnosticMessage(perr *sqlerrors.ParseError) string {
	if perr.HasSuggestion() {
		return perr.Message + ". Did you mean " + perr.Suggestion + "?"
	}
	return perr.Message
}

// position converts a byte offset to an LSP position: a 0-indexed line and
// a character offset counted in UTF-16 code units
func position(text string, offset int) protocol.Position {
	if offset > len(text) {
		offset = len(text)
	}

	line := strings.Count(text[:offset], "\n")
	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1

	character := 0
	for _, r := range text[lineStart:offset] {
		if r >= 0x10000 && r <= utf8.MaxRune {
			character += 2
		} else {
			character++
		}
	}
	return protocol.Position{Line: uint32(line), Character: uint32(character)}
}

// endPosition is the position just past the last character of text
func endPosition(text string) protocol.Position {
	return position(text, len(text))
}
