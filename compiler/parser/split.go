package parser

import (
	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/lexer"
)

// Segment is one statement of a script
type Segment struct {
	Text   string // statement text, without the terminating ';'
	Offset int    // byte offset of Text within the script
	Line   int    // 1-indexed line on which Text starts
}

// SplitStatements splits a script at ';' tokens. Semicolons inside string
// literals or comments do not split. Segments without tokens are dropped.
func SplitStatements(source string) []Segment {
	var segments []Segment
	start, end := -1, -1

	flush := func() {
		if start < 0 {
			return
		}
		line, _ := sqlerrors.LineColumn(source, start)
		segments = append(segments, Segment{
			Text:   source[start:end],
			Offset: start,
			Line:   line,
		})
		start, end = -1, -1
	}

	for _, tok := range lexer.Tokenize(source) {
		switch tok.Type {
		case lexer.TOKEN_SEMICOLON, lexer.TOKEN_EOF:
			flush()
		default:
			if start < 0 {
				start = tok.Start
			}
			end = tok.End
		}
	}
	return segments
}
