package format

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/lexer"
	"github.com/sqlparse/sqlparse/compiler/parser"
)

// Formatter lays out parsed statements one clause per line. Comments and
// the original spacing are not kept; the output parses to the same tree as
// the input.
type Formatter struct {
	config *Config
	buf    *bytes.Buffer
	indent int
}

// New creates a new Formatter with the given configuration
func New(config *Config) *Formatter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Formatter{
		config: config,
		buf:    new(bytes.Buffer),
	}
}

// Format parses a single statement and returns it formatted, ending in a
// newline. Parse failures, including tokens left over after the statement,
// are returned as *errors.ParseError.
func (f *Formatter) Format(source string) (string, error) {
	stmt, err := parseWhole(source)
	if err != nil {
		return "", err
	}
	return f.FormatStatement(stmt), nil
}

// FormatScript formats every ';'-separated statement of a script. Each
// statement is terminated by ';' and separated from the next by a blank line.
func (f *Formatter) FormatScript(source string) (string, error) {
	var out strings.Builder

	for i, seg := range parser.SplitStatements(source) {
		stmt, err := parseWhole(seg.Text)
		if err != nil {
			return "", fmt.Errorf("statement %d (line %d): %w", i+1, seg.Line, err)
		}
		if i > 0 {
			out.WriteString("\n")
		}
		formatted := f.FormatStatement(stmt)
		out.WriteString(strings.TrimSuffix(formatted, "\n"))
		out.WriteString(";\n")
	}
	return out.String(), nil
}

// parseWhole parses source as exactly one statement. The output is built
// from the tree alone, so any token the parser leaves unread would be lost.
func parseWhole(source string) (*parser.Statement, error) {
	tokens := lexer.Tokenize(source)
	p := parser.New(tokens, source)

	stmt, perr := p.ParseStatement()
	if perr != nil {
		return nil, perr
	}

	if tok := tokens[p.Position()]; tok.Type != lexer.TOKEN_EOF {
		tracker := sqlerrors.NewTracker()
		tracker.Track(tok.Start, lexer.TOKEN_EOF.Label(), tok.Lexeme)
		return nil, tracker.Finalize(source)
	}
	return stmt, nil
}

// FormatFile formats the statements of a file
func FormatFile(path string, config *Config) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return New(config).FormatScript(string(content))
}

// FormatStatement formats an already parsed statement
func (f *Formatter) FormatStatement(stmt *parser.Statement) string {
	f.buf.Reset()
	f.indent = 0
	f.formatQuery(stmt.Query)
	return f.buf.String()
}

func (f *Formatter) formatQuery(q parser.Query) {
	switch q := q.(type) {
	case *parser.SelectQuery:
		f.formatSelect(q.Select)
	case *parser.UnionQuery:
		f.formatSelect(q.Left)
		if q.All {
			f.writeLine(f.keyword("UNION ALL"))
		} else {
			f.writeLine(f.keyword("UNION"))
		}
		f.formatQuery(q.Right)
	case *parser.WithQuery:
		f.formatWith(q.With)
		f.formatQuery(q.Query)
	}
}

func (f *Formatter) formatSelect(s *parser.SelectStmt) {
	items := make([]string, len(s.Projection))
	for i, e := range s.Projection {
		items[i] = f.expr(e)
	}
	f.writeLine(f.keyword("SELECT") + " " + strings.Join(items, ", "))

	if s.From != nil {
		from := f.keyword("FROM") + " " + s.From.Name
		if s.From.Alias != "" {
			from += " " + f.keyword("AS") + " " + s.From.Alias
		}
		f.writeLine(from)
	}
	if s.Where != nil {
		f.writeLine(f.keyword("WHERE") + " " + f.expr(s.Where))
	}
}

func (f *Formatter) formatWith(w *parser.WithClause) {
	head := f.keyword("WITH")
	if w.Recursive {
		head += " " + f.keyword("RECURSIVE")
	}
	f.writeLine(head)

	f.indent++
	for i, cte := range w.CTEs {
		name := cte.Name
		if cte.Columns != nil {
			name += "(" + strings.Join(cte.Columns, ", ") + ")"
		}
		f.writeLine(name + " " + f.keyword("AS") + " (")

		f.indent++
		f.formatQuery(cte.Query)
		f.indent--

		if i < len(w.CTEs)-1 {
			f.writeLine("),")
		} else {
			f.writeLine(")")
		}
	}
	f.indent--
}

// expr renders an expression on one line. Parentheses come only from
// ParenExpr nodes: a parsed tree already needs no others.
func (f *Formatter) expr(e parser.Expr) string {
	switch e := e.(type) {
	case *parser.BinaryExpr:
		op := e.Op.String()
		if e.Op == parser.OpAnd || e.Op == parser.OpOr {
			op = f.keyword(op)
		}
		return f.expr(e.Left) + " " + op + " " + f.expr(e.Right)
	case *parser.ParenExpr:
		return "(" + f.expr(e.Inner) + ")"
	case *parser.LiteralExpr:
		if e.Kind == parser.LiteralFloat {
			return formatFloat(e.Float)
		}
		return e.String()
	default:
		return e.String()
	}
}

// formatFloat keeps a decimal point so the literal re-reads as a float
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (f *Formatter) keyword(kw string) string {
	if f.config.KeywordCase == KeywordLower {
		return strings.ToLower(kw)
	}
	return kw
}

func (f *Formatter) writeLine(text string) {
	f.buf.WriteString(strings.Repeat(" ", f.indent*f.config.IndentSize))
	f.buf.WriteString(text)
	f.buf.WriteString("\n")
}
