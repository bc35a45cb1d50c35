package parser

import (
	"reflect"
	"testing"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/lexer"
)

// parseExpr is a helper that parses a bare expression
func parseExpr(source string) (Expr, *Parser, error) {
	p := New(lexer.Tokenize(source), source)
	expr, err := p.parseExpression()
	return expr, p, err
}

func TestParseExpression_Precedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2 + 3 * 4", "(2 + (3 * 4))"},
		{"2 * 3 + 4", "((2 * 3) + 4)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b * c", "((a / b) * c)"},
		{"a OR b AND c", "(a OR (b AND c))"},
		{"a AND b OR c AND d", "((a AND b) OR (c AND d))"},
		{"a = b = c", "((a = b) = c)"},
		{"a < b = c > d", "((a < b) = (c > d))"},
		{"a + 1 <= b * 2 OR c <> d", "(((a + 1) <= (b * 2)) OR (c != d))"},
		{"age > 18 AND status = 'active' OR admin = 1",
			"(((age > 18) AND (status = 'active')) OR (admin = 1))"},
		{"(2 + 3) * 4", "(((2 + 3)) * 4)"},
		{"1.5 * x", "(1.5 * x)"},
		{"n-1", "(n - 1)"},
		{"x = -1", "(x = -1)"},
		{"x >= 10 / 2 - 1", "(x >= ((10 / 2) - 1))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, _, err := parseExpr(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := expr.String(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParseExpression_Primaries(t *testing.T) {
	tests := []struct {
		input    string
		expected Expr
	}{
		{"42", NewNumberLiteral(42)},
		{"-7", NewNumberLiteral(-7)},
		{"3.25", NewFloatLiteral(3.25)},
		{"'hello world'", NewStringLiteral("hello world")},
		{"''", NewStringLiteral("")},
		{"users", &ColumnExpr{Name: "users"}},
		{"*", &StarExpr{}},
		{"(x)", &ParenExpr{Inner: &ColumnExpr{Name: "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, _, err := parseExpr(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(expr, tt.expected) {
				t.Errorf("Expected %#v, got %#v", tt.expected, expr)
			}
		})
	}
}

func TestParseExpression_Structure(t *testing.T) {
	expr, _, err := parseExpr("a + b * c")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := &BinaryExpr{
		Left: &ColumnExpr{Name: "a"},
		Op:   OpPlus,
		Right: &BinaryExpr{
			Left:  &ColumnExpr{Name: "b"},
			Op:    OpMultiply,
			Right: &ColumnExpr{Name: "c"},
		},
	}
	if !reflect.DeepEqual(expr, expected) {
		t.Errorf("Expected %s, got %s", expected, expr)
	}
}

// TestParseExpression_StopsAtNonOperator checks that the expression ends
// before the first token that is not a binary operator
func TestParseExpression_StopsAtNonOperator(t *testing.T) {
	expr, p, err := parseExpr("a + 1 FROM t")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if expr.String() != "(a + 1)" {
		t.Errorf("Expected (a + 1), got %s", expr)
	}
	if p.Position() != 3 {
		t.Errorf("Expected cursor at token 3, got %d", p.Position())
	}
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		kind     sqlerrors.ErrorKind
		offset   int
	}{
		{"empty", "", []string{"expression"}, sqlerrors.UnexpectedEndOfInput, 0},
		{"dangling operator", "1 +", []string{"expression"}, sqlerrors.UnexpectedEndOfInput, 3},
		{"keyword", "FROM", []string{"expression"}, sqlerrors.UnexpectedToken, 0},
		{"unclosed paren", "(1 + 2", []string{"')'"}, sqlerrors.UnexpectedEndOfInput, 6},
		{"paren before keyword", "(a FROM", []string{"')'"}, sqlerrors.UnexpectedToken, 3},
		{"integer overflow", "99999999999999999999", []string{"integer within 64-bit range"}, sqlerrors.LiteralConversion, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p, err := parseExpr(tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			perr := p.Tracker().Finalize(tt.input)
			if !reflect.DeepEqual(perr.Expected, tt.expected) {
				t.Errorf("Expected labels %v, got %v", tt.expected, perr.Expected)
			}
			if perr.Kind != tt.kind {
				t.Errorf("Expected kind %v, got %v", tt.kind, perr.Kind)
			}
			if perr.Offset != tt.offset {
				t.Errorf("Expected offset %d, got %d", tt.offset, perr.Offset)
			}
		})
	}
}

func TestPrecedence(t *testing.T) {
	tests := map[lexer.TokenType]int{
		lexer.TOKEN_OR:            PREC_OR,
		lexer.TOKEN_AND:           PREC_AND,
		lexer.TOKEN_NOT_EQUAL:     PREC_EQUALITY,
		lexer.TOKEN_GREATER_EQUAL: PREC_COMPARISON,
		lexer.TOKEN_MINUS:         PREC_TERM,
		lexer.TOKEN_STAR:          PREC_FACTOR,
		lexer.TOKEN_COMMA:         PREC_NONE,
		lexer.TOKEN_FROM:          PREC_NONE,
	}

	for typ, want := range tests {
		if got := Precedence(typ); got != want {
			t.Errorf("Precedence(%v) = %d, want %d", typ, got, want)
		}
	}
}
