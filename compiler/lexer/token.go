package lexer

import "fmt"

// TokenType represents the kind of a SQL token
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota

	// Keywords - Queries
	TOKEN_SELECT
	TOKEN_FROM
	TOKEN_WHERE
	TOKEN_WITH
	TOKEN_RECURSIVE
	TOKEN_AS
	TOKEN_UNION
	TOKEN_ALL

	// Keywords - Logical operators
	TOKEN_AND
	TOKEN_OR

	// Keywords - Data modification (recognized, never parsed)
	TOKEN_INSERT
	TOKEN_UPDATE
	TOKEN_DELETE

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_STRING
	TOKEN_NUMBER
	TOKEN_FLOAT

	// Operators
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_EQUAL
	TOKEN_NOT_EQUAL
	TOKEN_LESS
	TOKEN_GREATER
	TOKEN_LESS_EQUAL
	TOKEN_GREATER_EQUAL

	// Delimiters
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_COMMA
	TOKEN_SEMICOLON
)

// String returns the canonical kind name of the token type
func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_SELECT:
		return "SELECT"
	case TOKEN_FROM:
		return "FROM"
	case TOKEN_WHERE:
		return "WHERE"
	case TOKEN_WITH:
		return "WITH"
	case TOKEN_RECURSIVE:
		return "RECURSIVE"
	case TOKEN_AS:
		return "AS"
	case TOKEN_UNION:
		return "UNION"
	case TOKEN_ALL:
		return "ALL"
	case TOKEN_AND:
		return "AND"
	case TOKEN_OR:
		return "OR"
	case TOKEN_INSERT:
		return "INSERT"
	case TOKEN_UPDATE:
		return "UPDATE"
	case TOKEN_DELETE:
		return "DELETE"
	case TOKEN_IDENTIFIER:
		return "IDENTIFIER"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_NUMBER:
		return "NUMBER"
	case TOKEN_FLOAT:
		return "FLOAT"
	case TOKEN_PLUS:
		return "PLUS"
	case TOKEN_MINUS:
		return "MINUS"
	case TOKEN_STAR:
		return "STAR"
	case TOKEN_SLASH:
		return "SLASH"
	case TOKEN_EQUAL:
		return "EQUAL"
	case TOKEN_NOT_EQUAL:
		return "NOTEQUAL"
	case TOKEN_LESS:
		return "LESS"
	case TOKEN_GREATER:
		return "GREATER"
	case TOKEN_LESS_EQUAL:
		return "LESSEQUAL"
	case TOKEN_GREATER_EQUAL:
		return "GREATEREQUAL"
	case TOKEN_LPAREN:
		return "LEFTPAREN"
	case TOKEN_RPAREN:
		return "RIGHTPAREN"
	case TOKEN_COMMA:
		return "COMMA"
	case TOKEN_SEMICOLON:
		return "SEMICOLON"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", t)
	}
}

// Label returns the name used for this token type in "Expected ..." diagnostics.
// Keywords read as themselves, punctuation is quoted.
func (t TokenType) Label() string {
	switch t {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_IDENTIFIER:
		return "identifier"
	case TOKEN_STRING:
		return "string literal"
	case TOKEN_NUMBER:
		return "number"
	case TOKEN_FLOAT:
		return "float"
	case TOKEN_PLUS:
		return "'+'"
	case TOKEN_MINUS:
		return "'-'"
	case TOKEN_STAR:
		return "'*'"
	case TOKEN_SLASH:
		return "'/'"
	case TOKEN_EQUAL:
		return "'='"
	case TOKEN_NOT_EQUAL:
		return "'!='"
	case TOKEN_LESS:
		return "'<'"
	case TOKEN_GREATER:
		return "'>'"
	case TOKEN_LESS_EQUAL:
		return "'<='"
	case TOKEN_GREATER_EQUAL:
		return "'>='"
	case TOKEN_LPAREN:
		return "'('"
	case TOKEN_RPAREN:
		return "')'"
	case TOKEN_COMMA:
		return "','"
	case TOKEN_SEMICOLON:
		return "';'"
	default:
		return t.String()
	}
}

// IsKeyword reports whether the token type is a reserved word
func (t TokenType) IsKeyword() bool {
	return t >= TOKEN_SELECT && t <= TOKEN_DELETE
}

// Token is a single lexical unit. Lexeme is a slice of the original source and
// [Start, End) is its half-open byte range within that source.
type Token struct {
	Type   TokenType
	Lexeme string
	Start  int
	End    int
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Type == TOKEN_EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Lexeme)
}

// Len returns the width of the token in bytes
func (t Token) Len() int {
	return t.End - t.Start
}
