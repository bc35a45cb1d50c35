package lexer

import "strings"

// keywords maps upper-cased keyword spellings to their token types
var keywords = map[string]TokenType{
	"SELECT":    TOKEN_SELECT,
	"FROM":      TOKEN_FROM,
	"WHERE":     TOKEN_WHERE,
	"WITH":      TOKEN_WITH,
	"RECURSIVE": TOKEN_RECURSIVE,
	"AS":        TOKEN_AS,
	"UNION":     TOKEN_UNION,
	"ALL":       TOKEN_ALL,
	"AND":       TOKEN_AND,
	"OR":        TOKEN_OR,
	"INSERT":    TOKEN_INSERT,
	"UPDATE":    TOKEN_UPDATE,
	"DELETE":    TOKEN_DELETE,
}

// lookupKeyword checks if a word is a keyword, ignoring case
func lookupKeyword(word string) (TokenType, bool) {
	// Longest keyword is RECURSIVE
	if len(word) > 9 {
		return TOKEN_IDENTIFIER, false
	}
	tokenType, ok := keywords[strings.ToUpper(word)]
	if !ok {
		return TOKEN_IDENTIFIER, false
	}
	return tokenType, true
}

// IsKeyword reports whether word is a reserved keyword (case-insensitive)
func IsKeyword(word string) bool {
	_, ok := lookupKeyword(word)
	return ok
}
