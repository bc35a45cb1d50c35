package parser

import (
	"strings"

	"github.com/sqlparse/sqlparse/compiler/lexer"
)

// Heuristics that recognize an identifier as a misspelt keyword. They only
// look at identifiers, so a correctly spelt keyword never matches.

// isSelectTypo matches SEL-prefixed words such as SELCT or SELET
func isSelectTypo(tok lexer.Token) bool {
	return tok.Type == lexer.TOKEN_IDENTIFIER &&
		len(tok.Lexeme) > 3 &&
		strings.HasPrefix(strings.ToUpper(tok.Lexeme), "SEL")
}

// isFromTypo matches any identifier starting with F after a projection
func isFromTypo(tok lexer.Token) bool {
	return tok.Type == lexer.TOKEN_IDENTIFIER &&
		strings.HasPrefix(strings.ToUpper(tok.Lexeme), "F")
}

// isWhereTypo matches identifiers starting with W or containing HER
func isWhereTypo(tok lexer.Token) bool {
	if tok.Type != lexer.TOKEN_IDENTIFIER {
		return false
	}
	upper := strings.ToUpper(tok.Lexeme)
	return strings.HasPrefix(upper, "W") || strings.Contains(upper, "HER")
}

// isWhereAliasTypo matches the WHERE misspellings that would otherwise be
// taken as a table alias
func isWhereAliasTypo(tok lexer.Token) bool {
	if tok.Type != lexer.TOKEN_IDENTIFIER {
		return false
	}
	upper := strings.ToUpper(tok.Lexeme)
	for _, prefix := range []string{"WHEER", "WHER", "WHRE"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}
