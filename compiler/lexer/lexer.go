package lexer

import (
	"unicode/utf8"
)

// Lexer tokenizes SQL source text. It works on bytes so that token spans are
// byte offsets into the original string.
type Lexer struct {
	source  string  // Source text
	start   int     // Start offset of current token
	current int     // Current offset in source
	tokens  []Token // Collected tokens
}

// New creates a new Lexer for the given source text
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		tokens: make([]Token, 0, len(source)/4+1),
	}
}

// Tokenize scans source and returns its tokens, terminated by EOF
func Tokenize(source string) []Token {
	return New(source).ScanTokens()
}

// ScanTokens scans all tokens from the source. Characters that cannot start a
// token are skipped; the returned slice always ends with a TOKEN_EOF whose span
// is the empty range at len(source).
func (l *Lexer) ScanTokens() []Token {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Start:  len(l.source),
		End:    len(l.source),
	})

	return l.tokens
}

// scanToken scans a single token
func (l *Lexer) scanToken() {
	c := l.advance()

	switch c {
	// Single-character tokens
	case '(':
		l.addToken(TOKEN_LPAREN)
	case ')':
		l.addToken(TOKEN_RPAREN)
	case ',':
		l.addToken(TOKEN_COMMA)
	case ';':
		l.addToken(TOKEN_SEMICOLON)
	case '+':
		l.addToken(TOKEN_PLUS)
	case '*':
		l.addToken(TOKEN_STAR)
	case '/':
		l.addToken(TOKEN_SLASH)
	case '=':
		l.addToken(TOKEN_EQUAL)

	// Potentially multi-character tokens
	case '!':
		if l.match('=') {
			l.addToken(TOKEN_NOT_EQUAL)
		}
		// A lone '!' is not part of the language and is dropped
	case '<':
		if l.match('=') {
			l.addToken(TOKEN_LESS_EQUAL)
		} else if l.match('>') {
			l.addToken(TOKEN_NOT_EQUAL)
		} else {
			l.addToken(TOKEN_LESS)
		}
	case '>':
		if l.match('=') {
			l.addToken(TOKEN_GREATER_EQUAL)
		} else {
			l.addToken(TOKEN_GREATER)
		}
	case '-':
		if l.match('-') {
			l.skipComment()
		} else if isDigit(l.peek()) && !l.followsOperand() {
			l.scanNumber()
		} else {
			l.addToken(TOKEN_MINUS)
		}

	// String literals
	case '\'':
		l.scanString()

	// Whitespace
	case ' ', '\t', '\r', '\n', '\f':

	default:
		if isDigit(c) {
			l.scanNumber()
		} else if isAlpha(c) {
			l.scanIdentifier()
		} else if c >= utf8.RuneSelf {
			// Skip the remainder of a multi-byte rune so spans stay on rune boundaries
			_, size := utf8.DecodeRuneInString(l.source[l.start:])
			l.current = l.start + size
		}
	}
}

// skipComment skips a "--" comment up to (not including) the newline
func (l *Lexer) skipComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// scanString scans a single-quoted string literal. A backslash escapes the
// following byte. An unterminated literal yields no token; scanning resumes
// right after the opening quote.
func (l *Lexer) scanString() {
	for !l.isAtEnd() && l.peek() != '\'' {
		if l.peek() == '\\' {
			l.advance()
			if l.isAtEnd() {
				break
			}
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.current = l.start + 1
		return
	}

	// Consume closing quote
	l.advance()
	l.addToken(TOKEN_STRING)
}

// scanNumber scans an integer or float literal. The lexeme may start with '-'.
func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance() // consume '.'
		for isDigit(l.peek()) {
			l.advance()
		}
		l.addToken(TOKEN_FLOAT)
		return
	}

	l.addToken(TOKEN_NUMBER)
}

// scanIdentifier scans an identifier or keyword
func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	tokenType, _ := lookupKeyword(l.source[l.start:l.current])
	l.addToken(tokenType)
}

// followsOperand reports whether the previous token ends an operand, in which
// case a '-' is subtraction rather than the sign of a number.
func (l *Lexer) followsOperand() bool {
	if len(l.tokens) == 0 {
		return false
	}
	switch l.tokens[len(l.tokens)-1].Type {
	case TOKEN_IDENTIFIER, TOKEN_NUMBER, TOKEN_FLOAT, TOKEN_STRING, TOKEN_RPAREN:
		return true
	default:
		return false
	}
}

// Helper methods

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

// match consumes the current byte if it equals expected
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

func (l *Lexer) addToken(tokenType TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:   tokenType,
		Lexeme: l.source[l.start:l.current],
		Start:  l.start,
		End:    l.current,
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
