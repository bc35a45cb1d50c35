package parser

import (
	"errors"

	"go.uber.org/zap"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
	"github.com/sqlparse/sqlparse/compiler/lexer"
)

// errNoMatch signals that the current grammar attempt failed. The reason has
// already been recorded in the parser's tracker.
var errNoMatch = errors.New("no grammar alternative matched")

// Parser transforms a token stream into a Statement. A Parser is used for a
// single parse and is not safe for concurrent use.
type Parser struct {
	tokens  []lexer.Token
	current int
	source  string
	tracker *sqlerrors.Tracker
	logger  *zap.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for debug tracing of backtracking
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTracker makes the parser record failures into tracker instead of a
// fresh one.
func WithTracker(tracker *sqlerrors.Tracker) Option {
	return func(p *Parser) {
		if tracker != nil {
			p.tracker = tracker
		}
	}
}

// New creates a new Parser from a token stream and the source it was scanned
// from. A missing trailing EOF token is added.
func New(tokens []lexer.Token, source string, opts ...Option) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TOKEN_EOF {
		tokens = append(tokens[:len(tokens):len(tokens)], lexer.Token{
			Type:  lexer.TOKEN_EOF,
			Start: len(source),
			End:   len(source),
		})
	}

	p := &Parser{
		tokens:  tokens,
		source:  source,
		tracker: sqlerrors.NewTracker(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseStatement parses one statement. Tokens after a complete statement are
// left unread.
func (p *Parser) ParseStatement() (*Statement, *sqlerrors.ParseError) {
	stmt, err := p.parseStatement()
	if err != nil {
		perr := p.tracker.Finalize(p.source)
		p.logger.Debug("parse failed",
			zap.String("code", perr.Code),
			zap.Int("offset", perr.Offset),
			zap.Strings("expected", perr.Expected))
		return nil, perr
	}
	return stmt, nil
}

// Tracker returns the failure tracker owned by this parse
func (p *Parser) Tracker() *sqlerrors.Tracker {
	return p.tracker
}

// Position returns the index of the next unread token
func (p *Parser) Position() int {
	return p.current
}

// Parse tokenizes and parses source. A failure is returned as a
// *errors.ParseError.
func Parse(source string, opts ...Option) (*Statement, error) {
	stmt, perr := New(lexer.Tokenize(source), source, opts...).ParseStatement()
	if perr != nil {
		return nil, perr
	}
	return stmt, nil
}

// Validate reports the parse error for source, or nil if it parses
func Validate(source string) error {
	_, err := Parse(source)
	return err
}

// IsValid reports whether source parses
func IsValid(source string) bool {
	return Validate(source) == nil
}

// ParseToString parses source and returns the Dump of its AST
func ParseToString(source string) (string, error) {
	stmt, err := Parse(source)
	if err != nil {
		return "", err
	}
	return Dump(stmt), nil
}

// Helper methods for token manipulation

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.current]
}

// advance consumes and returns the current token. EOF is never consumed.
func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if tok.Type != lexer.TOKEN_EOF {
		p.current++
	}
	return tok
}

// check checks if the current token is of the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	return p.peek().Type == tokenType
}

// match consumes the current token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given type or records the failure
func (p *Parser) expect(tokenType lexer.TokenType) (lexer.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.fail(tokenType.Label())
}

// fail records that label was expected at the current token
func (p *Parser) fail(label string) error {
	tok := p.peek()
	if tok.Type == lexer.TOKEN_EOF {
		p.tracker.TrackEnd(tok.Start, label)
	} else {
		p.tracker.Track(tok.Start, label, tok.Lexeme)
	}
	return errNoMatch
}

// parseIdentifier consumes an identifier and returns its text
func (p *Parser) parseIdentifier() (string, error) {
	tok, err := p.expect(lexer.TOKEN_IDENTIFIER)
	if err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

// parseIdentifierList parses ident (, ident)*
func (p *Parser) parseIdentifierList() ([]string, error) {
	first, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	names := []string{first}
	for p.match(lexer.TOKEN_COMMA) {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
