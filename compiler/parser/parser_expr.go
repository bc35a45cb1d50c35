package parser

import (
	"strconv"

	"github.com/sqlparse/sqlparse/compiler/lexer"
)

// Operator binding powers (higher binds tighter). All operators are
// left-associative.
const (
	PREC_NONE       = 0
	PREC_OR         = 10 // OR
	PREC_AND        = 20 // AND
	PREC_EQUALITY   = 30 // = !=
	PREC_COMPARISON = 40 // < > <= >=
	PREC_TERM       = 50 // + -
	PREC_FACTOR     = 60 // * /
)

type binaryOperator struct {
	op   BinaryOp
	prec int
}

// binaryOperators maps operator tokens to their AST operator and binding power
var binaryOperators = map[lexer.TokenType]binaryOperator{
	lexer.TOKEN_OR:            {OpOr, PREC_OR},
	lexer.TOKEN_AND:           {OpAnd, PREC_AND},
	lexer.TOKEN_EQUAL:         {OpEqual, PREC_EQUALITY},
	lexer.TOKEN_NOT_EQUAL:     {OpNotEqual, PREC_EQUALITY},
	lexer.TOKEN_LESS:          {OpLess, PREC_COMPARISON},
	lexer.TOKEN_GREATER:       {OpGreater, PREC_COMPARISON},
	lexer.TOKEN_LESS_EQUAL:    {OpLessEqual, PREC_COMPARISON},
	lexer.TOKEN_GREATER_EQUAL: {OpGreaterEqual, PREC_COMPARISON},
	lexer.TOKEN_PLUS:          {OpPlus, PREC_TERM},
	lexer.TOKEN_MINUS:         {OpMinus, PREC_TERM},
	lexer.TOKEN_STAR:          {OpMultiply, PREC_FACTOR},
	lexer.TOKEN_SLASH:         {OpDivide, PREC_FACTOR},
}

// Precedence returns the binding power of a binary operator token, or
// PREC_NONE if the token is not a binary operator.
func Precedence(tokenType lexer.TokenType) int {
	if info, ok := binaryOperators[tokenType]; ok {
		return info.prec
	}
	return PREC_NONE
}

// parseExpression parses an expression with the minimum precedence
func (p *Parser) parseExpression() (Expr, error) {
	return p.parseExpressionWithPrecedence(PREC_NONE)
}

// parseExpressionWithPrecedence implements precedence climbing: it parses a
// primary term, then folds in operators binding at least as tightly as
// minPrec. The right operand is parsed at prec+1, which makes every operator
// left-associative.
func (p *Parser) parseExpressionWithPrecedence(minPrec int) (Expr, error) {
	left, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		info, ok := binaryOperators[p.peek().Type]
		if !ok || info.prec < minPrec {
			break
		}
		p.advance()

		right, err := p.parseExpressionWithPrecedence(info.prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: info.op, Right: right}
	}

	return left, nil
}

// parsePrimaryExpression parses literals, columns, * and parenthesized
// expressions
func (p *Parser) parsePrimaryExpression() (Expr, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.TOKEN_NUMBER:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			p.tracker.TrackLiteral(tok.Start, "integer within 64-bit range", tok.Lexeme)
			return nil, errNoMatch
		}
		p.advance()
		return NewNumberLiteral(n), nil

	case lexer.TOKEN_FLOAT:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.tracker.TrackLiteral(tok.Start, "float within 64-bit range", tok.Lexeme)
			return nil, errNoMatch
		}
		p.advance()
		return NewFloatLiteral(f), nil

	case lexer.TOKEN_STRING:
		p.advance()
		return NewStringLiteral(tok.Lexeme[1 : len(tok.Lexeme)-1]), nil

	case lexer.TOKEN_IDENTIFIER:
		p.advance()
		return &ColumnExpr{Name: tok.Lexeme}, nil

	case lexer.TOKEN_STAR:
		p.advance()
		return &StarExpr{}, nil

	case lexer.TOKEN_LPAREN:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return &ParenExpr{Inner: inner}, nil

	default:
		return nil, p.fail("expression")
	}
}
