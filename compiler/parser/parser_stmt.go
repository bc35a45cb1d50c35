package parser

import (
	"go.uber.org/zap"

	"github.com/sqlparse/sqlparse/compiler/lexer"
)

// statementAlternative is one way a statement may begin. applies is a cheap
// lookahead; nil means always try.
type statementAlternative struct {
	name    string
	applies func(p *Parser) bool
	parse   func(p *Parser) (Query, error)
}

// statementAlternatives are tried in order, each from the statement start
var statementAlternatives = []statementAlternative{
	{
		name:    "with",
		applies: func(p *Parser) bool { return p.check(lexer.TOKEN_WITH) },
		parse:   (*Parser).parseWithQuery,
	},
	{
		name:  "select",
		parse: (*Parser).parseSelectQuery,
	},
}

// unsupportedStatements are reported as expected alternatives when nothing
// matched, so that the diagnostic lists every statement keyword.
var unsupportedStatements = []string{"INSERT", "UPDATE", "DELETE", "WITH"}

// parseStatement tries each alternative, rewinding to the statement start
// before every attempt. The tracker keeps the furthest failure across all of
// them.
func (p *Parser) parseStatement() (*Statement, error) {
	start := p.current

	for _, alt := range statementAlternatives {
		p.current = start
		if alt.applies != nil && !alt.applies(p) {
			continue
		}

		query, err := alt.parse(p)
		if err == nil {
			return &Statement{Query: query}, nil
		}
		p.logger.Debug("statement alternative failed",
			zap.String("alternative", alt.name),
			zap.Int("furthest", p.tracker.Furthest()))
	}

	p.current = start
	for _, label := range unsupportedStatements {
		_ = p.fail(label)
	}
	return nil, errNoMatch
}

// parseQuery parses a WITH query or a SELECT with an optional UNION chain
func (p *Parser) parseQuery() (Query, error) {
	if p.check(lexer.TOKEN_WITH) {
		return p.parseWithQuery()
	}
	return p.parseSelectQuery()
}

// parseWithQuery parses WITH ... followed by the query using the CTEs
func (p *Parser) parseWithQuery() (Query, error) {
	with, err := p.parseWith()
	if err != nil {
		return nil, err
	}

	query, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	return &WithQuery{With: with, Query: query}, nil
}

// parseSelectQuery parses SELECT ... [UNION [ALL] query]
func (p *Parser) parseSelectQuery() (Query, error) {
	sel, err := p.parseSelect()
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.TOKEN_UNION) {
		return &SelectQuery{Select: sel}, nil
	}

	all := p.match(lexer.TOKEN_ALL)
	right, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	return &UnionQuery{Left: sel, All: all, Right: right}, nil
}

// parseSelect parses SELECT projection [FROM table_ref] [WHERE expr].
//
// A SEL-prefixed identifier in place of SELECT is recorded as an error but
// the rest of the statement is still parsed, so that a later, further error
// wins. Such a statement never succeeds.
func (p *Parser) parseSelect() (*SelectStmt, error) {
	tolerated := false

	switch tok := p.peek(); {
	case tok.Type == lexer.TOKEN_SELECT:
		p.advance()
	case isSelectTypo(tok):
		_ = p.fail("SELECT")
		p.advance()
		tolerated = true
	default:
		return nil, p.fail("SELECT")
	}

	projection, err := p.parseProjection()
	if err != nil {
		return nil, err
	}
	stmt := &SelectStmt{Projection: projection}

	if p.match(lexer.TOKEN_FROM) {
		if stmt.From, err = p.parseTableRef(); err != nil {
			return nil, err
		}
	} else if isFromTypo(p.peek()) {
		return nil, p.fail("FROM")
	}

	if p.match(lexer.TOKEN_WHERE) {
		if stmt.Where, err = p.parseExpression(); err != nil {
			return nil, err
		}
	} else if isWhereTypo(p.peek()) {
		return nil, p.fail("WHERE")
	}

	if tolerated {
		return nil, errNoMatch
	}
	return stmt, nil
}

// parseProjection parses either a lone * or a comma-separated expression list
func (p *Parser) parseProjection() ([]Expr, error) {
	if p.match(lexer.TOKEN_STAR) {
		return []Expr{&StarExpr{}}, nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	exprs := []Expr{first}
	for p.match(lexer.TOKEN_COMMA) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// parseTableRef parses name [[AS] alias]
func (p *Parser) parseTableRef() (*TableRef, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	ref := &TableRef{Name: name}

	if p.match(lexer.TOKEN_AS) {
		if ref.Alias, err = p.parseIdentifier(); err != nil {
			return nil, err
		}
		return ref, nil
	}

	if tok := p.peek(); tok.Type == lexer.TOKEN_IDENTIFIER {
		if isWhereAliasTypo(tok) {
			return nil, p.fail("WHERE")
		}
		ref.Alias = p.advance().Lexeme
	}
	return ref, nil
}

// parseWith parses WITH [RECURSIVE] cte (, cte)*
func (p *Parser) parseWith() (*WithClause, error) {
	if _, err := p.expect(lexer.TOKEN_WITH); err != nil {
		return nil, err
	}
	with := &WithClause{Recursive: p.match(lexer.TOKEN_RECURSIVE)}

	for {
		cte, err := p.parseCTE()
		if err != nil {
			return nil, err
		}
		with.CTEs = append(with.CTEs, cte)

		if !p.match(lexer.TOKEN_COMMA) {
			return with, nil
		}
	}
}

// parseCTE parses name [(col, ...)] AS (query)
func (p *Parser) parseCTE() (*CTE, error) {
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	cte := &CTE{Name: name}

	if p.match(lexer.TOKEN_LPAREN) {
		if cte.Columns, err = p.parseIdentifierList(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TOKEN_AS); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_LPAREN); err != nil {
		return nil, err
	}
	if cte.Query, err = p.parseQuery(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return cte, nil
}
