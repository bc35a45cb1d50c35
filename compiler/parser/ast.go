package parser

import (
	"strings"
)

// Statement is the root node of the AST
type Statement struct {
	Query Query
}

// String renders the statement as SQL
func (s *Statement) String() string {
	return s.Query.String()
}

// Query is the interface for the three query forms
type Query interface {
	queryNode()
	String() string
}

// SelectQuery is a plain SELECT
type SelectQuery struct {
	Select *SelectStmt
}

func (q *SelectQuery) queryNode()     {}
func (q *SelectQuery) String() string { return q.Select.String() }

// WithQuery is a WITH clause followed by the query that uses its CTEs
type WithQuery struct {
	With  *WithClause
	Query Query
}

func (q *WithQuery) queryNode() {}

func (q *WithQuery) String() string {
	return q.With.String() + " " + q.Query.String()
}

// UnionQuery combines a SELECT with the query that follows UNION. Chains nest
// to the right: a UNION b UNION c is Union(a, Union(b, c)).
type UnionQuery struct {
	Left  *SelectStmt
	All   bool
	Right Query
}

func (q *UnionQuery) queryNode() {}

func (q *UnionQuery) String() string {
	op := " UNION "
	if q.All {
		op = " UNION ALL "
	}
	return q.Left.String() + op + q.Right.String()
}

// SelectStmt represents SELECT projection [FROM table] [WHERE condition]
type SelectStmt struct {
	Projection []Expr
	From       *TableRef // nil when there is no FROM clause
	Where      Expr      // nil when there is no WHERE clause
}

func (s *SelectStmt) String() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i, e := range s.Projection {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	if s.From != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(s.From.String())
	}
	if s.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(s.Where.String())
	}
	return sb.String()
}

// TableRef names a table with an optional alias ("" when absent)
type TableRef struct {
	Name  string
	Alias string
}

func (t *TableRef) String() string {
	if t.Alias == "" {
		return t.Name
	}
	return t.Name + " AS " + t.Alias
}

// WithClause holds one or more CTEs. Recursive applies to the whole clause.
type WithClause struct {
	Recursive bool
	CTEs      []*CTE
}

func (w *WithClause) String() string {
	var sb strings.Builder
	sb.WriteString("WITH ")
	if w.Recursive {
		sb.WriteString("RECURSIVE ")
	}
	for i, cte := range w.CTEs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(cte.String())
	}
	return sb.String()
}

// CTE is a named subquery: name [(columns)] AS (query). Columns is nil when
// no column list was given.
type CTE struct {
	Name    string
	Columns []string
	Query   Query
}

func (c *CTE) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	if c.Columns != nil {
		sb.WriteString("(")
		sb.WriteString(strings.Join(c.Columns, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" AS (")
	sb.WriteString(c.Query.String())
	sb.WriteString(")")
	return sb.String()
}
