package parser

import (
	"fmt"
	"strconv"
)

// Expr is the interface for all expression AST nodes
type Expr interface {
	exprNode()
	String() string
}

// ColumnExpr is a bare column reference
type ColumnExpr struct {
	Name string
}

func (e *ColumnExpr) exprNode()      {}
func (e *ColumnExpr) String() string { return e.Name }

// LiteralKind distinguishes the literal forms
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralFloat
	LiteralString
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "Number"
	case LiteralFloat:
		return "Float"
	case LiteralString:
		return "String"
	default:
		return "Unknown"
	}
}

// LiteralExpr is a number, float or string literal. Only the field matching
// Kind is meaningful. Text holds a string literal without its quotes.
type LiteralExpr struct {
	Kind   LiteralKind
	Number int64
	Float  float64
	Text   string
}

// NewNumberLiteral creates an integer literal
func NewNumberLiteral(n int64) *LiteralExpr {
	return &LiteralExpr{Kind: LiteralNumber, Number: n}
}

// NewFloatLiteral creates a float literal
func NewFloatLiteral(f float64) *LiteralExpr {
	return &LiteralExpr{Kind: LiteralFloat, Float: f}
}

// NewStringLiteral creates a string literal
func NewStringLiteral(s string) *LiteralExpr {
	return &LiteralExpr{Kind: LiteralString, Text: s}
}

func (e *LiteralExpr) exprNode() {}

func (e *LiteralExpr) String() string {
	switch e.Kind {
	case LiteralNumber:
		return strconv.FormatInt(e.Number, 10)
	case LiteralFloat:
		return strconv.FormatFloat(e.Float, 'f', -1, 64)
	default:
		return "'" + e.Text + "'"
	}
}

// BinaryOp is the closed set of binary operators
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEqual
	OpNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
)

// String returns the SQL spelling of the operator
func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
}

// Name returns the operator's identifier-style name, as used by Dump
func (op BinaryOp) Name() string {
	switch op {
	case OpAnd:
		return "And"
	case OpOr:
		return "Or"
	case OpEqual:
		return "Equal"
	case OpNotEqual:
		return "NotEqual"
	case OpLess:
		return "Less"
	case OpGreater:
		return "Greater"
	case OpLessEqual:
		return "LessEqual"
	case OpGreaterEqual:
		return "GreaterEqual"
	case OpPlus:
		return "Plus"
	case OpMinus:
		return "Minus"
	case OpMultiply:
		return "Multiply"
	case OpDivide:
		return "Divide"
	default:
		return op.String()
	}
}

// BinaryExpr represents a binary operation, rendered fully parenthesized
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (e *BinaryExpr) exprNode() {}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// ParenExpr is an explicitly parenthesized expression
type ParenExpr struct {
	Inner Expr
}

func (e *ParenExpr) exprNode()      {}
func (e *ParenExpr) String() string { return "(" + e.Inner.String() + ")" }

// StarExpr is the * wildcard
type StarExpr struct{}

func (e *StarExpr) exprNode()      {}
func (e *StarExpr) String() string { return "*" }
