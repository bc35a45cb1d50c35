package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders an AST node as a deterministic structural string that names
// every node and field, e.g.
//
//	Statement{Query: Select(SelectStmt{Projection: [Star], From: TableRef{Name: "t", Alias: ""}, Where: nil})}
//
// It accepts *Statement, any Query, *SelectStmt, *WithClause, *CTE,
// *TableRef or any Expr.
func Dump(node interface{}) string {
	var sb strings.Builder
	dumpNode(&sb, node)
	return sb.String()
}

func dumpNode(sb *strings.Builder, node interface{}) {
	switch n := node.(type) {
	case *Statement:
		sb.WriteString("Statement{Query: ")
		dumpNode(sb, n.Query)
		sb.WriteString("}")
	case *SelectQuery:
		sb.WriteString("Select(")
		dumpNode(sb, n.Select)
		sb.WriteString(")")
	case *WithQuery:
		sb.WriteString("With{With: ")
		dumpNode(sb, n.With)
		sb.WriteString(", Query: ")
		dumpNode(sb, n.Query)
		sb.WriteString("}")
	case *UnionQuery:
		sb.WriteString("Union{Left: ")
		dumpNode(sb, n.Left)
		fmt.Fprintf(sb, ", All: %t, Right: ", n.All)
		dumpNode(sb, n.Right)
		sb.WriteString("}")
	case *SelectStmt:
		sb.WriteString("SelectStmt{Projection: [")
		for i, e := range n.Projection {
			if i > 0 {
				sb.WriteString(", ")
			}
			dumpNode(sb, e)
		}
		sb.WriteString("], From: ")
		if n.From == nil {
			sb.WriteString("nil")
		} else {
			dumpNode(sb, n.From)
		}
		sb.WriteString(", Where: ")
		if n.Where == nil {
			sb.WriteString("nil")
		} else {
			dumpNode(sb, n.Where)
		}
		sb.WriteString("}")
	case *TableRef:
		fmt.Fprintf(sb, "TableRef{Name: %s, Alias: %s}", strconv.Quote(n.Name), strconv.Quote(n.Alias))
	case *WithClause:
		fmt.Fprintf(sb, "WithClause{Recursive: %t, CTEs: [", n.Recursive)
		for i, cte := range n.CTEs {
			if i > 0 {
				sb.WriteString(", ")
			}
			dumpNode(sb, cte)
		}
		sb.WriteString("]}")
	case *CTE:
		fmt.Fprintf(sb, "CTE{Name: %s, Columns: ", strconv.Quote(n.Name))
		if n.Columns == nil {
			sb.WriteString("nil")
		} else {
			sb.WriteString("[")
			for i, col := range n.Columns {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(strconv.Quote(col))
			}
			sb.WriteString("]")
		}
		sb.WriteString(", Query: ")
		dumpNode(sb, n.Query)
		sb.WriteString("}")
	case *ColumnExpr:
		fmt.Fprintf(sb, "Column(%s)", strconv.Quote(n.Name))
	case *LiteralExpr:
		switch n.Kind {
		case LiteralNumber:
			fmt.Fprintf(sb, "Number(%d)", n.Number)
		case LiteralFloat:
			fmt.Fprintf(sb, "Float(%s)", strconv.FormatFloat(n.Float, 'g', -1, 64))
		default:
			fmt.Fprintf(sb, "String(%s)", strconv.Quote(n.Text))
		}
	case *BinaryExpr:
		fmt.Fprintf(sb, "Binary{Op: %s, Left: ", n.Op.Name())
		dumpNode(sb, n.Left)
		sb.WriteString(", Right: ")
		dumpNode(sb, n.Right)
		sb.WriteString("}")
	case *ParenExpr:
		sb.WriteString("Paren(")
		dumpNode(sb, n.Inner)
		sb.WriteString(")")
	case *StarExpr:
		sb.WriteString("Star")
	case nil:
		sb.WriteString("nil")
	default:
		fmt.Fprintf(sb, "%T", n)
	}
}
