package parser

import (
	"strings"
	"testing"
)

func TestDump_Select(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := `Statement{Query: Select(SelectStmt{Projection: [Star], From: TableRef{Name: "t", Alias: ""}, Where: nil})}`
	if got := Dump(stmt); got != expected {
		t.Errorf("Expected\n%s\ngot\n%s", expected, got)
	}
}

func TestDump_Expression(t *testing.T) {
	stmt, err := Parse("SELECT a, 1.5, 'x' WHERE (b) = 2 OR c AND d")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := `Statement{Query: Select(SelectStmt{Projection: [Column("a"), Float(1.5), String("x")], From: nil, ` +
		`Where: Binary{Op: Or, Left: Binary{Op: Equal, Left: Paren(Column("b")), Right: Number(2)}, ` +
		`Right: Binary{Op: And, Left: Column("c"), Right: Column("d")}}})}`
	if got := Dump(stmt); got != expected {
		t.Errorf("Expected\n%s\ngot\n%s", expected, got)
	}
}

func TestParseToString(t *testing.T) {
	out, err := ParseToString("WITH RECURSIVE t(n) AS (SELECT 1 UNION ALL SELECT n FROM t) SELECT * FROM t")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, want := range []string{
		"With{With: WithClause{Recursive: true",
		`CTEs: [CTE{Name: "t", Columns: ["n"]`,
		"Union{Left: SelectStmt{",
		"All: true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\ngot: %s", want, out)
		}
	}

	if _, err := ParseToString("SELECT * FORM t"); err == nil {
		t.Error("Expected error for invalid query")
	}
}

func TestParseToString_Precedence(t *testing.T) {
	out, err := ParseToString("SELECT * FROM t WHERE a = 1 AND b = 2 OR c = 3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	orIdx := strings.Index(out, "Op: Or")
	andIdx := strings.Index(out, "Op: And")
	if orIdx < 0 || andIdx < 0 || orIdx > andIdx {
		t.Errorf("Expected OR at the root above AND, got %s", out)
	}
}
