package parser

import (
	"testing"

	sqlerrors "github.com/sqlparse/sqlparse/compiler/errors"
)

// FuzzParse checks that parsing never panics, always returns exactly one of
// a statement or a positioned error, and is deterministic.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"SELECT * FROM users",
		"SELCT * FORM users",
		"SELECT *\nFROM users\nWHEER age > 18",
		"WITH RECURSIVE t(n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM t WHERE n < 5) SELECT * FROM t",
		"SELECT ((((1",
		"SELECT 1 UNION UNION",
		"SELECT 99999999999999999999",
		"é",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		stmt, err := Parse(input)
		if (stmt == nil) == (err == nil) {
			t.Fatalf("expected exactly one of statement or error, got %v / %v", stmt, err)
		}

		if err != nil {
			perr, ok := err.(*sqlerrors.ParseError)
			if !ok {
				t.Fatalf("unexpected error type %T", err)
			}
			if perr.Line < 1 || perr.Column < 1 {
				t.Fatalf("invalid position %d:%d", perr.Line, perr.Column)
			}
			if perr.Message == "" {
				t.Fatal("empty message")
			}
		} else {
			_ = stmt.String()
			_ = Dump(stmt)
		}

		_, err2 := Parse(input)
		if (err == nil) != (err2 == nil) || (err != nil && err.Error() != err2.Error()) {
			t.Fatalf("non-deterministic result: %v vs %v", err, err2)
		}
	})
}
