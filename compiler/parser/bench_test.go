package parser

import (
	"testing"
)

const benchQuery = "WITH RECURSIVE t(n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM t WHERE n < 100) " +
	"SELECT n, n * 2 + 1, 'label' FROM t AS x WHERE n >= 10 AND n <> 50 OR n = 99"

// BenchmarkParse benchmarks a successful parse of a recursive CTE query
func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse(benchQuery); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseError benchmarks a failing parse including diagnostics
func BenchmarkParseError(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Parse("SELCT name FORM users WHEER age > 18"); err == nil {
			b.Fatal("expected error")
		}
	}
}
