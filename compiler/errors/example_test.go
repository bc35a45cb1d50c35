package errors_test

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/sqlparse/sqlparse/compiler/errors"
)

// ExampleTracker demonstrates furthest-failure reporting
func ExampleTracker() {
	color.NoColor = true

	source := "SELECT *\nFROM users\nWHEER age > 18"

	tracker := errors.NewTracker()
	tracker.Track(0, "INSERT", "SELECT")
	tracker.Track(20, "WHERE", "WHEER")

	fmt.Print(tracker.Finalize(source).FormatForTerminal())
	// Output:
	// Parse error at line 3:1 [E100]
	//   Expected WHERE, found 'WHEER'
	//   Did you mean: WHERE
	//
	//   3 | WHEER age > 18
	//     | ^^^^^
}
