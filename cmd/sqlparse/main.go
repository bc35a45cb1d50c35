package main

import (
	"os"

	"github.com/sqlparse/sqlparse/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
