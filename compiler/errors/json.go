package errors

import (
	"encoding/json"
)

// JSONOutput represents the JSON structure for a batch of parse results
type JSONOutput struct {
	Status  string           `json:"status"`
	Errors  []StatementError `json:"errors"`
	Summary Summary          `json:"summary"`
}

// Summary contains statement and error counts. ErrorCount includes errors
// dropped past the limit.
type Summary struct {
	StatementCount int  `json:"statement_count"`
	ErrorCount     int  `json:"error_count"`
	Truncated      bool `json:"truncated,omitempty"`
}

// FormatAsJSON formats a ParseError as indented JSON
func (e *ParseError) FormatAsJSON() (string, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatAsJSON formats every collected error as JSON
func (c *Collector) FormatAsJSON() (string, error) {
	status := "success"
	if c.HasErrors() {
		status = "error"
	}

	output := JSONOutput{
		Status: status,
		Errors: c.Errors(),
		Summary: Summary{
			StatementCount: c.statements,
			ErrorCount:     c.TotalErrors(),
			Truncated:      c.Truncated(),
		},
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
