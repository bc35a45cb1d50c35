package errors

import (
	"encoding/json"
	"testing"
)

func failure(source string, pos int, expected, found string) *ParseError {
	tracker := NewTracker()
	tracker.Track(pos, expected, found)
	return tracker.Finalize(source)
}

func TestCollector_Record(t *testing.T) {
	c := NewCollector(0)

	c.Record(1, nil)
	c.Record(2, failure("SELECT * FORM t", 9, "FROM", "FORM"))
	c.Record(3, nil)

	if c.StatementCount() != 3 {
		t.Errorf("Expected 3 statements, got %d", c.StatementCount())
	}
	if !c.HasErrors() || c.ErrorCount() != 1 {
		t.Fatalf("Expected 1 error, got %d", c.ErrorCount())
	}
	if c.Errors()[0].Statement != 2 {
		t.Errorf("Expected error on statement 2, got %d", c.Errors()[0].Statement)
	}
	if c.TotalErrors() != 1 {
		t.Errorf("Expected 1 total error, got %d", c.TotalErrors())
	}
}

func TestCollector_Limit(t *testing.T) {
	c := NewCollector(2)

	for i := 1; i <= 4; i++ {
		c.Record(i, failure("x", 0, "SELECT", "x"))
	}

	if c.ErrorCount() != 2 {
		t.Errorf("Expected 2 kept errors, got %d", c.ErrorCount())
	}
	if !c.Truncated() {
		t.Error("Expected collector to be truncated")
	}
	if c.TotalErrors() != 4 {
		t.Errorf("Expected 4 total errors, got %d", c.TotalErrors())
	}
}

func TestCollector_FormatAsJSON(t *testing.T) {
	c := NewCollector(10)
	c.Record(1, nil)
	c.Record(2, failure("SELECT * FORM t", 9, "FROM", "FORM"))

	output, err := c.FormatAsJSON()
	if err != nil {
		t.Fatalf("FormatAsJSON failed: %v", err)
	}

	var decoded struct {
		Status string `json:"status"`
		Errors []struct {
			Statement int    `json:"statement"`
			Code      string `json:"code"`
			Message   string `json:"message"`
		} `json:"errors"`
		Summary Summary `json:"summary"`
	}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, output)
	}

	if decoded.Status != "error" {
		t.Errorf("Expected status error, got %s", decoded.Status)
	}
	if len(decoded.Errors) != 1 || decoded.Errors[0].Statement != 2 || decoded.Errors[0].Code != ErrUnexpectedToken {
		t.Errorf("Unexpected errors %+v", decoded.Errors)
	}
	if decoded.Summary.StatementCount != 2 || decoded.Summary.ErrorCount != 1 {
		t.Errorf("Unexpected summary %+v", decoded.Summary)
	}
}

func TestCollector_FormatAsJSON_Truncated(t *testing.T) {
	c := NewCollector(1)
	for i := 1; i <= 3; i++ {
		c.Record(i, failure("x", 0, "SELECT", "x"))
	}

	output, err := c.FormatAsJSON()
	if err != nil {
		t.Fatalf("FormatAsJSON failed: %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, output)
	}

	if len(decoded.Errors) != 1 {
		t.Errorf("Expected 1 listed error, got %d", len(decoded.Errors))
	}
	want := Summary{StatementCount: 3, ErrorCount: 3, Truncated: true}
	if decoded.Summary != want {
		t.Errorf("Expected summary %+v, got %+v", want, decoded.Summary)
	}
}

func TestCollector_Empty(t *testing.T) {
	c := NewCollector(5)
	c.Record(1, nil)

	if c.HasErrors() {
		t.Error("Expected no errors")
	}
	if c.TotalErrors() != 0 || c.Truncated() {
		t.Errorf("Expected no errors, got %d (truncated %v)", c.TotalErrors(), c.Truncated())
	}
}
