package errors

import (
	"reflect"
	"strings"
	"testing"
)

// TestTracker_FurthestWins tests that a later position replaces earlier state
func TestTracker_FurthestWins(t *testing.T) {
	input := "SELECT * FORM users"
	tracker := NewTracker()

	tracker.Track(9, "FROM", "FORM")
	tracker.Track(0, "INSERT", "SELECT")

	err := tracker.Finalize(input)

	if !strings.Contains(err.Message, "FROM") || !strings.Contains(err.Message, "FORM") {
		t.Errorf("Expected message to mention FROM and FORM, got %q", err.Message)
	}
	if err.Suggestion != "FROM" {
		t.Errorf("Expected suggestion FROM, got %q", err.Suggestion)
	}
	if err.Column != 10 {
		t.Errorf("Expected column 10, got %d", err.Column)
	}
	if err.Kind != UnexpectedToken || err.Code != ErrUnexpectedToken {
		t.Errorf("Expected UnexpectedToken/%s, got %v/%s", ErrUnexpectedToken, err.Kind, err.Code)
	}
}

// TestTracker_MultipleErrors tests that only the furthest of several failures survives
func TestTracker_MultipleErrors(t *testing.T) {
	input := "SLECT * FORM users WHEER age > 18"
	tracker := NewTracker()

	tracker.Track(0, "SELECT", "SLECT")
	tracker.Track(8, "FROM", "FORM")
	tracker.Track(19, "WHERE", "WHEER")

	err := tracker.Finalize(input)

	if err.Message != "Expected WHERE, found 'WHEER'" {
		t.Errorf("Unexpected message %q", err.Message)
	}
	if err.Suggestion != "WHERE" {
		t.Errorf("Expected suggestion WHERE, got %q", err.Suggestion)
	}
	if err.Line != 1 || err.Column != 20 {
		t.Errorf("Expected 1:20, got %d:%d", err.Line, err.Column)
	}
	if err.Offset != 19 {
		t.Errorf("Expected offset 19, got %d", err.Offset)
	}
}

// TestTracker_MergeAtSamePosition tests label merging and de-duplication
func TestTracker_MergeAtSamePosition(t *testing.T) {
	input := "SELCT * FROM users"
	tracker := NewTracker()

	for _, label := range []string{"SELECT", "INSERT", "UPDATE", "SELECT", "DELETE", "WITH", "INSERT"} {
		tracker.Track(0, label, "SELCT")
	}

	want := []string{"SELECT", "INSERT", "UPDATE", "DELETE", "WITH"}
	if got := tracker.Expected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected labels %v, got %v", want, got)
	}

	err := tracker.Finalize(input)
	if err.Message != "Expected one of: SELECT, INSERT, UPDATE, DELETE, WITH, found 'SELCT'" {
		t.Errorf("Unexpected message %q", err.Message)
	}
	if err.Suggestion != "SELECT" {
		t.Errorf("Expected suggestion SELECT, got %q", err.Suggestion)
	}
}

// TestTracker_EarlierIsIgnored tests that earlier positions never change state
func TestTracker_EarlierIsIgnored(t *testing.T) {
	tracker := NewTracker()
	tracker.Track(5, "FROM", "x")
	tracker.Track(3, "WHERE", "y")
	tracker.TrackEnd(4, "expression")

	if got := tracker.Expected(); !reflect.DeepEqual(got, []string{"FROM"}) {
		t.Errorf("Expected [FROM], got %v", got)
	}
	if tracker.Furthest() != 5 {
		t.Errorf("Expected furthest 5, got %d", tracker.Furthest())
	}
}

// TestTracker_ReplaceResetsFound tests that a further failure replaces found text
func TestTracker_ReplaceResetsFound(t *testing.T) {
	input := "SELECT * FROM users WHERE"
	tracker := NewTracker()
	tracker.Track(20, "WHERE", "WHERE")
	tracker.TrackEnd(25, "expression")

	err := tracker.Finalize(input)
	if err.Message != "Expected expression, reached end of input" {
		t.Errorf("Unexpected message %q", err.Message)
	}
	if err.Kind != UnexpectedEndOfInput {
		t.Errorf("Expected UnexpectedEndOfInput, got %v", err.Kind)
	}
	if err.Suggestion != "" {
		t.Errorf("Expected no suggestion, got %q", err.Suggestion)
	}
	if err.Found != "" {
		t.Errorf("Expected no found text, got %q", err.Found)
	}
}

// TestTracker_Literal tests literal conversion failures
func TestTracker_Literal(t *testing.T) {
	input := "SELECT 99999999999999999999"
	tracker := NewTracker()
	tracker.TrackLiteral(7, "integer within 64-bit range", "99999999999999999999")

	err := tracker.Finalize(input)
	if err.Kind != LiteralConversion || err.Code != ErrInvalidLiteral {
		t.Errorf("Expected LiteralConversion/%s, got %v/%s", ErrInvalidLiteral, err.Kind, err.Code)
	}
	if !strings.Contains(err.Message, "99999999999999999999") {
		t.Errorf("Expected message to quote the literal, got %q", err.Message)
	}
}

// TestTracker_NothingRecorded tests the fallback error
func TestTracker_NothingRecorded(t *testing.T) {
	tracker := NewTracker()
	if tracker.Recorded() {
		t.Fatal("New tracker should be empty")
	}

	err := tracker.Finalize("anything")
	if err.Message != "Unexpected error" || err.Line != 1 || err.Column != 1 {
		t.Errorf("Unexpected fallback %+v", err)
	}
	if err.Kind != NoFailureRecorded {
		t.Errorf("Expected NoFailureRecorded, got %v", err.Kind)
	}
	if err.HasSuggestion() || err.HasContext() {
		t.Errorf("Fallback should carry neither suggestion nor context")
	}
}

// TestTracker_Context tests that the context shows the failing line
func TestTracker_Context(t *testing.T) {
	input := "SELECT *\nFROM users\nWHEER age > 18"
	tracker := NewTracker()
	tracker.Track(20, "WHERE", "WHEER")

	err := tracker.Finalize(input)
	if err.Line != 3 || err.Column != 1 {
		t.Errorf("Expected 3:1, got %d:%d", err.Line, err.Column)
	}

	want := "  3 | WHEER age > 18\n    | ^"
	if err.Context != want {
		t.Errorf("Expected context\n%s\ngot\n%s", want, err.Context)
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{Line: 2, Column: 7, Message: "Expected FROM, found 'FORM'"}
	if got := err.Error(); got != "2:7: Expected FROM, found 'FORM'" {
		t.Errorf("Unexpected Error() %q", got)
	}
}
