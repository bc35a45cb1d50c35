package errors

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Tracker records the furthest position any parse attempt reached before
// failing, together with every label that was expected there. A single
// Tracker is owned by one parse invocation and survives backtracking.
type Tracker struct {
	recorded bool
	furthest int
	expected []string
	found    string
	hasFound bool
	kind     ErrorKind
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Track records that expected was wanted at byte offset pos where the text
// found was present instead.
func (t *Tracker) Track(pos int, expected, found string) {
	t.record(pos, expected, found, true, UnexpectedToken)
}

// TrackEnd records that expected was wanted at pos but the input had ended.
func (t *Tracker) TrackEnd(pos int, expected string) {
	t.record(pos, expected, "", false, UnexpectedEndOfInput)
}

// TrackLiteral records a literal at pos whose text could not be converted.
func (t *Tracker) TrackLiteral(pos int, expected, found string) {
	t.record(pos, expected, found, true, LiteralConversion)
}

func (t *Tracker) record(pos int, expected, found string, hasFound bool, kind ErrorKind) {
	switch {
	case !t.recorded || pos > t.furthest:
		t.recorded = true
		t.furthest = pos
		t.expected = []string{expected}
		t.found = found
		t.hasFound = hasFound
		t.kind = kind
	case pos == t.furthest:
		if !lo.Contains(t.expected, expected) {
			t.expected = append(t.expected, expected)
		}
	}
}

// Recorded reports whether any failure has been tracked
func (t *Tracker) Recorded() bool {
	return t.recorded
}

// Furthest returns the furthest tracked byte offset
func (t *Tracker) Furthest() int {
	return t.furthest
}

// Expected returns the labels tracked at the furthest position, in the order
// they were first seen.
func (t *Tracker) Expected() []string {
	return append([]string(nil), t.expected...)
}

// Finalize turns the tracked state into a ParseError against source
func (t *Tracker) Finalize(source string) *ParseError {
	if !t.recorded {
		return &ParseError{
			Kind:    NoFailureRecorded,
			Code:    NoFailureRecorded.Code(),
			Message: "Unexpected error",
			Line:    1,
			Column:  1,
		}
	}

	expected := t.expected[0]
	if len(t.expected) > 1 {
		expected = "one of: " + strings.Join(t.expected, ", ")
	}

	var message, suggestion string
	if t.hasFound {
		message = fmt.Sprintf("Expected %s, found '%s'", expected, t.found)
		suggestion = SuggestKeyword(t.found)
	} else {
		message = fmt.Sprintf("Expected %s, reached end of input", expected)
	}

	line, column := LineColumn(source, t.furthest)

	return &ParseError{
		Kind:       t.kind,
		Code:       t.kind.Code(),
		Message:    message,
		Line:       line,
		Column:     column,
		Offset:     t.furthest,
		Expected:   t.Expected(),
		Found:      t.found,
		Suggestion: suggestion,
		Context:    SourceContext(source, t.furthest),
	}
}
