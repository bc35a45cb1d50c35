package errors

import (
	"fmt"
)

// ErrorKind classifies why a parse failed
type ErrorKind int

const (
	// UnexpectedToken means a token was present but not acceptable
	UnexpectedToken ErrorKind = iota
	// UnexpectedEndOfInput means the input ended where more was expected
	UnexpectedEndOfInput
	// LiteralConversion means a literal token's text could not be converted to a value
	LiteralConversion
	// NoFailureRecorded means parsing failed without any tracked failure
	NoFailureRecorded
)

// String returns the string representation of the kind
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected_token"
	case UnexpectedEndOfInput:
		return "unexpected_end_of_input"
	case LiteralConversion:
		return "literal_conversion"
	case NoFailureRecorded:
		return "no_failure_recorded"
	default:
		return "unknown"
	}
}

// Code returns the stable error code for the kind
func (k ErrorKind) Code() string {
	switch k {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case UnexpectedEndOfInput:
		return ErrUnexpectedEOF
	case LiteralConversion:
		return ErrInvalidLiteral
	default:
		return ErrUnknown
	}
}

// MarshalJSON implements json.Marshaler for ErrorKind
func (k ErrorKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for ErrorKind
func (k *ErrorKind) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	switch str {
	case "unexpected_token":
		*k = UnexpectedToken
	case "unexpected_end_of_input":
		*k = UnexpectedEndOfInput
	case "literal_conversion":
		*k = LiteralConversion
	default:
		*k = NoFailureRecorded
	}
	return nil
}

// ParseError is the single diagnostic produced by a failed parse. It describes
// the furthest position the parser reached, what it would have accepted there
// and what it found instead. Suggestion and Context are empty when absent.
type ParseError struct {
	Kind       ErrorKind `json:"kind"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Line       int       `json:"line"`
	Column     int       `json:"column"`
	Offset     int       `json:"offset"`
	Expected   []string  `json:"expected,omitempty"`
	Found      string    `json:"found,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	Context    string    `json:"context,omitempty"`
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// HasSuggestion reports whether a keyword suggestion is attached
func (e *ParseError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// HasContext reports whether a source excerpt is attached
func (e *ParseError) HasContext() bool {
	return e.Context != ""
}
