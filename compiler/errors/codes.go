package errors

// Error codes for parse diagnostics
// E100-E199: Parser errors
const (
	ErrUnexpectedToken = "E100"
	ErrUnexpectedEOF   = "E101"
	ErrInvalidLiteral  = "E102"
	ErrUnknown         = "E199"
)

// GetErrorCategory returns a short category name for an error code
func GetErrorCategory(code string) string {
	switch code {
	case ErrUnexpectedToken:
		return "syntax"
	case ErrUnexpectedEOF:
		return "incomplete"
	case ErrInvalidLiteral:
		return "literal"
	default:
		return "internal"
	}
}
