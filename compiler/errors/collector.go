package errors

// MaxErrors is the default number of errors to show for a script
const MaxErrors = 100

// StatementError is a ParseError tagged with the 1-indexed statement of a
// script it belongs to.
type StatementError struct {
	Statement int `json:"statement"`
	*ParseError
}

// Collector gathers the diagnostics for a script of several statements
type Collector struct {
	errors     []StatementError
	statements int
	maxCount   int
	dropped    int
}

// NewCollector creates a Collector that keeps at most maxCount errors. A
// non-positive maxCount means MaxErrors.
func NewCollector(maxCount int) *Collector {
	if maxCount <= 0 {
		maxCount = MaxErrors
	}
	return &Collector{
		errors:   make([]StatementError, 0),
		maxCount: maxCount,
	}
}

// Record notes the outcome of one statement. err may be nil for a statement
// that parsed. It returns false once the error limit has been reached.
func (c *Collector) Record(statement int, err *ParseError) bool {
	c.statements++
	if err == nil {
		return !c.Full()
	}
	if c.Full() {
		c.dropped++
		return false
	}
	c.errors = append(c.errors, StatementError{Statement: statement, ParseError: err})
	return !c.Full()
}

// Full reports whether the error limit has been reached
func (c *Collector) Full() bool {
	return len(c.errors) >= c.maxCount
}

// Truncated reports whether errors were dropped because of the limit
func (c *Collector) Truncated() bool {
	return c.dropped > 0
}

// HasErrors returns true if any statement failed
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// ErrorCount returns the number of collected errors
func (c *Collector) ErrorCount() int {
	return len(c.errors)
}

// TotalErrors returns the number of failed statements, dropped ones included
func (c *Collector) TotalErrors() int {
	return len(c.errors) + c.dropped
}

// StatementCount returns the number of recorded statements
func (c *Collector) StatementCount() int {
	return c.statements
}

// Errors returns the collected errors in statement order
func (c *Collector) Errors() []StatementError {
	return c.errors
}
