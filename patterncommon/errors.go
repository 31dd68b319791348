package patterncommon

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidPattern is wrapped by every InvalidPatternError.
	ErrInvalidPattern = errors.New("invalid location pattern")
	// ErrLimitExceeded is wrapped by every LimitExceededError.
	ErrLimitExceeded = errors.New("location limit exceeded")
)

// Reasons reported by InvalidPatternError.Reason.
const (
	ReasonExpectedInteger       = "expected integer range count"
	ReasonNonPositiveCount      = "count must be positive"
	ReasonNestedHierarchy       = "nested hierarchies not supported"
	ReasonLetterExhausted       = "letter sequence exhausted"
	ReasonUnsupportedGenerator  = "unsupported child generator"
	ReasonMultipleRanges        = "multiple ranges in one segment not supported"
	ReasonUnexpectedCharacter   = "unexpected character"
	ReasonUnclosedBrace         = "unclosed '{'"
	ReasonUnclosedParenthesis   = "unclosed '('"
	ReasonEmptyHierarchyBase    = "hierarchy has no parent pattern"
	ReasonExpectedChildInteger  = "expected integer child count"
	ReasonUnexpectedAfterClause = "unexpected text after hierarchy"
)

// Grammar hints reported by InvalidPatternError.Expected.
const (
	ExpectBraceRange     = "prefix{N}suffix with N a positive integer"
	ExpectLetterSequence = "base*(+-[K]) with 1 <= K <= 26"
	ExpectHierarchy      = "base*(+-[K])"
	ExpectLiteral        = "location code without { } * ( ) [ ]"
)

// InvalidPatternError reports malformed pattern syntax. Offset, Line and
// Column locate the offending token in the whole input.
type InvalidPatternError struct {
	Segment  string
	Reason   string
	Expected string
	Offset   int
	Line     int
	Column   int
}

func (e *InvalidPatternError) Error() string {
	msg := fmt.Sprintf("%s in %q at line %d, column %d", e.Reason, e.Segment, e.Line, e.Column)
	if e.Expected != "" {
		msg += " (expected " + e.Expected + ")"
	}

	return ErrInvalidPattern.Error() + ": " + msg
}

func (e *InvalidPatternError) Unwrap() error {
	return ErrInvalidPattern
}

// LimitExceededError reports that a pattern would generate more locations
// than the configured cap.
type LimitExceededError struct {
	Segment   string
	Limit     int
	Requested int // -1 when the count does not fit in an int
}

func (e *LimitExceededError) Error() string {
	if e.Requested < 0 {
		return fmt.Sprintf("%s: %q requests more locations than can be counted (limit %d)", ErrLimitExceeded, e.Segment, e.Limit)
	}

	return fmt.Sprintf("%s: %q would generate %d locations (limit %d)", ErrLimitExceeded, e.Segment, e.Requested, e.Limit)
}

func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}
