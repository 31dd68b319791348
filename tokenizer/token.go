package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
)

// CharacterError reports a rune that cannot appear in a pattern.
type CharacterError struct {
	Char     rune
	Position Position
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("%s: %U at line %d, column %d", ErrUnexpectedCharacter, e.Char, e.Position.Line, e.Position.Column)
}

func (e *CharacterError) Unwrap() error {
	return ErrUnexpectedCharacter
}

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	WORD   // run of name characters containing at least one non-digit
	NUMBER // run of ASCII digits
	COMMA  // ,

	// Pattern metacharacters
	OPENED_BRACE   // {
	CLOSED_BRACE   // }
	OPENED_PARENS  // (
	CLOSED_PARENS  // )
	OPENED_BRACKET // [
	CLOSED_BRACKET // ]
	STAR           // *

	// Name characters that double as child generator operators
	PLUS  // +
	MINUS // -
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case WORD:
		return "WORD"
	case NUMBER:
		return "NUMBER"
	case COMMA:
		return "COMMA"
	case OPENED_BRACE:
		return "OPENED_BRACE"
	case CLOSED_BRACE:
		return "CLOSED_BRACE"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case OPENED_BRACKET:
		return "OPENED_BRACKET"
	case CLOSED_BRACKET:
		return "CLOSED_BRACKET"
	case STAR:
		return "STAR"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	default:
		return "UNKNOWN"
	}
}

// IsMeta reports whether the token is pattern syntax that may not appear in
// a generated location name.
func (t TokenType) IsMeta() bool {
	switch t {
	case OPENED_BRACE, CLOSED_BRACE, OPENED_PARENS, CLOSED_PARENS, OPENED_BRACKET, CLOSED_BRACKET, STAR:
		return true
	default:
		return false
	}
}

// Position represents a position in the pattern source.
// Offset is a byte offset; Line and Column are 1-based and count runes.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
