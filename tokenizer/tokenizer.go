package tokenizer

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses Go 1.24 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// PatternTokenizer is a tokenizer that returns an iterator
type PatternTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
}

// NewPatternTokenizer creates a new PatternTokenizer
func NewPatternTokenizer(input string, options ...TokenizerOptions) *PatternTokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}

	return &PatternTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. The last token is always EOF unless
// the consumer stops early.
func (t *PatternTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:  t.input,
			line:   1,
			column: 1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				if !yield(Token{}, err) {
					return
				}

				continue
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice. The first error is returned together
// with the tokens read so far.
func (t *PatternTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 16)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input   string
	offset  int // byte offset of current
	next    int // byte offset after current
	line    int
	column  int
	current rune
	started bool
}

func (t *tokenizer) nextToken() (Token, error) {
	if t.eof() {
		return t.newToken(EOF, ""), nil
	}

	switch t.current {
	case ',':
		return t.single(COMMA), nil
	case '{':
		return t.single(OPENED_BRACE), nil
	case '}':
		return t.single(CLOSED_BRACE), nil
	case '(':
		return t.single(OPENED_PARENS), nil
	case ')':
		return t.single(CLOSED_PARENS), nil
	case '[':
		return t.single(OPENED_BRACKET), nil
	case ']':
		return t.single(CLOSED_BRACKET), nil
	case '*':
		return t.single(STAR), nil
	case '+':
		return t.single(PLUS), nil
	case '-':
		return t.single(MINUS), nil
	}

	if unicode.IsSpace(t.current) {
		return t.readWhitespace(), nil
	}

	if t.current == utf8.RuneError || unicode.IsControl(t.current) {
		pos := t.position()
		r := t.current
		t.readChar()

		return Token{}, &CharacterError{Char: r, Position: pos}
	}

	return t.readWord(), nil
}

// readChar advances to the next rune
func (t *tokenizer) readChar() {
	if t.started {
		if t.current == '\n' {
			t.line++
			t.column = 1
		} else {
			t.column++
		}
	}

	t.started = true
	t.offset = t.next

	if t.next >= len(t.input) {
		t.current = 0
		return
	}

	r, width := utf8.DecodeRuneInString(t.input[t.next:])
	t.current = r
	t.next += width
}

func (t *tokenizer) eof() bool {
	return t.offset >= len(t.input)
}

func (t *tokenizer) position() Position {
	return Position{Line: t.line, Column: t.column, Offset: t.offset}
}

func (t *tokenizer) newToken(tokenType TokenType, value string) Token {
	return Token{Type: tokenType, Value: value, Position: t.position()}
}

func (t *tokenizer) single(tokenType TokenType) Token {
	token := t.newToken(tokenType, string(t.current))
	t.readChar()

	return token
}

func (t *tokenizer) readWhitespace() Token {
	start := t.position()

	for !t.eof() && unicode.IsSpace(t.current) {
		t.readChar()
	}

	return Token{Type: WHITESPACE, Value: t.input[start.Offset:t.offset], Position: start}
}

// readWord reads a run of name characters. Runs made of ASCII digits only
// become NUMBER tokens.
func (t *tokenizer) readWord() Token {
	start := t.position()
	digits := true

	for !t.eof() && isNameChar(t.current) {
		if t.current < '0' || t.current > '9' {
			digits = false
		}

		t.readChar()
	}

	tokenType := WORD
	if digits {
		tokenType = NUMBER
	}

	return Token{Type: tokenType, Value: t.input[start.Offset:t.offset], Position: start}
}

func isNameChar(r rune) bool {
	switch r {
	case ',', '{', '}', '(', ')', '[', ']', '*', '+', '-':
		return false
	}

	return r != utf8.RuneError && !unicode.IsSpace(r) && !unicode.IsControl(r)
}
