// Package parser turns location pattern tokens into Segment values.
//
// Grammar, one segment per comma:
//
//	segment   = flat | flat "*(" generator ")"
//	flat      = text | text "{" NUMBER "}" text
//	generator = "+" "-" "[" NUMBER "]"
package parser

import (
	"errors"
	"strconv"
	"strings"

	cmn "github.com/shibukawa/locpattern/patterncommon"
	tok "github.com/shibukawa/locpattern/tokenizer"
)

// Parse tokenizes input and parses every segment. Empty segments are dropped,
// so an empty or all-blank input yields an empty slice.
func Parse(input string) ([]Segment, error) {
	tokens, err := tok.NewPatternTokenizer(input).AllTokens()
	if err != nil {
		var charErr *tok.CharacterError
		if errors.As(err, &charErr) {
			return nil, &cmn.InvalidPatternError{
				Segment:  segmentAround(input, charErr.Position.Offset),
				Reason:   cmn.ReasonUnexpectedCharacter,
				Expected: cmn.ExpectLiteral,
				Offset:   charErr.Position.Offset,
				Line:     charErr.Position.Line,
				Column:   charErr.Position.Column,
			}
		}

		return nil, err
	}

	return ParseTokens(input, tokens)
}

// ParseTokens parses tokens produced from input. input is needed to report
// the original segment text.
func ParseTokens(input string, tokens []tok.Token) ([]Segment, error) {
	p := &parser{src: input}

	segments := make([]Segment, 0, 4)
	for _, group := range splitSegments(tokens) {
		seg, err := p.parseSegment(group)
		if err != nil {
			return nil, err
		}

		segments = append(segments, seg)
	}

	return segments, nil
}

type parser struct {
	src string
}

// splitSegments splits on COMMA, trims surrounding whitespace and drops
// empty groups.
func splitSegments(tokens []tok.Token) [][]tok.Token {
	var groups [][]tok.Token

	start := 0
	for i, t := range tokens {
		if t.Type != tok.COMMA && t.Type != tok.EOF {
			continue
		}

		if group := trimSpace(tokens[start:i]); len(group) > 0 {
			groups = append(groups, group)
		}

		start = i + 1

		if t.Type == tok.EOF {
			break
		}
	}

	return groups
}

func trimSpace(tokens []tok.Token) []tok.Token {
	for len(tokens) > 0 && tokens[0].Type == tok.WHITESPACE {
		tokens = tokens[1:]
	}

	for len(tokens) > 0 && tokens[len(tokens)-1].Type == tok.WHITESPACE {
		tokens = tokens[:len(tokens)-1]
	}

	return tokens
}

func (p *parser) parseSegment(tokens []tok.Token) (Segment, error) {
	source := p.source(tokens)

	star := findHierarchyOpen(tokens)
	if star < 0 {
		return p.parseFlat(source, tokens)
	}

	if star == 0 {
		return nil, p.errorAt(source, tokens[0], cmn.ReasonEmptyHierarchyBase, cmn.ExpectHierarchy)
	}

	body := tokens[star+2:]

	closing := -1
	for i, t := range body {
		if t.Type == tok.CLOSED_PARENS {
			closing = i
			break
		}
	}

	if closing < 0 {
		return nil, p.errorAt(source, tokens[star+1], cmn.ReasonUnclosedParenthesis, cmn.ExpectHierarchy)
	}

	sub := body[:closing]
	rest := body[closing+1:]

	if nested := findHierarchyOpen(sub); nested >= 0 {
		return nil, p.errorAt(source, sub[nested], cmn.ReasonNestedHierarchy, cmn.ExpectHierarchy)
	}

	if len(rest) > 0 {
		if nested := findHierarchyOpen(rest); nested >= 0 {
			return nil, p.errorAt(source, rest[nested], cmn.ReasonNestedHierarchy, cmn.ExpectHierarchy)
		}

		return nil, p.errorAt(source, rest[0], cmn.ReasonUnexpectedAfterClause, cmn.ExpectHierarchy)
	}

	base, err := p.parseFlat(p.source(tokens[:star]), trimSpace(tokens[:star]))
	if err != nil {
		return nil, err
	}

	generator, err := p.parseChildGenerator(source, tokens[star+1], sub)
	if err != nil {
		return nil, err
	}

	return &Hierarchy{
		Base:     base,
		Children: generator,
		Src:      source,
		Pos:      tokens[0].Position,
	}, nil
}

// parseFlat parses a segment that must resolve to a flat list of names.
func (p *parser) parseFlat(source string, tokens []tok.Token) (Segment, error) {
	if len(tokens) == 0 {
		return nil, &cmn.InvalidPatternError{Segment: source, Reason: cmn.ReasonEmptyHierarchyBase, Expected: cmn.ExpectHierarchy}
	}

	open := -1

	for i, t := range tokens {
		if t.Type != tok.OPENED_BRACE {
			continue
		}

		open = i

		break
	}

	if open < 0 {
		text, err := p.text(source, tokens)
		if err != nil {
			return nil, err
		}

		return &Literal{Text: text, Src: source, Pos: tokens[0].Position}, nil
	}

	prefix, err := p.text(source, tokens[:open])
	if err != nil {
		return nil, err
	}

	inner := tokens[open+1:]

	closing := -1
	for i, t := range inner {
		if t.Type == tok.CLOSED_BRACE {
			closing = i
			break
		}

		if t.Type == tok.OPENED_BRACE {
			return nil, p.errorAt(source, t, cmn.ReasonUnexpectedCharacter, cmn.ExpectBraceRange)
		}
	}

	if closing < 0 {
		return nil, p.errorAt(source, tokens[open], cmn.ReasonUnclosedBrace, cmn.ExpectBraceRange)
	}

	content := inner[:closing]
	if len(content) != 1 || content[0].Type != tok.NUMBER {
		at := inner[closing]
		if len(content) > 0 {
			at = content[0]
		}

		return nil, p.errorAt(source, at, cmn.ReasonExpectedInteger, cmn.ExpectBraceRange)
	}

	count, err := strconv.Atoi(content[0].Value)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return nil, &cmn.LimitExceededError{Segment: source, Requested: -1}
		}

		return nil, p.errorAt(source, content[0], cmn.ReasonExpectedInteger, cmn.ExpectBraceRange)
	}

	if count <= 0 {
		return nil, p.errorAt(source, content[0], cmn.ReasonNonPositiveCount, cmn.ExpectBraceRange)
	}

	suffixTokens := inner[closing+1:]
	for _, t := range suffixTokens {
		if t.Type == tok.OPENED_BRACE {
			return nil, p.errorAt(source, t, cmn.ReasonMultipleRanges, cmn.ExpectBraceRange)
		}
	}

	suffix, err := p.text(source, suffixTokens)
	if err != nil {
		return nil, err
	}

	return &BraceRange{
		Prefix: prefix,
		Suffix: suffix,
		Count:  count,
		Width:  len(strconv.Itoa(count)),
		Src:    source,
		Pos:    tokens[0].Position,
	}, nil
}

// text concatenates name tokens; any metacharacter is an error.
func (p *parser) text(source string, tokens []tok.Token) (string, error) {
	var builder strings.Builder

	for _, t := range tokens {
		if t.Type.IsMeta() {
			return "", p.errorAt(source, t, cmn.ReasonUnexpectedCharacter, cmn.ExpectLiteral)
		}

		builder.WriteString(t.Value)
	}

	return builder.String(), nil
}

func (p *parser) source(tokens []tok.Token) string {
	tokens = trimSpace(tokens)
	if len(tokens) == 0 {
		return ""
	}

	last := tokens[len(tokens)-1]

	return p.src[tokens[0].Position.Offset : last.Position.Offset+len(last.Value)]
}

func (p *parser) errorAt(source string, t tok.Token, reason, expected string) error {
	return &cmn.InvalidPatternError{
		Segment:  source,
		Reason:   reason,
		Expected: expected,
		Offset:   t.Position.Offset,
		Line:     t.Position.Line,
		Column:   t.Position.Column,
	}
}

// findHierarchyOpen returns the index of the first STAR immediately followed
// by OPENED_PARENS, or -1.
func findHierarchyOpen(tokens []tok.Token) int {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Type == tok.STAR && tokens[i+1].Type == tok.OPENED_PARENS {
			return i
		}
	}

	return -1
}

// segmentAround returns the comma separated segment of input containing offset.
func segmentAround(input string, offset int) string {
	start := strings.LastIndexByte(input[:offset], ',') + 1

	end := len(input)
	if i := strings.IndexByte(input[offset:], ','); i >= 0 {
		end = offset + i
	}

	return strings.TrimSpace(input[start:end])
}
