package parser

import (
	"slices"
	"strconv"

	pc "github.com/shibukawa/parsercombinator"
	cmn "github.com/shibukawa/locpattern/patterncommon"
	tok "github.com/shibukawa/locpattern/tokenizer"
)

// MaxLetterChildren is the length of the A..Z letter sequence.
const MaxLetterChildren = 26

var (
	plus         = primitiveType("plus", tok.PLUS)
	minus        = primitiveType("minus", tok.MINUS)
	bracketOpen  = primitiveType("bracketOpen", tok.OPENED_BRACKET)
	bracketClose = primitiveType("bracketClose", tok.CLOSED_BRACKET)
	number       = primitiveType("number", tok.NUMBER)

	// letterSequenceOpen matches "+-[".
	letterSequenceOpen = pc.Seq(plus, minus, bracketOpen)
	// letterSequence matches "+-[K]".
	letterSequence = pc.Seq(letterSequenceOpen, number, bracketClose)
)

func primitiveType(typeName string, types ...tok.TokenType) pc.Parser[tok.Token] {
	return func(pctx *pc.ParseContext[tok.Token], tokens []pc.Token[tok.Token]) (int, []pc.Token[tok.Token], error) {
		if len(tokens) > 0 && slices.Contains(types, tokens[0].Val.Type) {
			return 1, tokens[:1], nil
		}

		return 0, nil, pc.ErrNotMatch
	}
}

func toParserToken(tokens []tok.Token) []pc.Token[tok.Token] {
	results := make([]pc.Token[tok.Token], len(tokens))

	for i, token := range tokens {
		results[i] = pc.Token[tok.Token]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: token,
			Raw: token.Value,
		}
	}

	return results
}

// parseChildGenerator parses the tokens between "*(" and ")". open is the
// "(" token, used for error positions when sub is empty.
func (p *parser) parseChildGenerator(source string, open tok.Token, sub []tok.Token) (ChildGenerator, error) {
	if len(sub) == 0 {
		return nil, p.errorAt(source, open, cmn.ReasonUnsupportedGenerator, cmn.ExpectLetterSequence)
	}

	pctx := pc.NewParseContext[tok.Token]()
	tokens := toParserToken(sub)

	consumed, _, err := letterSequence(pctx, tokens)
	if err != nil || consumed != len(tokens) {
		// "+-[" followed by something other than a bare integer and "]"
		if opened, _, openErr := letterSequenceOpen(pctx, tokens); openErr == nil && sub[len(sub)-1].Type == tok.CLOSED_BRACKET {
			at := sub[len(sub)-1]
			if opened < len(sub)-1 {
				at = sub[opened]
			}

			return nil, p.errorAt(source, at, cmn.ReasonExpectedChildInteger, cmn.ExpectLetterSequence)
		}

		return nil, p.errorAt(source, sub[0], cmn.ReasonUnsupportedGenerator, cmn.ExpectLetterSequence)
	}

	countToken := sub[3]

	count, err := strconv.Atoi(countToken.Value)
	if err != nil || count > MaxLetterChildren {
		return nil, p.errorAt(source, countToken, cmn.ReasonLetterExhausted, cmn.ExpectLetterSequence)
	}

	if count <= 0 {
		return nil, p.errorAt(source, countToken, cmn.ReasonNonPositiveCount, cmn.ExpectLetterSequence)
	}

	return &LetterSequence{Separator: sub[1].Value, Count: count}, nil
}
