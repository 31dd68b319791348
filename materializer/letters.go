package materializer

import (
	"fmt"

	"github.com/shibukawa/locpattern/parser"
	cmn "github.com/shibukawa/locpattern/patterncommon"
)

func generateChildren(parent string, generator parser.ChildGenerator) ([]cmn.Node, error) {
	switch g := generator.(type) {
	case *parser.LetterSequence:
		if g.Count > parser.MaxLetterChildren {
			return nil, &cmn.InvalidPatternError{
				Segment:  parent,
				Reason:   cmn.ReasonLetterExhausted,
				Expected: cmn.ExpectLetterSequence,
			}
		}

		children := make([]cmn.Node, 0, g.Count)
		for i := range g.Count {
			children = append(children, cmn.NewNode(parent+g.Separator+letter(i)))
		}

		return children, nil
	default:
		return nil, fmt.Errorf("%w: unknown child generator %T", cmn.ErrInvalidPattern, generator)
	}
}

// letter returns the i-th uppercase letter, 0 -> "A".
func letter(i int) string {
	return string(rune('A' + i))
}
