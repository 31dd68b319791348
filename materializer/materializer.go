// Package materializer walks parsed location pattern segments and produces
// the location node forest.
package materializer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shibukawa/locpattern/parser"
	cmn "github.com/shibukawa/locpattern/patterncommon"
)

// Materialize expands segments into nodes, in segment order. limit caps the
// total number of nodes (parents and children); limit <= 0 disables the cap.
// The cap is checked before any node is allocated.
func Materialize(segments []parser.Segment, limit int) ([]cmn.Node, error) {
	total, err := checkLimit(segments, limit)
	if err != nil {
		return nil, err
	}

	nodes := make([]cmn.Node, 0, min(total, len(segments)*16))

	for _, seg := range segments {
		expanded, err := expand(seg)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, expanded...)
	}

	return nodes, nil
}

// CountNodes returns how many nodes Materialize would emit for segments,
// honoring the same limit.
func CountNodes(segments []parser.Segment, limit int) (int, error) {
	return checkLimit(segments, limit)
}

func checkLimit(segments []parser.Segment, limit int) (int, error) {
	total := 0

	for _, seg := range segments {
		n, err := count(seg)
		if err != nil {
			return 0, err
		}

		total = saturatingAdd(total, n)

		if limit > 0 && total > limit {
			requested := total
			if requested == math.MaxInt {
				requested = -1
			}

			return 0, &cmn.LimitExceededError{Segment: seg.Source(), Limit: limit, Requested: requested}
		}
	}

	return total, nil
}

func count(seg parser.Segment) (int, error) {
	switch s := seg.(type) {
	case *parser.Literal:
		return 1, nil
	case *parser.BraceRange:
		return s.Count, nil
	case *parser.Hierarchy:
		parents, err := count(s.Base)
		if err != nil {
			return 0, err
		}

		return saturatingMul(parents, 1+s.Children.ChildCount()), nil
	default:
		return 0, fmt.Errorf("%w: unknown segment type %T", cmn.ErrInvalidPattern, seg)
	}
}

func expand(seg parser.Segment) ([]cmn.Node, error) {
	switch s := seg.(type) {
	case *parser.Literal:
		return []cmn.Node{cmn.NewNode(s.Text)}, nil
	case *parser.BraceRange:
		return expandRange(s), nil
	case *parser.Hierarchy:
		if _, nested := s.Base.(*parser.Hierarchy); nested {
			return nil, &cmn.InvalidPatternError{
				Segment:  s.Src,
				Reason:   cmn.ReasonNestedHierarchy,
				Expected: cmn.ExpectHierarchy,
				Offset:   s.Pos.Offset,
				Line:     s.Pos.Line,
				Column:   s.Pos.Column,
			}
		}

		parents, err := expand(s.Base)
		if err != nil {
			return nil, err
		}

		for i := range parents {
			children, err := generateChildren(parents[i].Name, s.Children)
			if err != nil {
				return nil, err
			}

			parents[i].Children = children
		}

		return parents, nil
	default:
		return nil, fmt.Errorf("%w: unknown segment type %T", cmn.ErrInvalidPattern, seg)
	}
}

func expandRange(r *parser.BraceRange) []cmn.Node {
	nodes := make([]cmn.Node, 0, r.Count)

	for i := 1; i <= r.Count; i++ {
		nodes = append(nodes, cmn.NewNode(r.Prefix+pad(i, r.Width)+r.Suffix))
	}

	return nodes
}

func pad(i, width int) string {
	s := strconv.Itoa(i)
	if len(s) >= width {
		return s
	}

	return strings.Repeat("0", width-len(s)) + s
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}

	return a + b
}

func saturatingMul(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}

	return a * b
}
