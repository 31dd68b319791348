package materializer

import (
	"errors"
	"testing"

	"github.com/shibukawa/locpattern/parser"
	cmn "github.com/shibukawa/locpattern/patterncommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(name string) cmn.Node {
	return cmn.NewNode(name)
}

func TestMaterialize(t *testing.T) {
	tests := []struct {
		name     string
		segments []parser.Segment
		want     []cmn.Node
	}{
		{
			name:     "no segments",
			segments: nil,
			want:     []cmn.Node{},
		},
		{
			name:     "literal",
			segments: []parser.Segment{&parser.Literal{Text: "ARM-01"}},
			want:     []cmn.Node{leaf("ARM-01")},
		},
		{
			name:     "range pads to digit count",
			segments: []parser.Segment{&parser.BraceRange{Prefix: "A", Suffix: "x", Count: 3, Width: 2}},
			want:     []cmn.Node{leaf("A01x"), leaf("A02x"), leaf("A03x")},
		},
		{
			name: "hierarchy",
			segments: []parser.Segment{&parser.Hierarchy{
				Base:     &parser.Literal{Text: "D"},
				Children: &parser.LetterSequence{Separator: "-", Count: 3},
			}},
			want: []cmn.Node{{Name: "D", Children: []cmn.Node{leaf("D-A"), leaf("D-B"), leaf("D-C")}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Materialize(tt.segments, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaterializeLimit(t *testing.T) {
	segments := []parser.Segment{
		&parser.Literal{Text: "X", Src: "X"},
		&parser.Hierarchy{
			Base:     &parser.BraceRange{Prefix: "R", Count: 10, Width: 2},
			Children: &parser.LetterSequence{Separator: "-", Count: 4},
			Src:      "R{10}*(+-[4])",
		},
	}

	n, err := CountNodes(segments, 0)
	require.NoError(t, err)
	assert.Equal(t, 51, n)

	_, err = Materialize(segments, 51)
	require.NoError(t, err)

	_, err = Materialize(segments, 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cmn.ErrLimitExceeded))

	var limitErr *cmn.LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, "R{10}*(+-[4])", limitErr.Segment)
	assert.Equal(t, 50, limitErr.Limit)
	assert.Equal(t, 51, limitErr.Requested)
}

func TestMaterializeRejectsNestedHierarchy(t *testing.T) {
	inner := &parser.Hierarchy{
		Base:     &parser.Literal{Text: "A"},
		Children: &parser.LetterSequence{Separator: "-", Count: 1},
	}
	segments := []parser.Segment{&parser.Hierarchy{
		Base:     inner,
		Children: &parser.LetterSequence{Separator: "-", Count: 1},
		Src:      "A*(+-[1])*(+-[1])",
	}}

	_, err := Materialize(segments, 0)
	assert.True(t, errors.Is(err, cmn.ErrInvalidPattern))
}

func TestCountNodesSaturates(t *testing.T) {
	segments := []parser.Segment{&parser.Hierarchy{
		Base:     &parser.BraceRange{Count: int(^uint(0) >> 2), Width: 1},
		Children: &parser.LetterSequence{Separator: "-", Count: 26},
		Src:      "huge",
	}}

	_, err := CountNodes(segments, 100)

	var limitErr *cmn.LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, -1, limitErr.Requested)
}

func TestLetters(t *testing.T) {
	assert.Equal(t, "A", letter(0))
	assert.Equal(t, "Z", letter(25))

	children, err := generateChildren("P", &parser.LetterSequence{Separator: "-", Count: 26})
	require.NoError(t, err)
	assert.Len(t, children, 26)
	assert.Equal(t, "P-Z", children[25].Name)

	_, err = generateChildren("P", &parser.LetterSequence{Separator: "-", Count: 27})
	assert.True(t, errors.Is(err, cmn.ErrInvalidPattern))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "7", pad(7, 1))
	assert.Equal(t, "007", pad(7, 3))
	assert.Equal(t, "123", pad(123, 2))
}
