package parser

import "github.com/shibukawa/locpattern/tokenizer"

// Segment is one comma separated unit of a pattern.
// It is one of *Literal, *BraceRange or *Hierarchy.
type Segment interface {
	segment()
	// Source returns the trimmed segment text as written.
	Source() string
	// Position returns the location of the first token of the segment.
	Position() tokenizer.Position
}

// Literal expands to exactly one location named Text.
type Literal struct {
	Text string
	Src  string
	Pos  tokenizer.Position
}

// BraceRange expands prefix{N}suffix into N names with the index padded to
// Width digits.
type BraceRange struct {
	Prefix string
	Suffix string
	Count  int
	Width  int
	Src    string
	Pos    tokenizer.Position
}

// Hierarchy expands Base into parents and attaches the children produced by
// Children to each parent. Base is never a *Hierarchy.
type Hierarchy struct {
	Base     Segment
	Children ChildGenerator
	Src      string
	Pos      tokenizer.Position
}

func (*Literal) segment()    {}
func (*BraceRange) segment() {}
func (*Hierarchy) segment()  {}

func (l *Literal) Source() string    { return l.Src }
func (b *BraceRange) Source() string { return b.Src }
func (h *Hierarchy) Source() string  { return h.Src }

func (l *Literal) Position() tokenizer.Position    { return l.Pos }
func (b *BraceRange) Position() tokenizer.Position { return b.Pos }
func (h *Hierarchy) Position() tokenizer.Position  { return h.Pos }

// ChildGenerator describes how children are derived from a parent name.
type ChildGenerator interface {
	childGenerator()
	// ChildCount returns the number of children generated per parent.
	ChildCount() int
}

// LetterSequence generates Count children named parent + Separator + A, B, C...
type LetterSequence struct {
	Separator string
	Count     int
}

func (*LetterSequence) childGenerator() {}

func (l *LetterSequence) ChildCount() int { return l.Count }
