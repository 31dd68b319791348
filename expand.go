// Package locpattern expands warehouse location patterns such as
// "20{2}*(+-[2])" into a tree of location codes.
//
//	nodes, err := locpattern.Expand("A{3}, DOCK*(+-[2])")
//	// A1, A2, A3, DOCK (DOCK-A, DOCK-B)
//
// Expansion is all-or-nothing: any malformed segment fails the whole call.
package locpattern

import (
	"errors"

	"github.com/shibukawa/locpattern/materializer"
	"github.com/shibukawa/locpattern/parser"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxNodes caps the number of generated locations when Options.MaxNodes is zero.
const DefaultMaxNodes = 100000

// Options controls an Expander.
type Options struct {
	// MaxNodes caps the total number of generated nodes, children included.
	// Zero means DefaultMaxNodes; a negative value disables the cap.
	MaxNodes int
	// NormalizeWidth applies Unicode NFKC to the input before parsing so that
	// full-width digits and brackets behave like their ASCII forms.
	NormalizeWidth bool
}

// Expander expands patterns with fixed options. The zero value uses the
// defaults. An Expander is immutable and safe for concurrent use.
type Expander struct {
	opts Options
}

// NewExpander creates an Expander.
func NewExpander(opts Options) *Expander {
	return &Expander{opts: opts}
}

// Expand parses input and returns the generated location forest.
func (e *Expander) Expand(input string) ([]Node, error) {
	segments, err := e.parse(input)
	if err != nil {
		return nil, err
	}

	nodes, err := materializer.Materialize(segments, e.limit())
	if err != nil {
		return nil, e.fillLimit(err)
	}

	return nodes, nil
}

// Count returns the number of nodes Expand would generate without building them.
func (e *Expander) Count(input string) (int, error) {
	segments, err := e.parse(input)
	if err != nil {
		return 0, err
	}

	n, err := materializer.CountNodes(segments, e.limit())
	if err != nil {
		return 0, e.fillLimit(err)
	}

	return n, nil
}

// Validate reports the first syntax or limit error in input, or nil.
func (e *Expander) Validate(input string) error {
	_, err := e.Count(input)
	return err
}

// MaxNodes returns the effective cap, or 0 when the cap is disabled.
func (e *Expander) MaxNodes() int {
	return e.limit()
}

func (e *Expander) parse(input string) ([]parser.Segment, error) {
	if e.opts.NormalizeWidth {
		input = norm.NFKC.String(input)
	}

	segments, err := parser.Parse(input)
	if err != nil {
		return nil, e.fillLimit(err)
	}

	return segments, nil
}

func (e *Expander) limit() int {
	switch {
	case e.opts.MaxNodes < 0:
		return 0
	case e.opts.MaxNodes == 0:
		return DefaultMaxNodes
	default:
		return e.opts.MaxNodes
	}
}

// fillLimit sets the configured cap on limit errors raised before the cap
// was known (count literals too large for an int).
func (e *Expander) fillLimit(err error) error {
	var limitErr *LimitExceededError
	if errors.As(err, &limitErr) && limitErr.Limit == 0 {
		limitErr.Limit = e.limit()
	}

	return err
}

var defaultExpander = &Expander{}

// Expand expands input with the default options.
func Expand(input string) ([]Node, error) {
	return defaultExpander.Expand(input)
}

// Count counts the nodes input would generate with the default options.
func Count(input string) (int, error) {
	return defaultExpander.Count(input)
}

// Validate checks input with the default options.
func Validate(input string) error {
	return defaultExpander.Validate(input)
}
