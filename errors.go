package locpattern

import (
	"errors"

	cmn "github.com/shibukawa/locpattern/patterncommon"
)

// Node is one generated location with its ordered children.
type Node = cmn.Node

// InvalidPatternError reports malformed pattern syntax together with the
// offending segment, its position and the expected grammar.
type InvalidPatternError = cmn.InvalidPatternError

// LimitExceededError reports a pattern that would generate too many locations.
type LimitExceededError = cmn.LimitExceededError

// Common errors used throughout the locpattern package
var (
	// ErrInvalidPattern is matched by every InvalidPatternError.
	ErrInvalidPattern = cmn.ErrInvalidPattern
	// ErrLimitExceeded is matched by every LimitExceededError.
	ErrLimitExceeded = cmn.ErrLimitExceeded

	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
)
