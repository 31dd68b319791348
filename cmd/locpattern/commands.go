package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/shibukawa/locpattern"
	"github.com/shibukawa/locpattern/encoder"
)

// Sentinel errors
var (
	ErrValidationFailed = errors.New("pattern validation failed")
	ErrInvalidColorMode = errors.New("invalid color mode")
)

// session holds what every command needs after loading configuration.
type session struct {
	config   *locpattern.Config
	expander *locpattern.Expander
	logger   *slog.Logger
}

func (ctx *Context) open(maxNodes int) (*session, error) {
	config, err := locpattern.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := config.Log.Level
	switch {
	case ctx.Verbose:
		level = "debug"
	case ctx.Quiet:
		level = "error"
	}

	format := config.Log.Format
	if ctx.LogFormat != "" {
		format = ctx.LogFormat
	}

	logger := newLogger(level, format, ctx.Stderr)

	opts := config.Options()
	if maxNodes != 0 {
		opts.MaxNodes = maxNodes
	}

	expander := locpattern.NewExpander(opts)
	logger.Debug("configuration loaded", "path", ctx.Config, "max_nodes", expander.MaxNodes(), "normalize_width", opts.NormalizeWidth)

	return &session{config: config, expander: expander, logger: logger}, nil
}

func joinPatterns(patterns []string) string {
	return strings.Join(patterns, ",")
}

// useColor resolves the configured color mode against the terminal state
// that fatih/color detected.
func useColor(mode string) (bool, error) {
	switch mode {
	case "", "auto":
		return !color.NoColor, nil
	case "always":
		color.NoColor = false
		return true, nil
	case "never":
		color.NoColor = true
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrInvalidColorMode, mode)
	}
}

// ExpandCmd represents the expand command
type ExpandCmd struct {
	Patterns []string `arg:"" help:"Location patterns; multiple arguments are joined with a comma"`
	Format   string   `short:"f" help:"Output format (tree, json, yaml, xml, csv)"`
	Filter   string   `help:"CEL expression over name, depth, path, parent selecting locations"`
	MaxNodes int      `help:"Node cap (0 uses the configured value, negative disables)"`
}

// Run executes the expand command
func (e *ExpandCmd) Run(ctx *Context) error {
	s, err := ctx.open(e.MaxNodes)
	if err != nil {
		return err
	}

	formatName := e.Format
	if formatName == "" {
		formatName = s.config.Output.Format
	}

	format, err := encoder.ParseFormat(formatName)
	if err != nil {
		return err
	}

	colored, err := useColor(s.config.Output.Color)
	if err != nil {
		return err
	}

	pattern := joinPatterns(e.Patterns)

	nodes, err := s.expander.Expand(pattern)
	if err != nil {
		return err
	}

	s.logger.Debug("pattern expanded", "pattern", pattern, "roots", len(nodes), "nodes", locpattern.TotalNodes(nodes))

	formatter := encoder.NewFormatter(format)
	formatter.Color = colored

	if e.Filter == "" {
		return formatter.Format(nodes, ctx.Stdout)
	}

	filter, err := compileFilter(e.Filter)
	if err != nil {
		return err
	}

	switch format {
	case encoder.FormatTree, encoder.FormatXML:
		pruned, err := filter.Nodes(nodes)
		if err != nil {
			return err
		}

		s.logger.Debug("filter applied", "filter", e.Filter, "nodes", locpattern.TotalNodes(pruned))

		return formatter.Format(pruned, ctx.Stdout)
	default:
		records, err := filter.Records(locpattern.Flatten(nodes))
		if err != nil {
			return err
		}

		s.logger.Debug("filter applied", "filter", e.Filter, "records", len(records))

		return formatter.FormatRecords(records, ctx.Stdout)
	}
}

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Patterns []string `arg:"" help:"Location patterns to check"`
	MaxNodes int      `help:"Node cap (0 uses the configured value, negative disables)"`
}

// Run executes the validate command
func (v *ValidateCmd) Run(ctx *Context) error {
	s, err := ctx.open(v.MaxNodes)
	if err != nil {
		return err
	}

	if _, err := useColor(s.config.Output.Color); err != nil {
		return err
	}

	pattern := joinPatterns(v.Patterns)

	err = s.expander.Validate(pattern)
	if err == nil {
		if !ctx.Quiet {
			color.New(color.FgGreen).Fprintln(ctx.Stdout, "OK")
		}

		return nil
	}

	s.logger.Debug("validation failed", "pattern", pattern, "error", err)

	if !ctx.Quiet {
		printValidationError(ctx, err)
	}

	return ErrValidationFailed
}

func printValidationError(ctx *Context, err error) {
	red := color.New(color.FgRed, color.Bold)
	label := color.New(color.FgCyan)

	var patternErr *locpattern.InvalidPatternError
	var limitErr *locpattern.LimitExceededError

	switch {
	case errors.As(err, &patternErr):
		red.Fprintf(ctx.Stdout, "INVALID: %s\n", patternErr.Reason)
		label.Fprint(ctx.Stdout, "  segment:  ")
		fmt.Fprintf(ctx.Stdout, "%q\n", patternErr.Segment)
		label.Fprint(ctx.Stdout, "  position: ")
		fmt.Fprintf(ctx.Stdout, "line %d, column %d\n", patternErr.Line, patternErr.Column)
		label.Fprint(ctx.Stdout, "  expected: ")
		fmt.Fprintln(ctx.Stdout, patternErr.Expected)
	case errors.As(err, &limitErr):
		red.Fprintln(ctx.Stdout, "TOO LARGE: node limit exceeded")
		label.Fprint(ctx.Stdout, "  segment:   ")
		fmt.Fprintf(ctx.Stdout, "%q\n", limitErr.Segment)
		label.Fprint(ctx.Stdout, "  limit:     ")
		fmt.Fprintln(ctx.Stdout, limitErr.Limit)

		if limitErr.Requested >= 0 {
			label.Fprint(ctx.Stdout, "  requested: ")
			fmt.Fprintln(ctx.Stdout, limitErr.Requested)
		}
	default:
		red.Fprintf(ctx.Stdout, "INVALID: %v\n", err)
	}
}

// CountCmd represents the count command
type CountCmd struct {
	Patterns []string `arg:"" help:"Location patterns to count"`
	MaxNodes int      `help:"Node cap (0 uses the configured value, negative disables)"`
}

// Run executes the count command
func (c *CountCmd) Run(ctx *Context) error {
	s, err := ctx.open(c.MaxNodes)
	if err != nil {
		return err
	}

	pattern := joinPatterns(c.Patterns)

	n, err := s.expander.Count(pattern)
	if err != nil {
		return err
	}

	s.logger.Debug("pattern counted", "pattern", pattern, "nodes", n)
	fmt.Fprintln(ctx.Stdout, n)

	return nil
}
