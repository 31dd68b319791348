package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/shibukawa/locpattern"
	"github.com/shibukawa/locpattern/encoder"
	"github.com/shibukawa/locpattern/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var stdout, stderr bytes.Buffer

	return &Context{
		Config: filepath.Join(dir, "locpattern.yaml"),
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func writeConfig(t *testing.T, ctx *Context, content string) {
	t.Helper()

	err := os.WriteFile(ctx.Config, []byte(content), 0644)
	require.NoError(t, err)
}

func TestExpandCmd(t *testing.T) {
	t.Run("tree output joins arguments", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"A{2}", "B"}}
		require.NoError(t, cmd.Run(ctx))
		assert.Equal(t, "A1\nA2\nB\n", stdout.String())
	})

	t.Run("format from config", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)
		writeConfig(t, ctx, "output:\n  format: json\n")

		cmd := &ExpandCmd{Patterns: []string{"D*(+-[1])"}}
		require.NoError(t, cmd.Run(ctx))
		assert.JSONEq(t, `[{"name":"D","children":[{"name":"D-A","children":[]}]}]`, stdout.String())
	})

	t.Run("flag overrides config format", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)
		writeConfig(t, ctx, "output:\n  format: json\n")

		cmd := &ExpandCmd{Patterns: []string{"X"}, Format: "tree"}
		require.NoError(t, cmd.Run(ctx))
		assert.Equal(t, "X\n", stdout.String())
	})

	t.Run("unknown format", func(t *testing.T) {
		ctx, _, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"X"}, Format: "table"}
		assert.ErrorIs(t, cmd.Run(ctx), encoder.ErrUnknownFormat)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"A{x}"}}
		assert.ErrorIs(t, cmd.Run(ctx), locpattern.ErrInvalidPattern)
		assert.Empty(t, stdout.String())
	})

	t.Run("max nodes flag", func(t *testing.T) {
		ctx, _, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"A{10}"}, MaxNodes: 5}
		assert.ErrorIs(t, cmd.Run(ctx), locpattern.ErrLimitExceeded)
	})

	t.Run("max nodes from config", func(t *testing.T) {
		ctx, _, _ := newTestContext(t)
		writeConfig(t, ctx, "max_nodes: 3\n")

		cmd := &ExpandCmd{Patterns: []string{"A{4}"}}
		assert.ErrorIs(t, cmd.Run(ctx), locpattern.ErrLimitExceeded)
	})
}

func TestExpandCmd_Filter(t *testing.T) {
	t.Run("records by depth", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"20{2}*(+-[2])"}, Format: "json", Filter: "depth == 1"}
		require.NoError(t, cmd.Run(ctx))

		var records []locpattern.Record
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))

		got := make([]string, 0, len(records))
		for _, r := range records {
			got = append(got, r.Name)
			assert.NotEmpty(t, r.ParentID)
		}

		assert.Equal(t, []string{"201-A", "201-B", "202-A", "202-B"}, got)
	})

	t.Run("records by parent", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"20{2}*(+-[2])"}, Format: "json", Filter: `parent == "202"`}
		require.NoError(t, cmd.Run(ctx))

		var records []locpattern.Record
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, []string{"202", "202-B"}, records[1].Path)
	})

	t.Run("tree keeps ancestors of matches", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"20{2}*(+-[2]), X"}, Filter: `name.endsWith("-B") && path[0] == "202"`}
		require.NoError(t, cmd.Run(ctx))

		want := testhelper.TrimIndent(t, `
			202
			 └── 202-B
`)
		assert.Equal(t, want, stdout.String())
	})

	t.Run("non boolean expression", func(t *testing.T) {
		ctx, _, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"A"}, Filter: "name"}
		assert.ErrorIs(t, cmd.Run(ctx), ErrFilterNotBoolean)
	})

	t.Run("syntax error", func(t *testing.T) {
		ctx, _, _ := newTestContext(t)

		cmd := &ExpandCmd{Patterns: []string{"A"}, Filter: "name =="}
		err := cmd.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CEL compilation error")
	})
}

func TestValidateCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ValidateCmd{Patterns: []string{"A{3}", "B*(+-[2])"}}
		require.NoError(t, cmd.Run(ctx))
		assert.Equal(t, "OK\n", stdout.String())
	})

	t.Run("invalid pattern reports position", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ValidateCmd{Patterns: []string{"OK", "A*(+-[27])"}}
		assert.ErrorIs(t, cmd.Run(ctx), ErrValidationFailed)

		out := stdout.String()
		assert.Contains(t, out, "INVALID: letter sequence exhausted")
		assert.Contains(t, out, `"A*(+-[27])"`)
		assert.Contains(t, out, "expected: ")
	})

	t.Run("limit exceeded", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)

		cmd := &ValidateCmd{Patterns: []string{"A{10}"}, MaxNodes: 2}
		assert.ErrorIs(t, cmd.Run(ctx), ErrValidationFailed)
		assert.Contains(t, stdout.String(), "TOO LARGE")
		assert.Contains(t, stdout.String(), "requested: 10")
	})

	t.Run("quiet", func(t *testing.T) {
		ctx, stdout, _ := newTestContext(t)
		ctx.Quiet = true

		cmd := &ValidateCmd{Patterns: []string{"A{"}}
		assert.ErrorIs(t, cmd.Run(ctx), ErrValidationFailed)
		assert.Empty(t, stdout.String())
	})
}

func TestCountCmd(t *testing.T) {
	ctx, stdout, _ := newTestContext(t)

	cmd := &CountCmd{Patterns: []string{"A{12}", "20{2}*(+-[2])"}}
	require.NoError(t, cmd.Run(ctx))
	assert.Equal(t, "18\n", stdout.String())
}

func TestVerboseLogging(t *testing.T) {
	ctx, _, stderr := newTestContext(t)
	ctx.Verbose = true
	ctx.LogFormat = "json"

	cmd := &CountCmd{Patterns: []string{"A{2}"}}
	require.NoError(t, cmd.Run(ctx))

	assert.Contains(t, stderr.String(), `"msg":"pattern counted"`)
	assert.Contains(t, stderr.String(), `"level":"DEBUG"`)
}

func TestInvalidColorMode(t *testing.T) {
	ctx, _, _ := newTestContext(t)
	writeConfig(t, ctx, "output:\n  color: sometimes\n")

	cmd := &ExpandCmd{Patterns: []string{"A"}}
	assert.Error(t, cmd.Run(ctx))
}

func TestVersionCmd(t *testing.T) {
	ctx, stdout, _ := newTestContext(t)

	require.NoError(t, (&VersionCmd{}).Run(ctx))
	assert.Contains(t, stdout.String(), "locpattern v")
}
