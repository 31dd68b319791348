// Package testhelper holds small helpers shared by package tests.
package testhelper

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

var (
	leadingSpace = regexp.MustCompile(`^\s+`)
	leadingTabs  = regexp.MustCompile(`^\t+`)
)

// TrimIndent drops the first line of a raw string literal and removes the
// indentation of its second line from every line. Remaining leading tabs
// become four spaces each.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := leadingSpace.FindString(lines[1])

	result := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimPrefix(line, indent)
		line = leadingTabs.ReplaceAllStringFunc(line, func(tabs string) string {
			return strings.Repeat("    ", len(tabs))
		})
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}

// GetCaller returns "(file:line)" of the caller, for table test names.
func GetCaller(t *testing.T) string {
	t.Helper()

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return "unknown"
	}

	return fmt.Sprintf("(%s:%d)", filepath.Base(file), line)
}
