package main

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/shibukawa/locpattern"
)

var (
	ErrFilterNotBoolean = errors.New("filter expression must evaluate to a boolean")
)

// locationFilter is a compiled CEL predicate over one location.
// Variables: name, depth, path, parent.
type locationFilter struct {
	program cel.Program
}

func compileFilter(expression string) (*locationFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("depth", cel.IntType),
		cel.Variable("path", cel.ListType(cel.StringType)),
		cel.Variable("parent", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter CEL: %w", err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("CEL compilation error: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: got %s", ErrFilterNotBoolean, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return &locationFilter{program: program}, nil
}

func (f *locationFilter) match(name string, path []string, parent string) (bool, error) {
	result, _, err := f.program.Eval(map[string]any{
		"name":   name,
		"depth":  len(path) - 1,
		"path":   path,
		"parent": parent,
	})
	if err != nil {
		return false, fmt.Errorf("CEL evaluation error for %q: %w", name, err)
	}

	matched, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrFilterNotBoolean, result.Value())
	}

	return matched, nil
}

// Records keeps the records that match, in their original order.
func (f *locationFilter) Records(records []locpattern.Record) ([]locpattern.Record, error) {
	names := make(map[string]string, len(records))
	result := make([]locpattern.Record, 0, len(records))

	for _, r := range records {
		names[r.ID] = r.Name

		matched, err := f.match(r.Name, r.Path, names[r.ParentID])
		if err != nil {
			return nil, err
		}

		if matched {
			result = append(result, r)
		}
	}

	return result, nil
}

// Nodes prunes the forest: a node survives when it or any descendant matches.
func (f *locationFilter) Nodes(nodes []locpattern.Node) ([]locpattern.Node, error) {
	return f.prune(nodes, nil, "")
}

func (f *locationFilter) prune(nodes []locpattern.Node, path []string, parent string) ([]locpattern.Node, error) {
	result := make([]locpattern.Node, 0, len(nodes))

	for _, n := range nodes {
		current := make([]string, len(path)+1)
		copy(current, path)
		current[len(path)] = n.Name

		children, err := f.prune(n.Children, current, n.Name)
		if err != nil {
			return nil, err
		}

		matched, err := f.match(n.Name, current, parent)
		if err != nil {
			return nil, err
		}

		if matched || len(children) > 0 {
			result = append(result, locpattern.Node{Name: n.Name, Children: children})
		}
	}

	return result, nil
}
