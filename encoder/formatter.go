// Package encoder serializes expanded location trees.
package encoder

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/locpattern"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// OutputFormat names a serialization.
type OutputFormat string

const (
	FormatTree OutputFormat = "tree"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatXML  OutputFormat = "xml"
	FormatCSV  OutputFormat = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTree, FormatJSON, FormatYAML, FormatXML, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of tree, json, yaml, xml, csv)", ErrUnknownFormat, s)
	}
}

var (
	parentNameFmt = color.New(color.FgBlue, color.Bold).SprintFunc()
	leafNameFmt   = color.New(color.FgGreen).SprintFunc()
	branchFmt     = color.New(color.FgHiBlack).SprintFunc()
)

// Formatter formats location trees
type Formatter struct {
	OutputFormat OutputFormat
	// Color enables ANSI colors in tree output. Other formats ignore it.
	Color bool
}

// NewFormatter creates a new formatter
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{
		OutputFormat: format,
	}
}

// Format writes nodes in the configured format
func (f *Formatter) Format(nodes []locpattern.Node, output io.Writer) error {
	switch f.OutputFormat {
	case FormatTree:
		return f.formatAsTree(nodes, output)
	case FormatJSON:
		return writeJSON(nodes, output)
	case FormatYAML:
		return writeYAML(nodes, output)
	case FormatXML:
		return f.formatAsXML(nodes, output)
	case FormatCSV:
		return f.FormatRecords(locpattern.Flatten(nodes), output)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f.OutputFormat)
	}
}

// FormatRecords writes flattened records. Tree and XML output need the
// nested form and are rejected.
func (f *Formatter) FormatRecords(records []locpattern.Record, output io.Writer) error {
	switch f.OutputFormat {
	case FormatJSON:
		return writeJSON(records, output)
	case FormatYAML:
		return writeYAML(records, output)
	case FormatCSV:
		return formatRecordsAsCSV(records, output)
	default:
		return fmt.Errorf("%w: %s cannot render flat records", ErrUnknownFormat, f.OutputFormat)
	}
}

func (f *Formatter) formatAsTree(nodes []locpattern.Node, output io.Writer) error {
	var builder strings.Builder
	f.writeTree(&builder, nodes, "")

	_, err := io.WriteString(output, builder.String())

	return err
}

func (f *Formatter) writeTree(builder *strings.Builder, nodes []locpattern.Node, indent string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}

		if indent == "" {
			branch, next = "", ""
		}

		name := n.Name
		if f.Color {
			branch = branchFmt(branch)

			if len(n.Children) > 0 {
				name = parentNameFmt(name)
			} else {
				name = leafNameFmt(name)
			}
		}

		builder.WriteString(indent)
		builder.WriteString(branch)
		builder.WriteString(name)
		builder.WriteByte('\n')

		childIndent := indent + next
		if indent == "" {
			childIndent = " "
		}

		f.writeTree(builder, n.Children, childIndent)
	}
}

func (f *Formatter) formatAsXML(nodes []locpattern.Node, output io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("locations")
	appendXML(root, nodes)

	doc.Indent(2)

	_, err := doc.WriteTo(output)
	if err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}

	return nil
}

func appendXML(parent *etree.Element, nodes []locpattern.Node) {
	for _, n := range nodes {
		el := parent.CreateElement("location")
		el.CreateAttr("name", n.Name)
		appendXML(el, n.Children)
	}
}

func formatRecordsAsCSV(records []locpattern.Record, output io.Writer) error {
	writer := csv.NewWriter(output)

	if err := writer.Write([]string{"id", "parent_id", "name", "depth", "position", "path"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{r.ID, r.ParentID, r.Name, strconv.Itoa(r.Depth), strconv.Itoa(r.Position), strings.Join(r.Path, "/")}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

func writeJSON(value any, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}

func writeYAML(value any, output io.Writer) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal results to YAML: %w", err)
	}

	_, err = output.Write(data)

	return err
}
