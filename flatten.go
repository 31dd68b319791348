package locpattern

import (
	"github.com/google/uuid"
	cmn "github.com/shibukawa/locpattern/patterncommon"
)

// Record is a flattened Node ready to be persisted as a location row.
// Records are emitted parents first, so ParentID always refers to an
// earlier record.
type Record struct {
	ID       string   `json:"id" yaml:"id"`
	ParentID string   `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Name     string   `json:"name" yaml:"name"`
	Depth    int      `json:"depth" yaml:"depth"`
	Position int      `json:"position" yaml:"position"`
	Path     []string `json:"path" yaml:"path"`
}

// Flatten walks nodes in pre-order and assigns a fresh UUID to each one.
func Flatten(nodes []Node) []Record {
	records := make([]Record, 0, len(nodes))
	return flatten(records, nodes, "", nil)
}

func flatten(records []Record, nodes []Node, parentID string, path []string) []Record {
	for i, n := range nodes {
		current := make([]string, len(path)+1)
		copy(current, path)
		current[len(path)] = n.Name

		id := uuid.NewString()
		records = append(records, Record{
			ID:       id,
			ParentID: parentID,
			Name:     n.Name,
			Depth:    len(path),
			Position: i,
			Path:     current,
		})

		records = flatten(records, n.Children, id, current)
	}

	return records
}

// TotalNodes returns the number of nodes in the forest, children included.
func TotalNodes(nodes []Node) int {
	return cmn.CountNodes(nodes)
}
