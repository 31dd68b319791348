// Package patterncommon holds the types shared by the tokenizer, parser and
// materializer stages of the location pattern pipeline.
package patterncommon

// Node is one generated location. Children is never nil so that encoders
// render an empty list rather than null.
type Node struct {
	Name     string `json:"name" yaml:"name"`
	Children []Node `json:"children" yaml:"children"`
}

// NewNode returns a childless node.
func NewNode(name string) Node {
	return Node{Name: name, Children: []Node{}}
}

// CountNodes returns the number of nodes in the forest, children included.
func CountNodes(nodes []Node) int {
	total := len(nodes)
	for _, n := range nodes {
		total += CountNodes(n.Children)
	}

	return total
}
