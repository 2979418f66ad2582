// Package nodeindex maps slash-delimited design paths to design nodes.
//
// An [Index] is built once per conversion by a depth-first, pre-order walk.
// Each named node is stored under the names of its ancestors joined with "/"
// followed by its own name; ancestors without a name contribute "unnamed".
// Insertion order is remembered so suffix lookups are deterministic.
package nodeindex

import (
	"strings"

	"github.com/matzehuels/pagefit/pkg/design"
)

// Separator joins path segments.
const Separator = "/"

// UnnamedSegment stands in for ancestors without a name.
const UnnamedSegment = "unnamed"

// Index is an ordered path → node mapping. It is not safe for concurrent
// mutation but may be read concurrently once built.
type Index struct {
	nodes map[string]*design.Node
	keys  []string
}

// Build indexes the tree rooted at root.
func Build(root *design.Node) *Index {
	idx := &Index{nodes: make(map[string]*design.Node)}
	idx.add(root, "")
	return idx
}

func (idx *Index) add(n *design.Node, parent string) {
	if n == nil {
		return
	}
	if n.Name != "" {
		idx.insert(join(parent, n.Name), n)
	}
	childPrefix := join(parent, n.DisplayName(UnnamedSegment))
	for _, c := range n.Children {
		idx.add(c, childPrefix)
	}
}

// insert keeps the first node seen for a path so that duplicate names
// resolve to the earliest node in traversal order.
func (idx *Index) insert(path string, n *design.Node) {
	if _, ok := idx.nodes[path]; ok {
		return
	}
	idx.nodes[path] = n
	idx.keys = append(idx.keys, path)
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + Separator + name
}

// Len returns the number of indexed paths.
func (idx *Index) Len() int { return len(idx.keys) }

// Paths returns the indexed paths in insertion order.
func (idx *Index) Paths() []string {
	out := make([]string, len(idx.keys))
	copy(out, idx.keys)
	return out
}

// Get returns the node stored under exactly path.
func (idx *Index) Get(path string) (*design.Node, bool) {
	n, ok := idx.nodes[path]
	return n, ok
}

// Lookup resolves a text-content path to a node.
//
// The first segment of query names the source file and is dropped before an
// exact match is tried. Failing that, the last segment (the leaf name) is
// matched against every indexed path that equals it or ends with "/"+leaf,
// returning the first such path in insertion order. The returned string is
// the indexed path that matched.
func (idx *Index) Lookup(query string) (*design.Node, string, bool) {
	segs := Split(query)
	if len(segs) == 0 {
		return nil, "", false
	}

	normalized := strings.Join(segs[1:], Separator)
	if n, ok := idx.nodes[normalized]; ok {
		return n, normalized, true
	}

	leaf := segs[len(segs)-1]
	suffix := Separator + leaf
	for _, key := range idx.keys {
		if key == leaf || strings.HasSuffix(key, suffix) {
			return idx.nodes[key], key, true
		}
	}
	return nil, "", false
}

// Split breaks a path into its segments. An empty path has no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, Separator)
}

// Leaf returns the last segment of path.
func Leaf(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}
