// Package annotation rebuilds layer trees from the flat annotation records
// of a screen and prunes them down to the fields worth copying.
package annotation

import "github.com/MalithGihan/annotation-extractor/pkg/types"

// Index answers id, name and parent lookups over a flat node list.
// The records it was built from are never modified.
type Index struct {
	nodes    []types.AnnotationNode
	byID     map[string]int
	children map[string][]int
}

func BuildIndex(nodes []types.AnnotationNode) *Index {
	idx := &Index{
		nodes:    nodes,
		byID:     make(map[string]int, len(nodes)),
		children: make(map[string][]int),
	}
	for i, n := range nodes {
		if n.ObjectID != "" {
			// duplicate ids: the later record wins
			idx.byID[n.ObjectID] = i
		}
		idx.children[n.ParentID] = append(idx.children[n.ParentID], i)
	}
	return idx
}

func (idx *Index) Len() int { return len(idx.nodes) }

func (idx *Index) FindByID(objectID string) (types.AnnotationNode, bool) {
	i, ok := idx.byID[objectID]
	if !ok {
		return types.AnnotationNode{}, false
	}
	return idx.nodes[i], true
}

// FindByName returns the first record named name in input order. Only the
// flat records are scanned, never their Children.
func (idx *Index) FindByName(name string) (types.AnnotationNode, bool) {
	for _, n := range idx.nodes {
		if n.Name == name {
			return n, true
		}
	}
	return types.AnnotationNode{}, false
}

// ChildrenOf returns the direct children of parentID in input order.
func (idx *Index) ChildrenOf(parentID string) []types.AnnotationNode {
	pos := idx.children[parentID]
	if len(pos) == 0 {
		return nil
	}
	out := make([]types.AnnotationNode, 0, len(pos))
	for _, i := range pos {
		out = append(out, idx.nodes[i])
	}
	return out
}

// FindByName searches nodes depth-first, left to right: a node's children
// are visited before its next sibling. The first match wins.
func FindByName(nodes []types.AnnotationNode, name string) (types.AnnotationNode, bool) {
	for _, n := range nodes {
		if n.Name == name {
			return n, true
		}
		if len(n.Children) > 0 {
			if found, ok := FindByName(n.Children, name); ok {
				return found, true
			}
		}
	}
	return types.AnnotationNode{}, false
}
