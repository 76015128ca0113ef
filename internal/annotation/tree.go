package annotation

import (
	"github.com/cockroachdb/errors"

	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

// ErrCyclicGraph means a parent_id chain loops back onto itself.
var ErrCyclicGraph = errors.New("cyclic annotation graph")

func ResolveRootByID(idx *Index, objectID string) (types.AnnotationNode, bool) {
	return idx.FindByID(objectID)
}

// ResolveRootByName scans the flat records only; they carry no children,
// so the first record in input order with that name is the root.
func ResolveRootByName(idx *Index, name string) (types.AnnotationNode, bool) {
	return idx.FindByName(name)
}

// BuildSubtree returns a copy of root with its descendants attached as
// Children. Nodes without descendants keep Children nil.
func BuildSubtree(idx *Index, root types.AnnotationNode) (types.AnnotationNode, error) {
	return buildSubtree(idx, root, map[string]bool{})
}

// path holds the object ids of the node's ancestors, root included.
func buildSubtree(idx *Index, node types.AnnotationNode, path map[string]bool) (types.AnnotationNode, error) {
	out := node
	out.Children = nil
	if node.ObjectID == "" {
		return out, nil
	}
	if path[node.ObjectID] {
		return types.AnnotationNode{}, errors.Wrapf(ErrCyclicGraph, "object %q is its own ancestor", node.ObjectID)
	}
	path[node.ObjectID] = true
	defer delete(path, node.ObjectID)

	kids := idx.ChildrenOf(node.ObjectID)
	if len(kids) == 0 {
		return out, nil
	}
	children := make([]types.AnnotationNode, 0, len(kids))
	for _, kid := range kids {
		sub, err := buildSubtree(idx, kid, path)
		if err != nil {
			return types.AnnotationNode{}, err
		}
		children = append(children, sub)
	}
	out.Children = children
	return out, nil
}
