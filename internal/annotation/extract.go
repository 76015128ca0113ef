package annotation

import "github.com/MalithGihan/annotation-extractor/pkg/types"

// Selector picks the root layer. ObjectID takes precedence over Name.
type Selector struct {
	ObjectID string `json:"objectId,omitempty"`
	Name     string `json:"name,omitempty"`
}

func (s Selector) IsZero() bool { return s.ObjectID == "" && s.Name == "" }

func (s Selector) String() string {
	if s.ObjectID != "" {
		return "object_id=" + s.ObjectID
	}
	return "name=" + s.Name
}

// Extract resolves the selected root in nodes, rebuilds its subtree and
// sanitizes it. ok is false when nothing matches the selector.
func Extract(nodes []types.AnnotationNode, sel Selector) (tree types.AnnotationNode, ok bool, err error) {
	idx := BuildIndex(nodes)

	var root types.AnnotationNode
	switch {
	case sel.ObjectID != "":
		root, ok = ResolveRootByID(idx, sel.ObjectID)
	case sel.Name != "":
		root, ok = ResolveRootByName(idx, sel.Name)
	}
	if !ok {
		return types.AnnotationNode{}, false, nil
	}

	built, err := BuildSubtree(idx, root)
	if err != nil {
		return types.AnnotationNode{}, false, err
	}
	return Sanitize(built), true, nil
}

func ByObjectID(nodes []types.AnnotationNode, objectID string) (types.AnnotationNode, bool, error) {
	return Extract(nodes, Selector{ObjectID: objectID})
}
