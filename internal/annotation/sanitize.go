package annotation

import "github.com/MalithGihan/annotation-extractor/pkg/types"

// denylist names the JSON fields Sanitize always drops, whatever their value.
var denylist = []string{
	"markedForExport",
	"getCSSAsyncSupport",
	"symbolDescription",
	"symbolId",
	"symbolName",
	"componentProperties",
	"documentationLinks",
	"realRect",
}

// Sanitize returns a pruned copy of node: denylisted fields are dropped,
// empty lists become absent and children are sanitized the same way.
// node itself is left untouched.
func Sanitize(node types.AnnotationNode) types.AnnotationNode {
	out := node

	// denylist
	out.MarkedForExport = nil
	out.GetCSSAsyncSupport = nil
	out.SymbolDescription = nil
	out.SymbolID = nil
	out.SymbolName = nil
	out.ComponentProperties = nil
	out.DocumentationLinks = nil
	out.RealRect = nil

	// empty lists
	out.RelativeTransform = dropEmpty(out.RelativeTransform)
	out.AbsoluteTransform = dropEmpty(out.AbsoluteTransform)
	out.CSS = dropEmpty(out.CSS)
	out.Fills = dropEmpty(out.Fills)
	out.Borders = dropEmpty(out.Borders)
	out.Shadows = dropEmpty(out.Shadows)
	out.Effects = dropEmpty(out.Effects)
	out.Radius = dropEmpty(out.Radius)

	if len(node.Children) == 0 {
		out.Children = nil
		return out
	}
	children := make([]types.AnnotationNode, len(node.Children))
	for i, c := range node.Children {
		children[i] = Sanitize(c)
	}
	out.Children = children
	return out
}

func dropEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
