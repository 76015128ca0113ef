package ingest

import (
	"path/filepath"
	"strings"

	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

func DetectType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".json":
		return "meta"
	default:
		return "unknown"
	}
}

// Flatten turns a meta document into the flat node list the annotation
// index works on: groups first, then layers.
func Flatten(doc types.MetaDocument) []types.AnnotationNode {
	nodes := make([]types.AnnotationNode, 0, len(doc.Groups)+len(doc.Layers))
	nodes = append(nodes, doc.Groups...)
	nodes = append(nodes, doc.Layers...)
	return nodes
}

type ParsedFile struct {
	Name  string
	Doc   types.MetaDocument
	Notes []string
}

func (p ParsedFile) Nodes() []types.AnnotationNode { return Flatten(p.Doc) }
