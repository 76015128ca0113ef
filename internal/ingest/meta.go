package ingest

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/MalithGihan/annotation-extractor/internal/validate"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

// ErrUnsupported is returned for files that are not meta documents.
var ErrUnsupported = errors.New("unsupported file type")

func ParseMeta(path string) (ParsedFile, error) {
	if DetectType(path) != "meta" {
		return ParsedFile{Name: path}, errors.Wrapf(ErrUnsupported, "%s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return ParsedFile{Name: path}, err
	}
	doc, err := DecodeBytes(b)
	if err != nil {
		return ParsedFile{Name: path}, errors.Wrapf(err, "parse %s", path)
	}
	p := ParsedFile{Name: path, Doc: doc}
	if len(doc.Groups)+len(doc.Layers) == 0 {
		p.Notes = append(p.Notes, "meta: document has no groups or layers")
	}
	return p, nil
}

// DecodeBytes validates b against the meta document schema and decodes it.
func DecodeBytes(b []byte) (types.MetaDocument, error) {
	if err := validate.Document(b); err != nil {
		return types.MetaDocument{}, err
	}
	var doc types.MetaDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return types.MetaDocument{}, errors.Wrap(err, "decode meta document")
	}
	return doc, nil
}
