// Package extract runs one annotation extraction: screen detail, meta
// document, then tree reconstruction for the selected layer.
package extract

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/MalithGihan/annotation-extractor/internal/annotation"
	"github.com/MalithGihan/annotation-extractor/internal/codesign"
	"github.com/MalithGihan/annotation-extractor/internal/ingest"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

var (
	// ErrNotFound means the selector matched no layer of the screen.
	ErrNotFound   = errors.New("layer not found")
	ErrNoMetaURL  = errors.New("screen has no meta_url")
	ErrNoSelector = errors.New("an object id or a layer name is required")
	ErrNoDesign   = errors.New("a design id or design page URL is required")
	ErrNoScreen   = errors.New("a screen id is required")
)

// Source is the part of codesign.Client the pipeline needs.
type Source interface {
	ScreenDetail(ctx context.Context, designID, screenID string) (types.ScreenDetail, error)
	MetaDocument(ctx context.Context, metaURL string) (types.MetaDocument, error)
}

type Request struct {
	DesignID string `json:"designId,omitempty"`
	// PageURL is a design page URL the design id can be read from.
	PageURL  string `json:"url,omitempty"`
	ScreenID string `json:"screenId,omitempty"`
	annotation.Selector
}

func (r Request) designID() (string, error) {
	if r.DesignID != "" {
		return r.DesignID, nil
	}
	if id, ok := codesign.ParseDesignID(r.PageURL); ok {
		return id, nil
	}
	return "", ErrNoDesign
}

type Extractor struct {
	src    Source
	logger *log.Logger
}

func New(src Source, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{src: src, logger: logger}
}

// Run fetches the screen's meta document and returns the sanitized tree
// rooted at the selected layer.
func (e *Extractor) Run(ctx context.Context, req Request) (types.AnnotationNode, error) {
	if req.Selector.IsZero() {
		return types.AnnotationNode{}, ErrNoSelector
	}
	designID, err := req.designID()
	if err != nil {
		return types.AnnotationNode{}, err
	}
	if req.ScreenID == "" {
		return types.AnnotationNode{}, ErrNoScreen
	}

	detail, err := e.src.ScreenDetail(ctx, designID, req.ScreenID)
	if err != nil {
		return types.AnnotationNode{}, errors.Wrapf(err, "screen %s/%s", designID, req.ScreenID)
	}
	if detail.MetaURL == "" {
		return types.AnnotationNode{}, errors.Wrapf(ErrNoMetaURL, "screen %s", req.ScreenID)
	}

	doc, err := e.src.MetaDocument(ctx, detail.MetaURL)
	if err != nil {
		return types.AnnotationNode{}, errors.Wrapf(err, "meta document for screen %s", req.ScreenID)
	}
	e.logger.Debug("meta document fetched", "design", designID, "screen", req.ScreenID,
		"groups", len(doc.Groups), "layers", len(doc.Layers))

	return FromDocument(doc, req.Selector)
}

// FromDocument extracts the selected tree from an already loaded document.
func FromDocument(doc types.MetaDocument, sel annotation.Selector) (types.AnnotationNode, error) {
	if sel.IsZero() {
		return types.AnnotationNode{}, ErrNoSelector
	}
	tree, ok, err := annotation.Extract(ingest.Flatten(doc), sel)
	if err != nil {
		return types.AnnotationNode{}, err
	}
	if !ok {
		return types.AnnotationNode{}, errors.Wrapf(ErrNotFound, "%s", sel)
	}
	return tree, nil
}
