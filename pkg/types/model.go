package types

import "encoding/json"

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// StyleDescriptor is one entry of fills/borders/shadows/effects. Its shape
// varies per design tool version so it is kept as a generic record.
type StyleDescriptor map[string]any

// AnnotationNode is one layer or group of a screen's annotation graph.
// Children is only set on reconstructed trees, never on flat records.
type AnnotationNode struct {
	Name              string            `json:"name"`
	Type              string            `json:"type"` // group|layer
	ObjectID          string            `json:"object_id"`
	ParentID          string            `json:"parent_id"`
	RelativeTransform [][]float64       `json:"relativeTransform,omitempty"`
	AbsoluteTransform [][]float64       `json:"absoluteTransform,omitempty"`
	X                 float64           `json:"x"`
	Y                 float64           `json:"y"`
	Width             float64           `json:"width"`
	Height            float64           `json:"height"`
	Rect              *Rect             `json:"rect,omitempty"`
	RealRect          *Rect             `json:"realRect,omitempty"`
	CSS               []string          `json:"css,omitempty"`
	Fills             []StyleDescriptor `json:"fills,omitempty"`
	Borders           []StyleDescriptor `json:"borders,omitempty"`
	Shadows           []StyleDescriptor `json:"shadows,omitempty"`
	Effects           []StyleDescriptor `json:"effects,omitempty"`
	Radius            []float64         `json:"radius,omitempty"`
	Rotation          *float64          `json:"rotation,omitempty"`
	Opacity           *float64          `json:"opacity,omitempty"`
	LayerIndex        *int              `json:"layerIndex,omitempty"`

	// export/symbol bookkeeping, dropped from extracted trees
	MarkedForExport     json.RawMessage `json:"markedForExport,omitempty"`
	GetCSSAsyncSupport  json.RawMessage `json:"getCSSAsyncSupport,omitempty"`
	SymbolDescription   json.RawMessage `json:"symbolDescription,omitempty"`
	SymbolID            json.RawMessage `json:"symbolId,omitempty"`
	SymbolName          json.RawMessage `json:"symbolName,omitempty"`
	ComponentProperties json.RawMessage `json:"componentProperties,omitempty"`
	DocumentationLinks  json.RawMessage `json:"documentationLinks,omitempty"`

	Children []AnnotationNode `json:"children,omitempty"`
}

// MetaDocument is the JSON behind a screen's meta_url.
type MetaDocument struct {
	Groups []AnnotationNode `json:"groups"`
	Layers []AnnotationNode `json:"layers"`
}

type Screen struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ThumbnailURL   string `json:"thumbnail_url"`
	MetaURL        string `json:"meta_url,omitempty"`
	PreviewPath    string `json:"preview_path,omitempty"`
	CDNHost        string `json:"cdn_host,omitempty"`
	FullPreviewURL string `json:"full_preview_url,omitempty"`
}

// PreviewURL picks the best preview image available for the screen.
func (s Screen) PreviewURL() string {
	switch {
	case s.FullPreviewURL != "":
		return s.FullPreviewURL
	case s.CDNHost != "" && s.PreviewPath != "":
		return joinURL(s.CDNHost, s.PreviewPath)
	default:
		return s.ThumbnailURL
	}
}

type ScreenList struct {
	Data []Screen `json:"data"`
}

type ScreenDetail struct {
	Screen
}

func joinURL(host, path string) string {
	for len(host) > 0 && host[len(host)-1] == '/' {
		host = host[:len(host)-1]
	}
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	if len(host) < 4 || host[:4] != "http" {
		host = "https://" + host
	}
	return host + "/" + path
}
