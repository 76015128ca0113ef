package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/MalithGihan/annotation-extractor/internal/annotation"
	"github.com/MalithGihan/annotation-extractor/internal/codesign"
	"github.com/MalithGihan/annotation-extractor/internal/extract"
	"github.com/MalithGihan/annotation-extractor/internal/store"
	"github.com/MalithGihan/annotation-extractor/internal/validate"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

const maxUpload = 64 << 20

type ScreenLister interface {
	Screens(ctx context.Context, designID string) ([]types.Screen, error)
}

type Extractor interface {
	Run(ctx context.Context, req extract.Request) (types.AnnotationNode, error)
}

// RelayStatus is satisfied by *relay.Client; nil means no relay runs.
type RelayStatus interface {
	Connected() bool
}

type Deps struct {
	Screens   ScreenLister
	Extractor Extractor
	Store     *store.FS
	Relay     RelayStatus
	Logger    *log.Logger
}

type screenResp struct {
	types.Screen
	PreviewURL string `json:"preview_url"`
}

type relayResp struct {
	Success     bool `json:"success"`
	IsConnected bool `json:"isConnected"`
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"service":"annox"}`))
	})

	r.Get("/relay/status", func(w http.ResponseWriter, _ *http.Request) {
		out := relayResp{Success: true}
		if d.Relay != nil {
			out.IsConnected = d.Relay.Connected()
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/designs/{designId}/screens", func(w http.ResponseWriter, r *http.Request) {
		screens, err := d.Screens.Screens(r.Context(), chi.URLParam(r, "designId"))
		if err != nil {
			d.fail(w, err)
			return
		}
		out := make([]screenResp, 0, len(screens))
		for _, s := range screens {
			out = append(out, screenResp{Screen: s, PreviewURL: s.PreviewURL()})
		}
		writeJSON(w, http.StatusOK, out)
	})

	r.Get("/designs/{designId}/screens/{screenId}/annotation", func(w http.ResponseWriter, r *http.Request) {
		req := extract.Request{
			DesignID: chi.URLParam(r, "designId"),
			ScreenID: chi.URLParam(r, "screenId"),
			Selector: selectorFrom(r),
		}
		tree, err := d.Extractor.Run(r.Context(), req)
		if err != nil {
			d.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tree)
	})

	// Upload a meta document
	r.Post("/ingest", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUpload))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		jobID, err := d.Store.SaveMeta(body)
		if err != nil {
			d.fail(w, err)
			return
		}
		d.Logger.Info("meta document stored", "job", jobID, "bytes", len(body))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "jobId": jobID})
	})

	r.Get("/jobs/{id}/annotation", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, err := d.Store.LoadMeta(id)
		if err != nil {
			d.fail(w, err)
			return
		}
		sel := selectorFrom(r)
		tree, err := extract.FromDocument(doc, sel)
		if err != nil {
			d.fail(w, err)
			return
		}
		if _, err := d.Store.SaveTree(id, sel.String(), tree); err != nil {
			d.Logger.Warn("tree not saved", "job", id, "error", err)
		}
		writeJSON(w, http.StatusOK, tree)
	})

	return r
}

func selectorFrom(r *http.Request) annotation.Selector {
	q := r.URL.Query()
	return annotation.Selector{ObjectID: q.Get("objectId"), Name: q.Get("name")}
}

// fail maps pipeline errors onto status codes. Not-found selectors are a
// normal outcome and only logged at info level.
func (d Deps) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, extract.ErrNotFound), errors.Is(err, store.ErrJobNotFound):
		status = http.StatusNotFound
	case errors.Is(err, extract.ErrNoSelector), errors.Is(err, extract.ErrNoDesign),
		errors.Is(err, extract.ErrNoScreen), errors.Is(err, validate.ErrInvalidDocument):
		status = http.StatusBadRequest
	case errors.Is(err, annotation.ErrCyclicGraph):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, extract.ErrNoMetaURL), isUpstream(err):
		status = http.StatusBadGateway
	}
	if status == http.StatusNotFound {
		d.Logger.Info("nothing found", "error", err)
	} else {
		d.Logger.Error("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func isUpstream(err error) bool {
	var ue *url.Error
	return errors.Is(err, codesign.ErrStatus) || errors.As(err, &ue)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
