package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/MalithGihan/annotation-extractor/internal/ingest"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

const metaFile = "meta.json"

var ErrJobNotFound = errors.New("job not found")

type FS struct{ Root string }

func New(root string) (*FS, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FS{Root: root}, nil
}

func (s *FS) JobDir(id string) string { return filepath.Join(s.Root, id) }

func (s *FS) MkJob(id string) (string, error) {
	j := s.JobDir(id)
	return j, os.MkdirAll(filepath.Join(j, "trees"), 0o755)
}

// SaveMeta validates raw and stores it under a new job id.
func (s *FS) SaveMeta(raw []byte) (string, error) {
	if _, err := ingest.DecodeBytes(raw); err != nil {
		return "", err
	}
	id := uuid.NewString()
	dir, err := s.MkJob(id)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, metaFile), raw, 0o644); err != nil {
		return "", errors.Wrapf(err, "write job %s", id)
	}
	return id, nil
}

func (s *FS) LoadMeta(id string) (types.MetaDocument, error) {
	if !validID(id) {
		return types.MetaDocument{}, errors.Wrapf(ErrJobNotFound, "%q", id)
	}
	p, err := ingest.ParseMeta(filepath.Join(s.JobDir(id), metaFile))
	if errors.Is(err, os.ErrNotExist) {
		return types.MetaDocument{}, errors.Wrapf(ErrJobNotFound, "%q", id)
	}
	if err != nil {
		return types.MetaDocument{}, err
	}
	return p.Doc, nil
}

// SaveTree keeps an extracted tree next to the document it came from.
func (s *FS) SaveTree(id string, sel string, tree types.AnnotationNode) (string, error) {
	if !validID(id) {
		return "", errors.Wrapf(ErrJobNotFound, "%q", id)
	}
	b, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", err
	}
	p := filepath.Join(s.JobDir(id), "trees", fileSafe(sel)+".json")
	if err := os.WriteFile(p, b, 0o644); err != nil {
		return "", errors.Wrapf(err, "write tree for job %s", id)
	}
	return p, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '=':
			return r
		default:
			return '_'
		}
	}, s)
}
