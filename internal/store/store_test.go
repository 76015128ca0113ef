package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MalithGihan/annotation-extractor/internal/validate"
	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

const doc = `{"groups":[{"name":"root","object_id":"1","parent_id":"0"}],"layers":[]}`

func TestFS_SaveAndLoadMeta(t *testing.T) {
	st, err := New(filepath.Join(t.TempDir(), "projects"))
	require.NoError(t, err)

	id, err := st.SaveMeta([]byte(doc))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	got, err := st.LoadMeta(id)
	require.NoError(t, err)
	require.Len(t, got.Groups, 1)
	assert.Equal(t, "root", got.Groups[0].Name)
}

func TestFS_SaveMetaRejectsInvalid(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = st.SaveMeta([]byte(`{"groups":"x"}`))
	assert.True(t, errors.Is(err, validate.ErrInvalidDocument))

	entries, err := os.ReadDir(st.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFS_LoadMetaUnknownJob(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = st.LoadMeta(uuid.NewString())
	assert.True(t, errors.Is(err, ErrJobNotFound))

	_, err = st.LoadMeta("../../etc")
	assert.True(t, errors.Is(err, ErrJobNotFound))
}

func TestFS_SaveTree(t *testing.T) {
	st, err := New(t.TempDir())
	require.NoError(t, err)
	id, err := st.SaveMeta([]byte(doc))
	require.NoError(t, err)

	p, err := st.SaveTree(id, "name=Nav Bar/Back", types.AnnotationNode{Name: "Nav Bar/Back", ObjectID: "1"})
	require.NoError(t, err)
	assert.Equal(t, "name=Nav_Bar_Back.json", filepath.Base(p))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"name\": \"Nav Bar/Back\"")
}
