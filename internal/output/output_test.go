package output

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

func stubClipboard(t *testing.T, unsupported bool) *string {
	t.Helper()
	var got string
	origU, origW := clipboardUnsupported, writeClipboard
	clipboardUnsupported = func() bool { return unsupported }
	writeClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { clipboardUnsupported, writeClipboard = origU, origW })
	return &got
}

func TestJSON_StableAndIndented(t *testing.T) {
	node := types.AnnotationNode{
		Name: "a<b", ObjectID: "1",
		Fills: []types.StyleDescriptor{{"z": 1, "a": 2}},
	}
	b, err := JSON(node)
	require.NoError(t, err)

	s := string(b)
	assert.Contains(t, s, "\n  \"name\": \"a<b\",\n")
	assert.Less(t, bytes.Index(b, []byte(`"a": 2`)), bytes.Index(b, []byte(`"z": 1`)))

	again, err := JSON(node)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]bool{"ok": true}))
	assert.Equal(t, "{\n  \"ok\": true\n}\n", buf.String())
}

func TestCopy(t *testing.T) {
	got := stubClipboard(t, false)
	require.NoError(t, Copy(map[string]string{"name": "x"}))
	assert.Equal(t, "{\n  \"name\": \"x\"\n}", *got)
}

func TestCopy_Unsupported(t *testing.T) {
	stubClipboard(t, true)
	err := Copy(map[string]string{})
	assert.True(t, errors.Is(err, ErrNoClipboard))
}

func TestCopyText(t *testing.T) {
	got := stubClipboard(t, false)
	require.NoError(t, CopyText("https://cdn.example.com/thumbnail/750x1624/a.png"))
	assert.Equal(t, "https://cdn.example.com/thumbnail/750x1624/a.png", *got)

	stubClipboard(t, true)
	assert.True(t, errors.Is(CopyText("x"), ErrNoClipboard))
}
