package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MalithGihan/annotation-extractor/pkg/types"
)

const screenFixture = "../../internal/ingest/testdata/screen.json"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ANNOX_STORE_ROOT", filepath.Join(t.TempDir(), "projects"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	resetFlags(t)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags(t)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags puts every flag back to its default and clears Changed, so
// flag groups and required flags are checked afresh by the next run.
func resetFlags(t *testing.T) {
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func TestExtractCommand_FromFile(t *testing.T) {
	out, err := run(t, "extract", "--file", screenFixture, "--name", "Card")
	require.NoError(t, err)

	var tree types.AnnotationNode
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "10", tree.ObjectID)
	assert.Nil(t, tree.RealRect)
	require.Len(t, tree.Children, 2)
	assert.True(t, strings.HasPrefix(out, "{\n  \"name\": \"Card\""))
}

func TestExtractCommand_NotFoundIsNotAnError(t *testing.T) {
	out, err := run(t, "extract", "--file", screenFixture, "--object-id", "999")
	require.NoError(t, err)
	assert.NotContains(t, out, "{")
}

func TestExtractCommand_NeedsSelector(t *testing.T) {
	_, err := run(t, "extract", "--file", screenFixture, "--name", "Card")
	require.NoError(t, err)

	_, err = run(t, "extract", "--file", screenFixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one of the flags in the group")
}

func TestSliceURLCommand(t *testing.T) {
	out, err := run(t, "slice-url",
		"--thumb", "https://cdn.example.com/img/abc/thumbnail/100x100/format/png",
		"--size", "750px x 1624px")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img/abc/thumbnail/750x1624/format/png\n", out)

	_, err = run(t, "slice-url", "--thumb", "https://cdn.example.com/a.png", "--size", "large")
	assert.Error(t, err)

	_, err = run(t, "slice-url", "--size", "750px x 1624px")
	assert.Error(t, err)
}

func TestIngestCommand(t *testing.T) {
	out, err := run(t, "ingest", screenFixture, "notes.txt")
	require.NoError(t, err)

	lines := strings.Fields(out)
	require.Len(t, lines, 1)
	_, err = uuid.Parse(lines[0])
	assert.NoError(t, err)
}
