// Package output renders extracted trees for people: indented JSON on a
// writer or on the system clipboard.
package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
)

// ErrNoClipboard is returned where no clipboard utility is available.
var ErrNoClipboard = errors.New("clipboard is not available on this system")

var (
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
	writeClipboard       = clipboard.WriteAll
)

// JSON encodes v with two space indentation. Struct fields keep their
// declared order and map keys are sorted, so output is stable.
func JSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encode json")
	}
	return buf.Bytes(), nil
}

func Write(w io.Writer, v any) error {
	b, err := JSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Copy puts v on the clipboard as indented JSON.
func Copy(v any) error {
	if clipboardUnsupported() {
		return ErrNoClipboard
	}
	b, err := JSON(v)
	if err != nil {
		return err
	}
	return CopyText(string(bytes.TrimRight(b, "\n")))
}

// CopyText puts s on the clipboard as is.
func CopyText(s string) error {
	if clipboardUnsupported() {
		return ErrNoClipboard
	}
	if err := writeClipboard(s); err != nil {
		return errors.Wrap(err, "copy to clipboard")
	}
	return nil
}
