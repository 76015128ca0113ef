package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/meta.schema.json
var metaSchema []byte

const schemaURL = "meta.schema.json"

// ErrInvalidDocument wraps every schema or syntax failure.
var ErrInvalidDocument = errors.New("invalid meta document")

var (
	once    sync.Once
	schema  *jsonschema.Schema
	loadErr error
)

func load() {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(metaSchema)); err != nil {
		loadErr = err
		return
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		loadErr = err
		return
	}
	schema = s
}

// Document validates a raw meta document against the embedded schema.
func Document(b []byte) error {
	once.Do(load)
	if loadErr != nil {
		return errors.Wrap(loadErr, "load meta schema")
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return errors.Mark(errors.Wrap(err, "meta document is not JSON"), ErrInvalidDocument)
	}
	return validateValue(v)
}

func validateValue(v any) error {
	if err := schema.Validate(v); err != nil {
		return errors.Mark(errors.Wrap(err, "meta document failed schema validation"), ErrInvalidDocument)
	}
	return nil
}
