// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

// ErrMalformedArchiveManifest is returned when the manifest embedded in a
// package is not valid JSON or does not match the archive manifest schema.
var ErrMalformedArchiveManifest = errors.New("malformed archive manifest")

//go:embed archive.schema.json
var archiveSchemaJSON []byte

var (
	archiveSchemaOnce sync.Once
	archiveSchema     *jsonschema.Schema
	errArchiveSchema  error
)

func loadArchiveSchema() (*jsonschema.Schema, error) {
	archiveSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		archiveSchema, errArchiveSchema = compiler.Compile(archiveSchemaJSON)
		if errArchiveSchema != nil {
			errArchiveSchema = fmt.Errorf("compile archive manifest schema: %w", errArchiveSchema)
		}
	})
	return archiveSchema, errArchiveSchema
}

// DecodeArchive parses the manifest stored inside a package archive. The
// document must satisfy the embedded archive manifest schema; name and
// version are mandatory, created_at and metadata are optional.
func DecodeArchive(data []byte) (*Archive, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedArchiveManifest)
	}

	schema, err := loadArchiveSchema()
	if err != nil {
		return nil, err
	}
	if result := schema.ValidateJSON(data); !result.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchiveManifest, result.Errors)
	}

	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedArchiveManifest, err)
	}
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	return &a, nil
}
