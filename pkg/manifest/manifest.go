// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/gowebpki/jcs"
)

// FileName is the manifest file expected at the root of a theme directory
// and written as the first entry of every package archive.
const FileName = "theme.json"

var (
	// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
	ErrInvalidManifest = errors.New("invalid theme manifest")
	// ErrMissingField is the sentinel error wrapped by MissingFieldError.
	ErrMissingField = errors.New("missing manifest field")
	// ErrInvalidField is the sentinel error wrapped by InvalidFieldError.
	ErrInvalidField = errors.New("invalid manifest field")
)

// requiredFields lists the string fields every theme manifest must carry, in
// the order they are checked and reported.
var requiredFields = []string{"name", "version"}

type (
	// Theme is the author-supplied manifest found at the root of a theme
	// source directory. Keys other than name and version are kept in Extra.
	Theme struct {
		Name    string
		Version string
		Extra   map[string]any
	}

	// Archive is the manifest synthesized by the packager and embedded as
	// the first entry of a package archive.
	Archive struct {
		Name      string         `json:"name"`
		Version   string         `json:"version"`
		CreatedAt string         `json:"created_at"`
		Metadata  map[string]any `json:"metadata"`
	}

	// InvalidManifestError is returned when a theme manifest cannot be used.
	// It wraps ErrInvalidManifest for errors.Is() compatibility and collects
	// one error per problem found (syntax, missing or malformed fields).
	InvalidManifestError struct {
		FieldErrors []error
	}

	// MissingFieldError reports a required field absent from the manifest.
	MissingFieldError struct {
		Field string
	}

	// InvalidFieldError reports a required field with the wrong type or an
	// empty value.
	InvalidFieldError struct {
		Field  string
		Reason string
	}
)

// Error implements the error interface for InvalidManifestError.
func (e *InvalidManifestError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid %s: %v", FileName, e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid %s: %d problem(s)", FileName, len(e.FieldErrors))
}

// Unwrap returns ErrInvalidManifest for errors.Is() compatibility.
func (e *InvalidManifestError) Unwrap() error { return ErrInvalidManifest }

// Error implements the error interface for MissingFieldError.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field in %s: %s", FileName, e.Field)
}

// Unwrap returns ErrMissingField for errors.Is() compatibility.
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// Error implements the error interface for InvalidFieldError.
func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field in %s: %s %s", FileName, e.Field, e.Reason)
}

// Unwrap returns ErrInvalidField for errors.Is() compatibility.
func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }

// ParseTheme decodes a theme manifest and checks its required fields.
// Every problem is collected into a single *InvalidManifestError so callers
// can report all of them at once.
func ParseTheme(data []byte) (*Theme, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &InvalidManifestError{FieldErrors: []error{fmt.Errorf("malformed JSON: %w", err)}}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &InvalidManifestError{FieldErrors: []error{errors.New("expected a JSON object")}}
	}

	var errs []error
	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		value, present := obj[field]
		if !present {
			errs = append(errs, &MissingFieldError{Field: field})
			continue
		}
		s, isString := value.(string)
		switch {
		case !isString:
			errs = append(errs, &InvalidFieldError{Field: field, Reason: fmt.Sprintf("must be a string, got %s", jsonKind(value))})
		case s == "":
			errs = append(errs, &InvalidFieldError{Field: field, Reason: "must not be empty"})
		default:
			values[field] = s
		}
	}
	if len(errs) > 0 {
		return nil, &InvalidManifestError{FieldErrors: errs}
	}

	extra := maps.Clone(obj)
	for _, field := range requiredFields {
		delete(extra, field)
	}

	return &Theme{
		Name:    values["name"],
		Version: values["version"],
		Extra:   extra,
	}, nil
}

// NewArchive builds the manifest embedded into a package. A nil metadata map
// is replaced by an empty one so the encoded document always has an object.
func NewArchive(name, version string, createdAt time.Time, metadata map[string]any) Archive {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Archive{
		Name:      name,
		Version:   version,
		CreatedAt: createdAt.UTC().Format(time.RFC3339),
		Metadata:  metadata,
	}
}

// Encode renders the archive manifest in RFC 8785 canonical JSON so the same
// manifest always produces the same bytes.
func (a Archive) Encode() ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	canonical, err := jcs.Transform(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize manifest: %w", err)
	}
	return canonical, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
