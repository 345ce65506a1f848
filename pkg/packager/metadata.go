// SPDX-License-Identifier: MPL-2.0

package packager

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/3000studios/themepack/pkg/cueutil"

	"github.com/pelletier/go-toml/v2"
)

var (
	// ErrUnsupportedMetadataFormat is returned for metadata files that are not
	// JSON, TOML or CUE.
	ErrUnsupportedMetadataFormat = errors.New("unsupported metadata format")
	// ErrInvalidMetadata is returned when metadata cannot be decoded into an
	// object or violates the #Metadata schema.
	ErrInvalidMetadata = errors.New("invalid metadata")
)

//go:embed metadata.cue
var metadataSchema []byte

// maxExactInteger bounds the integers that survive the canonical manifest
// encoding, which stores every number as an IEEE 754 double.
const maxExactInteger = 1 << 53

// ParseMetadataJSON decodes a JSON object given on the command line.
// Numbers become float64; integers beyond ±2^53 are rejected.
func ParseMetadataJSON(data string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %w", ErrInvalidMetadata, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: malformed JSON: unexpected data after the object", ErrInvalidMetadata)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidMetadata)
	}
	return NormalizeMetadata(m)
}

// NormalizeMetadata returns a copy of m whose numbers can be stored in the
// package manifest without loss. JSON numbers become float64 and integers
// outside ±2^53 fail with ErrInvalidMetadata.
func NormalizeMetadata(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	out, err := normalizeValue("metadata", m)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func normalizeValue(path string, v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			n, err := normalizeValue(path+"."+k, e)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			n, err := normalizeValue(fmt.Sprintf("%s[%d]", path, i), e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case json.Number:
		return normalizeJSONNumber(path, x)
	case int:
		return x, checkExactInteger(path, big.NewInt(int64(x)))
	case int64:
		return x, checkExactInteger(path, big.NewInt(x))
	case uint64:
		return x, checkExactInteger(path, new(big.Int).SetUint64(x))
	case *big.Int:
		if err := checkExactInteger(path, x); err != nil {
			return nil, err
		}
		return x.Int64(), nil
	default:
		return v, nil
	}
}

func normalizeJSONNumber(path string, n json.Number) (any, error) {
	if i, ok := new(big.Int).SetString(n.String(), 10); ok {
		if err := checkExactInteger(path, i); err != nil {
			return nil, err
		}
		return float64(i.Int64()), nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: number %s out of range", ErrInvalidMetadata, path, n)
	}
	return f, nil
}

func checkExactInteger(path string, i *big.Int) error {
	if i.CmpAbs(big.NewInt(maxExactInteger)) > 0 {
		return fmt.Errorf("%w: %s: integer %s cannot be stored exactly (limit ±2^53)", ErrInvalidMetadata, path, i)
	}
	return nil
}

// LoadMetadataFile reads package metadata from a .json, .toml or .cue file.
// CUE files are checked against the embedded #Metadata schema.
func LoadMetadataFile(path string) (map[string]any, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata file: %w", err)
		}
		m, err := ParseMetadataJSON(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	case ".toml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata file: %w", err)
		}
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %s: malformed TOML: %w", ErrInvalidMetadata, path, err)
		}
		if m == nil {
			m = map[string]any{}
		}
		return NormalizeMetadata(m)
	case ".cue":
		result, err := cueutil.ParseFile[map[string]any](metadataSchema, path, "#Metadata")
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
		}
		return NormalizeMetadata(*result.Value)
	default:
		return nil, fmt.Errorf("%w: %q (use .json, .toml or .cue)", ErrUnsupportedMetadataFormat, ext)
	}
}
