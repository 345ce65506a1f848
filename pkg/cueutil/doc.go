// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE parsing flow shared by the configuration
// loader and the package metadata reader:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to a Go value
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseFile[map[string]any](
//	    schemaBytes,
//	    path,
//	    "#Config",
//	    cueutil.WithConcrete(false),
//	)
//	if err != nil {
//	    return nil, err  // Error includes CUE path for debugging
//	}
//	return *result.Value, nil
package cueutil
