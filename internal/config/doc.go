// SPDX-License-Identifier: MPL-2.0

// Package config loads themepack configuration with Viper, using CUE as the
// file format.
//
// Values are layered from built-in defaults, then config.cue (found through
// --config, the platform config directory, or the working directory), then
// THEMEPACK_* environment variables. The file is validated against the
// embedded config_schema.cue before it is merged.
package config
