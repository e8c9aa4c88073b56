// SPDX-License-Identifier: MPL-2.0

// Package config loads and writes modkit's project configuration.
//
// Configuration lives in config/modules.cue under the project base directory (or the
// file named by --config). The file is validated against the embedded #Config schema
// (config_schema.cue), merged into Viper over the defaults, and decoded into Config.
// MODKIT_* environment variables override scalar settings.
//
// The module registry is part of the same file. New modules are registered by
// decoding the file, appending an entry and regenerating it with GenerateCUE, so
// the file is always rewritten from structured data rather than patched as text.
package config
