// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the size of any CUE file read from disk.
const DefaultMaxFileSize int64 = 1 << 20

// DecodeMap unifies data with the schema definition at schemaPath, validates the
// result and decodes it to a map. Optional fields that are absent stay absent.
func DecodeMap(schema, data []byte, schemaPath, filename string) (map[string]any, error) {
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, FormatError(err, filename)
	}

	var out map[string]any
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, filename)
	}
	if out == nil {
		out = map[string]any{}
	}

	return out, nil
}
