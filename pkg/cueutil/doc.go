// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema and decodes
// them into plain Go maps.
//
// The flow is the same everywhere a CUE file is read:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate (non-concrete, since most fields are optional) and decode
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	doc, err := cueutil.DecodeMap(schema, data, "#Config", "config/modules.cue")
//	if err != nil {
//	    return nil, err // error carries the CUE path of the bad field
//	}
package cueutil
