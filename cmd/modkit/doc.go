// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for modkit.
//
// This package implements the Cobra command hierarchy for the modkit CLI:
// project initialization, module, submodule and migration generation, the
// service provider cache, stub publishing and configuration inspection.
package cmd
