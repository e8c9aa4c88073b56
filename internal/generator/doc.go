// SPDX-License-Identifier: MPL-2.0

// Package generator creates modules, submodule files and migrations from the
// stub tree and records new modules in the configuration file.
package generator
