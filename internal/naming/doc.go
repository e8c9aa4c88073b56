// SPDX-License-Identifier: MPL-2.0

// Package naming normalises user-supplied module, submodule and migration names
// into the identifier forms used for directories, classes and file names.
package naming
