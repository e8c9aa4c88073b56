// SPDX-License-Identifier: MPL-2.0

// Package stub resolves stub templates and renders them into module directories.
//
// A stub tree has three subtrees: module/ (the full module), submodule/
// (overrides used when generating files into an existing module) and
// migrations/. Only files ending in .stub are templates; a .stubignore file
// at the root excludes paths using gitignore syntax. The default tree is
// embedded in the binary and can be published to the project for editing.
package stub
