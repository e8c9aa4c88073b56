// SPDX-License-Identifier: MPL-2.0

// Package module resolves registered modules against the project tree.
//
// A module "has" a resource (service provider, routes, factory, seeder) when
// its options say so; when the options are silent the configured file-check
// pattern is probed on disk.
package module
