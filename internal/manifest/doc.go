// SPDX-License-Identifier: MPL-2.0

// Package manifest maintains the module cache file, a TOML document listing
// the service provider classes of active modules. The file is derived from
// the configuration and the module tree and may be deleted at any time.
package manifest
