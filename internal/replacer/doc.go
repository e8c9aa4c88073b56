// SPDX-License-Identifier: MPL-2.0

// Package replacer substitutes name-derived tokens into stub contents and destination paths.
//
// A token is a key wrapped in a fixed delimiter pair: {key} inside file contents and
// %key% inside destination paths. Substitution is literal and single-pass, so values
// that themselves look like tokens are never expanded again.
package replacer
