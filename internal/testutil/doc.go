// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by modkit tests: a controllable
// clock for timestamped output, and filesystem helpers that fail the test
// instead of returning errors.
package testutil
