// SPDX-License-Identifier: MPL-2.0

// Package platform holds file naming rules that differ between operating systems.
package platform
