// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for modkit.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. Issue holds longer Markdown guidance for the failures a
// user is most likely to hit, rendered for the terminal with glamour.
package issue
