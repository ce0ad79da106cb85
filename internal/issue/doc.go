// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into messages the user can act on.
//
// It has two halves: ActionableError attaches the attempted operation,
// the resource involved, and recovery suggestions to an error, and the
// rendered issue catalog holds Markdown help texts for known failure
// modes (missing package manager, unreachable registry, absent shell
// history) that commands print to stderr via glamour.
package issue
