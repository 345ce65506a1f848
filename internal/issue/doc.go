// SPDX-License-Identifier: MPL-2.0

// Package issue carries themepack's user-facing error guidance: ActionableError
// for "what failed and what to try" messages, and a catalog of markdown issue
// pages rendered with glamour when a command fails.
package issue
