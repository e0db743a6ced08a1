//go:build !debug

// Package assert provides a standardized way to write runtime assertions
// that compile away to nothing in release builds.
package assert

// DEBUG gates whether Assert actually evaluates. Kept as a const so the
// compiler eliminates callers wrapped in `if assert.DEBUG { ... }`.
const DEBUG = false

// Assert is a no-op in release builds. Callers still pay for evaluating
// arguments, so always guard calls with `if assert.DEBUG { ... }`.
func Assert(test bool, msg string, a ...interface{}) {}
