// Package util provides small helpers shared across the engine that are
// not available (or not convenient) in the standard library.
package util

import (
	"runtime"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.English)

// Abs returns the absolute value of n without a branch.
func Abs(n int) int {
	y := n >> 63
	return (n ^ y) - y
}

// Min returns the smaller of x and y.
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Max returns the larger of x and y.
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MemStat returns a formatted one-line summary of current heap usage, used
// in debug log lines around large allocations (TT resize, variant load).
func MemStat() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return out.Sprintf("alloc=%d MB sys=%d MB numGC=%d", m.Alloc/1024/1024, m.Sys/1024/1024, m.NumGC)
}

// FormatInt formats n with locale-aware thousands separators, used for
// human-readable node counts and TT sizes in log output.
func FormatInt(n uint64) string {
	return out.Sprintf("%d", n)
}
