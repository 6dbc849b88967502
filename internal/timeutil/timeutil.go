// Package timeutil samples the monotonic clock and converts between the
// units the two protocols speak (milliseconds for UCI, centiseconds and
// seconds for CECP).
package timeutil

import (
	"time"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Now returns a monotonic clock reading.
func Now() time.Time {
	return time.Now()
}

// Since returns the time elapsed since start.
func Since(start time.Time) time.Duration {
	return time.Since(start)
}

func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func Centis(cs int) time.Duration {
	return time.Duration(cs) * 10 * time.Millisecond
}

func Seconds(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// ToMillis truncates d to whole milliseconds.
func ToMillis(d time.Duration) int64 {
	return d.Milliseconds()
}

// ToCentis truncates d to whole centiseconds, the unit CECP uses for both
// clocks and PV timing.
func ToCentis(d time.Duration) int64 {
	return d.Milliseconds() / 10
}

// NodesPerSecond guards against a zero elapsed time on very short searches.
func NodesPerSecond(nodes uint64, elapsed time.Duration) uint64 {
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	return nodes * 1000 / uint64(ms)
}

// Min returns the smaller of x or y.
func Min[T Number](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the larger of x or y.
func Max[T Number](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts f to the inclusive range [low, high].
func Clamp[T Number](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}
