// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample saturation helpers used by the mixer and
// the floating point decoders.
package utils

import "math"

// ClampInt16 saturates a widened sum to the signed 16-bit range.
func ClampInt16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// Float32ToInt16 converts a normalized [-1, 1] sample to PCM16. Values
// outside the range are clamped first.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing.
	return int16(x * math.MaxInt16)
}

// Float32ToPCM16 converts a whole slice, writing into dst.
// dst must be at least as long as src.
func Float32ToPCM16(dst []int16, src []float32) {
	for i, x := range src {
		dst[i] = Float32ToInt16(x)
	}
}
