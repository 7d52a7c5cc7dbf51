// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"slices"
	"time"
)

const (
	PreferredSampleRate = 48000
	FallbackSampleRate  = 44100
	OutputChannels      = 2
	BitsPerSample       = 16

	DefaultBuffer = 100 * time.Millisecond
)

// Format is the PCM layout a device consumes. The mixer always writes
// interleaved little-endian 16-bit stereo, so only the rate varies.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// Preferred is the format every backend asks for first.
func Preferred() Format {
	return Format{
		SampleRate:    PreferredSampleRate,
		Channels:      OutputChannels,
		BitsPerSample: BitsPerSample,
	}
}

func (f Format) FrameSize() int {
	return f.Channels * f.BitsPerSample / 8
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz %dch %dbit", f.SampleRate, f.Channels, f.BitsPerSample)
}

// RateCandidates lists the sample rates a backend should try, in order: the
// requested rate, the rate the hardware suggests and finally 44.1kHz.
// Duplicates and non-positive rates are dropped.
func RateCandidates(requested, suggested int) []int {
	var out []int
	for _, rate := range []int{requested, suggested, FallbackSampleRate} {
		if rate > 0 && !slices.Contains(out, rate) {
			out = append(out, rate)
		}
	}

	return out
}
