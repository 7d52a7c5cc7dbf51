// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"errors"
	"slices"
	"testing"
	"time"
)

func putFrames(region []byte, start int16) {
	for i := 0; i < len(region)/4; i++ {
		v := start + int16(i)
		binary.LittleEndian.PutUint16(region[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(region[i*4+2:], uint16(-v))
	}
}

func leftSamples(p []byte) []int16 {
	out := make([]int16, len(p)/4)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(p[i*4:]))
	}

	return out
}

func TestRingFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate int
		d    time.Duration
		want int
	}{
		{48000, 100 * time.Millisecond, 4800},
		{44100, 100 * time.Millisecond, 4410},
		{48000, 0, 4800},
		{8000, time.Microsecond, 1},
	}

	for _, tt := range tests {
		if got := RingFrames(tt.rate, tt.d); got != tt.want {
			t.Errorf("RingFrames(%d, %v) = %d, want %d", tt.rate, tt.d, got, tt.want)
		}
	}
}

func TestRing_Bookkeeping(t *testing.T) {
	t.Parallel()

	r := NewRing(8)
	if r.Capacity() != 8 || r.Available() != 8 || r.Padding() != 0 {
		t.Fatalf("new ring: capacity %d, available %d, padding %d", r.Capacity(), r.Available(), r.Padding())
	}

	region, err := r.Acquire(5)
	if err != nil {
		t.Fatalf("Acquire(5) error = %v", err)
	}
	if len(region) != 20 {
		t.Errorf("len(region) = %d, want 20", len(region))
	}

	// Acquired but unreleased frames are not padding yet.
	if r.Padding() != 0 {
		t.Errorf("Padding() before Release = %d, want 0", r.Padding())
	}
	if err := r.Release(5); err != nil {
		t.Fatalf("Release(5) error = %v", err)
	}
	if r.Padding() != 5 || r.Available() != 3 {
		t.Errorf("after Release: padding %d, available %d, want 5, 3", r.Padding(), r.Available())
	}
	if r.Padding()+r.Available() != r.Capacity() {
		t.Errorf("padding + available != capacity")
	}

	buf := make([]byte, 8)
	_, _ = r.Read(buf)
	if r.Padding() != 3 || r.Available() != 5 {
		t.Errorf("after Read: padding %d, available %d, want 3, 5", r.Padding(), r.Available())
	}
}

func TestRing_WrapAround(t *testing.T) {
	t.Parallel()

	r := NewRing(4)

	region, _ := r.Acquire(3)
	putFrames(region, 1)
	if err := r.Release(3); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	first := make([]byte, 8)
	_, _ = r.Read(first)
	if got := leftSamples(first); !slices.Equal(got, []int16{1, 2}) {
		t.Errorf("first read = %v, want [1 2]", got)
	}

	region, err := r.Acquire(3)
	if err != nil {
		t.Fatalf("Acquire(3) error = %v", err)
	}
	putFrames(region, 4)
	if err := r.Release(3); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	rest := make([]byte, 16)
	_, _ = r.Read(rest)
	if got := leftSamples(rest); !slices.Equal(got, []int16{3, 4, 5, 6}) {
		t.Errorf("second read = %v, want [3 4 5 6]", got)
	}
	if r.Underruns() != 0 {
		t.Errorf("Underruns() = %d, want 0", r.Underruns())
	}
}

func TestRing_ReadUnderrunZeroFills(t *testing.T) {
	t.Parallel()

	r := NewRing(4)
	region, _ := r.Acquire(1)
	putFrames(region, 9)
	_ = r.Release(1)

	p := []byte{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	n, err := r.Read(p)
	if n != len(p) || err != nil {
		t.Fatalf("Read() = %d, %v, want %d, nil", n, err, len(p))
	}
	if got := leftSamples(p); !slices.Equal(got, []int16{9, 0, 0}) {
		t.Errorf("Read() left samples = %v, want [9 0 0]", got)
	}
	if r.Underruns() != 1 {
		t.Errorf("Underruns() = %d, want 1", r.Underruns())
	}
}

func TestRing_ReadInt16(t *testing.T) {
	t.Parallel()

	r := NewRing(4)
	region, _ := r.Acquire(2)
	putFrames(region, 7)
	_ = r.Release(2)

	out := make([]int16, 6)
	n, err := r.ReadInt16(out)
	if n != 6 || err != nil {
		t.Fatalf("ReadInt16() = %d, %v", n, err)
	}
	if want := []int16{7, -7, 8, -8, 0, 0}; !slices.Equal(out, want) {
		t.Errorf("ReadInt16() = %v, want %v", out, want)
	}
}

func TestRing_RegionErrors(t *testing.T) {
	t.Parallel()

	r := NewRing(4)

	if _, err := r.Acquire(5); !errors.Is(err, ErrRegionTooLarge) {
		t.Errorf("Acquire(5) error = %v, want %v", err, ErrRegionTooLarge)
	}
	if _, err := r.Acquire(0); !errors.Is(err, ErrRegionTooLarge) {
		t.Errorf("Acquire(0) error = %v, want %v", err, ErrRegionTooLarge)
	}
	if err := r.Release(1); !errors.Is(err, ErrInvalidRelease) {
		t.Errorf("Release without Acquire error = %v, want %v", err, ErrInvalidRelease)
	}

	if _, err := r.Acquire(2); err != nil {
		t.Fatalf("Acquire(2) error = %v", err)
	}
	if _, err := r.Acquire(1); !errors.Is(err, ErrRegionBusy) {
		t.Errorf("second Acquire error = %v, want %v", err, ErrRegionBusy)
	}
	if err := r.Release(3); !errors.Is(err, ErrInvalidRelease) {
		t.Errorf("Release(3) of 2 error = %v, want %v", err, ErrInvalidRelease)
	}

	r.Reset()
	if r.Available() != 4 {
		t.Errorf("Available() after Reset = %d, want 4", r.Available())
	}
	if _, err := r.Acquire(4); err != nil {
		t.Errorf("Acquire(4) after Reset error = %v", err)
	}
}

func BenchmarkRing(b *testing.B) {
	r := NewRing(4800)
	p := make([]byte, 480*4)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		region, _ := r.Acquire(480)
		putFrames(region, 1)
		_ = r.Release(480)
		_, _ = r.Read(p)
	}
}
