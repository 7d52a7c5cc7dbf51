// SPDX-License-Identifier: EPL-2.0

package device

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Ring is a fixed-size queue of stereo PCM16 frames between the mixer and a
// backend. The mixer side works in whole frames through Available, Acquire
// and Release; the backend side pulls bytes with Read or samples with
// ReadInt16 and gets silence when the queue runs dry.
type Ring struct {
	mu        sync.Mutex
	data      []byte
	frameSize int
	head      int // read offset in bytes
	fill      int // queued bytes

	region   []byte
	acquired int // frames handed out by Acquire, 0 when idle
	scratch  []byte

	underruns atomic.Uint64
}

// RingFrames is the number of frames that cover d at rate.
func RingFrames(rate int, d time.Duration) int {
	if d <= 0 {
		d = DefaultBuffer
	}
	n := int(int64(rate) * int64(d) / int64(time.Second))
	if n < 1 {
		n = 1
	}

	return n
}

// NewRing creates a ring holding capacity stereo PCM16 frames.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	frameSize := OutputChannels * BitsPerSample / 8

	return &Ring{
		data:      make([]byte, capacity*frameSize),
		frameSize: frameSize,
		region:    make([]byte, capacity*frameSize),
	}
}

// Capacity is the ring size in frames.
func (r *Ring) Capacity() int { return len(r.data) / r.frameSize }

// Padding is the number of frames queued and not yet read.
func (r *Ring) Padding() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return (r.fill + r.frameSize - 1) / r.frameSize
}

// Available is the number of whole frames that can be written now.
func (r *Ring) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return (len(r.data) - r.fill) / r.frameSize
}

// Underruns counts reads that had to be padded with silence.
func (r *Ring) Underruns() uint64 { return r.underruns.Load() }

// Acquire returns a writable region of exactly frames frames. The region is
// queued by Release; only one region may be outstanding.
func (r *Ring) Acquire(frames int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acquired > 0 {
		return nil, ErrRegionBusy
	}
	if frames <= 0 || frames > (len(r.data)-r.fill)/r.frameSize {
		return nil, fmt.Errorf("%w: %d frames", ErrRegionTooLarge, frames)
	}

	r.acquired = frames

	return r.region[:frames*r.frameSize], nil
}

// Release queues the first frames frames of the acquired region.
func (r *Ring) Release(frames int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.acquired == 0 || frames < 0 || frames > r.acquired {
		return fmt.Errorf("%w: release %d of %d frames", ErrInvalidRelease, frames, r.acquired)
	}

	src := r.region[:frames*r.frameSize]
	tail := (r.head + r.fill) % len(r.data)
	n := copy(r.data[tail:], src)
	copy(r.data, src[n:])

	r.fill += len(src)
	r.acquired = 0

	return nil
}

// Read fills p with queued PCM and pads the rest with silence. It always
// returns len(p), nil so a pull-based player never stops.
func (r *Ring) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.read(p)

	return len(p), nil
}

// ReadInt16 is Read for backends that take native int16 samples.
func (r *Ring) ReadInt16(out []int16) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cap(r.scratch) < len(out)*2 {
		r.scratch = make([]byte, len(out)*2)
	}
	buf := r.scratch[:len(out)*2]
	r.read(buf)

	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(buf[i*2:]))
	}

	return len(out), nil
}

func (r *Ring) read(p []byte) {
	n := min(len(p), r.fill)
	end := r.head + n
	if end <= len(r.data) {
		copy(p, r.data[r.head:end])
	} else {
		k := copy(p, r.data[r.head:])
		copy(p[k:n], r.data)
	}
	r.head = (r.head + n) % len(r.data)
	r.fill -= n

	if n < len(p) {
		clear(p[n:])
		r.underruns.Add(1)
	}
}

// Reset drops everything queued and any outstanding region.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.head = 0
	r.fill = 0
	r.acquired = 0
}
