// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"

	"github.com/ik5/ual/audio"
)

// FrameSize is the size of one stereo PCM16 output frame.
const FrameSize = 4

var ErrNoRegion = errors.New("audiotest: release without acquire")

// NewStereoBuffer builds a stereo buffer from (left, right) pairs.
// It panics on invalid input; it is meant for tests only.
func NewStereoBuffer(sampleRate int, frames ...[2]int16) *audio.SampleBuffer {
	samples := make([]int16, 0, len(frames)*2)
	for _, f := range frames {
		samples = append(samples, f[0], f[1])
	}

	return mustBuffer(samples, 2, sampleRate)
}

// NewConstantBuffer creates a stereo buffer holding the same frame n times.
func NewConstantBuffer(sampleRate, n int, left, right int16) *audio.SampleBuffer {
	samples := make([]int16, 0, n*2)
	for range n {
		samples = append(samples, left, right)
	}

	return mustBuffer(samples, 2, sampleRate)
}

// NewRampBuffer creates a stereo buffer whose frame i is (start+i, -(start+i)).
func NewRampBuffer(sampleRate, n int, start int16) *audio.SampleBuffer {
	samples := make([]int16, 0, n*2)
	for i := range n {
		v := start + int16(i)
		samples = append(samples, v, -v)
	}

	return mustBuffer(samples, 2, sampleRate)
}

// NewSineBuffer creates a mono sine wave at half amplitude.
func NewSineBuffer(sampleRate, n int, frequency float64) *audio.SampleBuffer {
	samples := make([]int16, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = int16(math.Sin(2*math.Pi*frequency*t) * 16384)
	}

	return mustBuffer(samples, 1, sampleRate)
}

func mustBuffer(samples []int16, channels, sampleRate int) *audio.SampleBuffer {
	buf, err := audio.NewSampleBufferInt16(samples, channels, sampleRate)
	if err != nil {
		panic(err)
	}

	return buf
}

// DecodeStereo splits little-endian stereo PCM16 bytes into frames.
func DecodeStereo(data []byte) [][2]int16 {
	out := make([][2]int16, len(data)/FrameSize)
	for i := range out {
		out[i][0] = int16(binary.LittleEndian.Uint16(data[i*FrameSize:]))
		out[i][1] = int16(binary.LittleEndian.Uint16(data[i*FrameSize+2:]))
	}

	return out
}

// FakeOutput is a scripted output device. Each Available call returns the
// next capacity from the script (zero once it runs out) and every released
// region is appended to Written.
type FakeOutput struct {
	mu       sync.Mutex
	script   []int
	calls    int
	region   []byte
	written  []byte
	releases []int
	err      error
}

// NewFakeOutput creates a fake device that offers the given capacities in order.
func NewFakeOutput(capacities ...int) *FakeOutput {
	return &FakeOutput{script: capacities}
}

// FailWith makes every later Available call return err.
func (f *FakeOutput) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.err = err
}

func (f *FakeOutput) Available() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return 0, f.err
	}

	f.calls++
	if len(f.script) == 0 {
		return 0, nil
	}
	n := f.script[0]
	f.script = f.script[1:]

	return n, nil
}

func (f *FakeOutput) Acquire(frames int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Garbage-fill so a test notices frames the mixer forgot to write.
	f.region = make([]byte, frames*FrameSize)
	for i := range f.region {
		f.region[i] = 0xAA
	}

	return f.region, nil
}

func (f *FakeOutput) Release(frames int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.region == nil {
		return ErrNoRegion
	}
	f.written = append(f.written, f.region[:frames*FrameSize]...)
	f.releases = append(f.releases, frames)
	f.region = nil

	return nil
}

// Written returns a copy of every byte released so far.
func (f *FakeOutput) Written() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]byte(nil), f.written...)
}

// Releases returns the frame count of each Release call.
func (f *FakeOutput) Releases() []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]int(nil), f.releases...)
}

// Drained reports whether the capacity script has been used up.
func (f *FakeOutput) Drained() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.script) == 0
}

// Polls returns how many times Available has been called.
func (f *FakeOutput) Polls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}
