// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/ual/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate int
	channels   int
	samples    []int
	offset     int
	err        error
	eofWithN   bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		if m.eofWithN {
			return 0, io.EOF
		}
		return 0, nil
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	if m.eofWithN && m.offset >= len(m.samples) {
		return n, io.EOF
	}

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not AIFF data")},
		{"empty", nil},
		{"wav header", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want %v", err, ErrNotAiffFile)
			}
			if buf != nil {
				t.Error("Decode() returned a buffer together with an error")
			}
		})
	}
}

func TestDecodePCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []int
		eofWithN bool
		want     []int16
	}{
		{"stereo, eof with data", 2, []int{1, -1, 2, -2}, true, []int16{1, -1, 2, -2}},
		{"stereo, zero read ends", 2, []int{1, -1, 2, -2}, false, []int16{1, -1, 2, -2}},
		{"mono", 1, []int{32767, -32768, 0}, true, []int16{32767, -32768, 0}},
		{"partial frame dropped", 2, []int{1, 2, 3}, true, []int16{1, 2}},
		{"empty", 2, nil, true, []int16{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dec := &mockAiffReader{
				sampleRate: 44100,
				channels:   tt.channels,
				samples:    tt.samples,
				eofWithN:   tt.eofWithN,
			}

			buf, err := decodePCM(dec)
			if err != nil {
				t.Fatalf("decodePCM() error = %v", err)
			}
			if buf.SampleRate() != 44100 || buf.Channels() != tt.channels {
				t.Errorf("format = %dHz %dch", buf.SampleRate(), buf.Channels())
			}
			if got := buf.Samples(); !slices.Equal(got, tt.want) {
				t.Errorf("Samples() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodePCM_SpansChunks(t *testing.T) {
	t.Parallel()

	samples := make([]int, readChunk*2+10)
	for i := range samples {
		samples[i] = i % 30000
	}

	buf, err := decodePCM(&mockAiffReader{sampleRate: 8000, channels: 1, samples: samples, eofWithN: true})
	if err != nil {
		t.Fatalf("decodePCM() error = %v", err)
	}
	if buf.NumFrames() != len(samples) {
		t.Errorf("NumFrames() = %d, want %d", buf.NumFrames(), len(samples))
	}
}

func TestDecodePCM_Errors(t *testing.T) {
	t.Parallel()

	_, err := decodePCM(&mockAiffReader{sampleRate: 8000, channels: 1, err: io.ErrUnexpectedEOF})
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("decodePCM() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}

	_, err = decodePCM(&mockAiffReader{sampleRate: 8000, channels: 0})
	if !errors.Is(err, ErrUnsupportedAiffLayout) {
		t.Errorf("decodePCM() error = %v, want %v", err, ErrUnsupportedAiffLayout)
	}
}

func TestEncoder_NeedsSeeker(t *testing.T) {
	t.Parallel()

	buf, err := audio.NewSampleBufferInt16([]int16{1, 2}, 2, 8000)
	if err != nil {
		t.Fatal(err)
	}

	if err := (Encoder{}).Encode(new(bytes.Buffer), buf); !errors.Is(err, ErrNeedsSeeker) {
		t.Errorf("Encode() error = %v, want %v", err, ErrNeedsSeeker)
	}
}

func TestEncoder_RoundTrip(t *testing.T) {
	t.Parallel()

	want := []int16{100, -100, 2000, -2000, 32767, -32768, 0, 1}
	src, err := audio.NewSampleBufferInt16(want, 2, 22050)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "roundtrip.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := (Encoder{}).Encode(f, src); err != nil {
		f.Close()
		t.Fatalf("Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	got, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.SampleRate() != 22050 || got.Channels() != 2 {
		t.Errorf("format = %dHz %dch, want 22050Hz 2ch", got.SampleRate(), got.Channels())
	}
	if !slices.Equal(got.Samples(), want) {
		t.Errorf("Samples() = %v, want %v", got.Samples(), want)
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	errs := []error{ErrNotAiffFile, ErrOnlyPCM16bitSupported, ErrUnsupportedAiffLayout, ErrNeedsSeeker}
	for i, a := range errs {
		for j, b := range errs {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v matches %v", a, b)
			}
		}
	}
}

func BenchmarkDecodePCM(b *testing.B) {
	samples := make([]int, 44100*2)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		dec := &mockAiffReader{sampleRate: 44100, channels: 2, samples: samples, eofWithN: true}
		if _, err := decodePCM(dec); err != nil {
			b.Fatal(err)
		}
	}
}
