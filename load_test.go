// SPDX-License-Identifier: EPL-2.0

package ual

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/ik5/ual/audio"
	"github.com/ik5/ual/formats/uad"
	"github.com/ik5/ual/internal/audiotest"
)

func TestDefaultFormats(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "flac", "mp3", "ogg", "uad", "wav"}
	if got := DefaultFormats().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats = %v, want %v", got, want)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampBuffer(22050, 64, -32)

	for _, name := range []string{"tone.uad", "tone.wav", "tone.aiff", "TONE.WAV"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), name)
			if err := Save(src, path); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := LoadPCM(path)
			if err != nil {
				t.Fatalf("LoadPCM: %v", err)
			}
			if got.SampleRate() != 22050 || got.Channels() != 2 {
				t.Errorf("format = %dHz %dch, want 22050Hz 2ch", got.SampleRate(), got.Channels())
			}
			if !slices.Equal(got.Samples(), src.Samples()) {
				t.Error("samples differ after round trip")
			}
		})
	}
}

func TestLoadPCM_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.uad")
	if err := os.WriteFile(garbage, []byte("not a uad file"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"unknown extension", filepath.Join(dir, "sound.xyz"), audio.ErrUnknownFormat},
		{"no extension", filepath.Join(dir, "sound"), audio.ErrUnknownFormat},
		{"missing file", filepath.Join(dir, "missing.wav"), os.ErrNotExist},
		{"bad content", garbage, uad.ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := LoadPCM(tt.path)
			if !errors.Is(err, tt.want) {
				t.Fatalf("LoadPCM = %v, want %v", err, tt.want)
			}
			if buf != nil {
				t.Error("buffer returned with error")
			}
		})
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.mp3")
	err := Save(audiotest.NewConstantBuffer(8000, 4, 1, 1), path)
	if !errors.Is(err, audio.ErrUnknownFormat) {
		t.Fatalf("Save = %v, want %v", err, audio.ErrUnknownFormat)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file was created: %v", err)
	}
}

func TestConvertToUAD(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "click.wav")
	dst := filepath.Join(dir, "click.uad")

	mono := audiotest.NewSineBuffer(16000, 160, 440)
	if err := Save(mono, src); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := ConvertToUAD(src, dst); err != nil {
		t.Fatalf("ConvertToUAD: %v", err)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	h, err := uad.ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Channels != 1 || h.SampleRate != 16000 || h.NumFrames != 160 {
		t.Errorf("header = %dch %dHz %d frames, want 1ch 16000Hz 160 frames",
			h.Channels, h.SampleRate, h.NumFrames)
	}
}

func TestConvertToUAD_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := filepath.Join(dir, "out.uad")

	if err := ConvertToUAD(filepath.Join(dir, "in.wav"), dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ConvertToUAD = %v, want %v", err, os.ErrNotExist)
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("destination was created: %v", err)
	}
}
