// SPDX-License-Identifier: EPL-2.0

package ual

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/ual/audio"
	"github.com/ik5/ual/formats/aiff"
	"github.com/ik5/ual/formats/flac"
	"github.com/ik5/ual/formats/mp3"
	"github.com/ik5/ual/formats/uad"
	"github.com/ik5/ual/formats/vorbis"
	"github.com/ik5/ual/formats/wav"
)

// DefaultFormats returns a registry with every bundled decoder, keyed by
// file extension.
func DefaultFormats() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("uad", uad.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("flac", flac.Decoder{})

	return r
}

var formats = DefaultFormats()

// LoadPCM decodes the file at path into a sample buffer, picking the
// decoder from the file extension.
func LoadPCM(path string) (*audio.SampleBuffer, error) {
	dec, err := formats.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return decodeFile(dec, path)
}

func decodeFile(dec audio.Decoder, path string) (*audio.SampleBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	defer f.Close()

	buf, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return buf, nil
}

// SavePCM writes buf to path as a UAD file.
func SavePCM(buf *audio.SampleBuffer, path string) error {
	return encodeFile(uad.Encoder{}, buf, path)
}

// Save writes buf to path in the format named by its extension: uad, wav,
// aif or aiff.
func Save(buf *audio.SampleBuffer, path string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	var enc audio.Encoder
	switch ext {
	case "uad":
		enc = uad.Encoder{}
	case "wav":
		enc = wav.Encoder{}
	case "aif", "aiff":
		enc = aiff.Encoder{}
	default:
		return fmt.Errorf("saving %s: %w: %q", path, audio.ErrUnknownFormat, ext)
	}

	return encodeFile(enc, buf, path)
}

func encodeFile(enc audio.Encoder, buf *audio.SampleBuffer, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("saving %s: %w", path, cerr)
		}
		if err != nil {
			err = errors.Join(err, os.Remove(path))
		}
	}()

	if err := enc.Encode(f, buf); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}

// ConvertToUAD decodes src, in any supported format, and caches it at dst
// as a UAD file that loads without decoding.
func ConvertToUAD(src, dst string) error {
	buf, err := LoadPCM(src)
	if err != nil {
		return err
	}

	return SavePCM(buf, dst)
}
