// SPDX-License-Identifier: EPL-2.0

// Package uad reads and writes UAD files, a raw PCM16 cache format that
// loads without any decoding.
//
// Sounds that are expensive to decode (MP3, Ogg Vorbis, FLAC) can be
// converted once and then loaded with a header read and a single bulk copy.
//
// # File Layout
//
// A UAD file is a 56-byte little-endian header followed by the PCM data:
//
//	offset  size  field
//	     0     1  version major (1)
//	     1     1  version minor
//	     2     1  version patch
//	     3     5  reserved, zero
//	     8     8  sample size, bytes per frame
//	    16     8  sample rate
//	    24     8  channel count
//	    32     8  frame count
//	    40     8  data offset, at least 56
//	    48     8  data size in bytes
//
// The PCM data is interleaved signed 16-bit little-endian samples, one
// frame per sample size. Data offset is measured from the start of the file;
// anything between the header and the offset is skipped. Files written by
// this package always place the data right after the header.
//
// # Header Rules
//
// Header.Validate accepts a header only when:
//   - the major version is 1 (minor and patch are informational)
//   - the channel count is between 1 and 65535
//   - sample size equals channels * 2
//   - the sample rate is positive and fits an int32
//   - the data offset is at least 56
//   - data size is a whole number of frames and frame count equals
//     data size / sample size
//
// # Decoding
//
// Use the Decoder to read a UAD file:
//
//	file, _ := os.Open("theme.uad")
//	buf, err := uad.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// Decode reads exactly data size bytes. The reader does not need to seek.
//
// # Encoding
//
// Use the Encoder to write a buffer:
//
//	file, _ := os.Create("theme.uad")
//	err := uad.Encoder{}.Encode(file, buf)
//
// NewHeader builds the header for a buffer and Header.WriteTo writes it on
// its own, for callers that stream the data themselves.
//
// # Error Handling
//
// The package defines these errors:
//   - ErrUnsupportedVersion: the major version is not 1
//   - ErrInvalidHeader: the header is short or a field is out of range
//   - ErrHeaderMismatch: sizes and frame count disagree
//   - ErrTruncatedData: the file ends before the data does
//
// Example:
//
//	buf, err := uad.Decoder{}.Decode(file)
//	if errors.Is(err, uad.ErrTruncatedData) {
//	    fmt.Println("cache file is incomplete, convert it again")
//	}
package uad
