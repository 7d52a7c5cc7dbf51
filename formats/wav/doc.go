// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes 16-bit PCM WAV files.
//
// Decoding uses github.com/go-audio/wav and produces an audio.SampleBuffer
// holding the whole file:
//
//	file, _ := os.Open("click.wav")
//	buf, err := wav.Decoder{}.Decode(file)
//
// Only uncompressed 16-bit PCM is accepted, with any channel count and
// sample rate. Other encodings fail with ErrOnlyPCM16bitSupported and
// anything without a RIFF/WAVE header fails with ErrNotWavFile.
//
// # Writing
//
// WriteWAV16 writes a canonical 44-byte header followed by the samples:
//
//	err := wav.WriteWAV16(out, 48000, 2, samples)
//
// Encoder adapts it to the audio.Encoder interface. Samples are written in
// chunks of 8192 bytes, so memory use does not grow with the file.
//
// # Error Handling
//
// The package defines these errors:
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrOnlyPCM16bitSupported: the data is compressed or not 16-bit
//   - ErrUnsupportedWavLayout: the fmt chunk is missing or declares zero
//     channels or a zero sample rate
//   - ErrUnsupportedWavChunks: the data chunk could not be read
//
// Example:
//
//	buf, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrOnlyPCM16bitSupported) {
//	    fmt.Println("convert the file to 16-bit PCM first")
//	}
package wav
