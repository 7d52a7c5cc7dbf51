// SPDX-License-Identifier: EPL-2.0

// Package ual plays any number of PCM16 sound buffers at once through a
// single audio output.
//
// # Quick Start
//
//	dev := ual.OpenDefaultDevice()
//	defer dev.Close()
//
//	if err := dev.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
//	click, err := ual.LoadPCM("sounds/click.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev.AddBuffer(click)
//
// AddBuffer may be called from any goroutine, before or after Start. Each
// call plays the buffer from its current cursor, so the same decoded buffer
// can be added many times and the copies overlap.
//
// # Looping
//
//	music, _ := ual.LoadPCM("sounds/theme.ogg")
//	music.SetLoop(true)
//	dev.AddBuffer(music)
//
// A looping buffer plays until the device is closed.
//
// # Opening Devices
//
// OpenDevice never fails outright. When the backend cannot be opened the
// error is logged with its diagnostic code and kept in Err; Start on such a
// handle returns the error and sets the status to mixer.StatusError:
//
//	dev := ual.OpenDevice(ual.Config{Backend: "null"})
//	if err := dev.Err(); err != nil {
//	    // no audio, but the handle is still safe to use
//	}
//
// # Formats
//
// LoadPCM picks a decoder from the file extension:
//   - wav: 16-bit PCM WAV
//   - uad: raw PCM16 cache files
//   - aif, aiff: 16-bit AIFF
//   - mp3
//   - ogg: Ogg Vorbis
//   - flac: 16-bit FLAC
//
// Decoding compressed files at load time can be slow. ConvertToUAD caches
// any of them as a UAD file that loads with a single read:
//
//	err := ual.ConvertToUAD("theme.ogg", "theme.uad")
//
// # Output
//
// The mixer always produces 16-bit stereo. Devices ask for 48kHz and fall
// back to what the hardware offers. Buffers are not resampled, so a buffer
// plays at the device rate whatever its own rate is.
package ual
