// SPDX-License-Identifier: EPL-2.0

// Package device provides the audio output backends the mixer writes into.
//
// Every backend exposes the same push model on top of a Ring sized for the
// configured buffer duration (100ms by default):
//
//	n, _ := dev.Available()      // free frames
//	region, _ := dev.Acquire(n)  // n*4 bytes of stereo PCM16
//	// fill region
//	dev.Release(n)
//
// The backend pulls queued frames from the ring on its own schedule and
// plays silence when nothing is queued.
//
// # Backends
//
//   - oto: ebitengine/oto, the default. Left out by the headless build tag.
//   - null: discards audio at real-time speed. No hardware needed.
//   - portaudio: gordonklaus/portaudio, with the portaudio build tag.
//   - pulse: jfreymuth/pulse, with the pulse build tag.
//
// Backends register themselves with Register and are opened by name:
//
//	dev, err := device.Open(device.Config{Backend: "null"})
//
// # Format
//
// Output is always 16-bit stereo. The portaudio and pulse backends ask for
// 48kHz first and fall back to the rate the hardware suggests, then to
// 44.1kHz. The oto backend opens one process-wide context at the requested
// rate and cannot retry: oto refuses a second context even after a failed
// first one.
//
// # Errors
//
// Failures are returned as *Error values carrying the operation and a
// diagnostic Code, which callers log:
//
//	if code, ok := device.CodeOf(err); ok {
//	    logger.Error("open failed", "code", code)
//	}
package device
