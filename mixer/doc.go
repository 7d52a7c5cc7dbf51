// SPDX-License-Identifier: EPL-2.0

// Package mixer sums any number of PCM16 sample buffers into a stereo
// output stream.
//
// # Registry
//
// A Registry holds the buffers that are currently playing. Add may be called
// from any goroutine; the buffer is copied into its own entry so the caller's
// cursor is never touched:
//
//	reg := mixer.NewRegistry()
//	reg.Add(buf)
//
// Entries are only reachable through With, which holds the registry lock for
// the duration of the callback:
//
//	reg.With(func(set *mixer.Set) {
//	    for i := range set.Len() {
//	        if set.At(i).Exhausted() {
//	            set.Retire(i)
//	        }
//	    }
//	})
//
// Retire does not shift indices. Retired entries are dropped, in order, when
// the callback returns. Add blocks only while a With call is running.
//
// # Engine
//
// An Engine drives an Output, usually a device.Device:
//
//	eng := mixer.NewEngine(dev, reg,
//	    mixer.WithPollInterval(5*time.Millisecond),
//	    mixer.WithIdleInterval(10*time.Millisecond))
//	go eng.Run(ctx)
//
// Run returns nil once ctx is done. Only one Run may be active per engine;
// a second one returns ErrAlreadyRunning.
//
// # Tick Protocol
//
// Every tick performs one cycle against the Output:
//
//  1. Available reports how many frames the output can take now. Zero
//     frames ends the tick without touching the registry.
//  2. Acquire hands out a writable region of that many frames. A shorter
//     region shrinks the tick to its length.
//  3. Under the registry lock, MixFrames writes every frame of the region.
//  4. Release commits the written frames to the output.
//
// After a tick that wrote frames the engine sleeps for the poll interval
// (5ms by default). When the output is full or returned an error it sleeps
// for the idle interval (10ms by default) instead.
//
// # Mixing
//
// Each output frame is the int32 sum of the current frame of every live
// entry, saturated to the int16 range on both channels. Mono entries play
// on both channels and entries with more than two channels contribute their
// first two.
//
// Every live entry advances by exactly one frame per output frame. A
// looping entry that runs out restarts at its first frame in the very next
// output frame, so loops have no gap. Other entries are retired as soon as
// their last frame is mixed; an entry added already exhausted is retired
// without contributing.
//
// # Errors
//
// Output errors never stop the engine. They are counted in
// Stats.DeviceErrors, and the first error of a streak and every 100th after
// it are logged at Warn level.
//
// # Performance
//
// MixFrames does not allocate. The registry reuses its retirement marks
// between ticks, so a steady mix runs without garbage.
package mixer
