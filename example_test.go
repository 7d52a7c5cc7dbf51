// SPDX-License-Identifier: EPL-2.0

package ual_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ik5/ual"
	"github.com/ik5/ual/audio"
)

// Example plays a short stereo buffer on the null backend, which needs no
// sound card.
func Example() {
	dev := ual.OpenDevice(ual.Config{Backend: "null", SampleRate: 8000})
	defer dev.Close()

	if err := dev.Start(); err != nil {
		log.Fatal(err)
	}

	beep, err := audio.NewSampleBufferInt16([]int16{1000, -1000, 2000, -2000}, 2, 8000)
	if err != nil {
		log.Fatal(err)
	}
	dev.AddBuffer(beep)

	fmt.Println(dev.Format())
	// Output: 8000Hz 2ch 16bit
}

// Example_convert caches a WAV file as UAD and loads it back.
func Example_convert() {
	dir, err := os.MkdirTemp("", "ual-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	buf, err := audio.NewSampleBufferInt16([]int16{10, 20, 30, 40, 50, 60}, 1, 44100)
	if err != nil {
		log.Fatal(err)
	}

	src := filepath.Join(dir, "click.wav")
	dst := filepath.Join(dir, "click.uad")
	if err := ual.Save(buf, src); err != nil {
		log.Fatal(err)
	}
	if err := ual.ConvertToUAD(src, dst); err != nil {
		log.Fatal(err)
	}

	cached, err := ual.LoadPCM(dst)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(cached.Channels(), cached.SampleRate(), cached.NumFrames(), cached.Duration())
	// Output: 1 44100 6 136.054µs
}

// ExampleOpenDevice shows a handle whose backend could not be opened.
func ExampleOpenDevice() {
	dev := ual.OpenDevice(ual.Config{Backend: "missing"})
	defer dev.Close()

	fmt.Println(dev.Err() != nil)
	fmt.Println(dev.Start() != nil, dev.Status())
	// Output:
	// true
	// true error
}
