// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/ual"
	"github.com/ik5/ual/audio"
	"github.com/ik5/ual/internal/logger"
)

const playPoll = 20 * time.Millisecond

func (a *app) playCommand() *cobra.Command {
	var (
		loop     bool
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "play <file>...",
		Short: "Play sound files at the same time",
		Long: `Play decodes every file and mixes them into the output device.

Without --loop it returns once every file has finished. With --loop the
files repeat until --duration elapses or the process is interrupted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if loop && duration <= 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "looping until interrupted")
			}

			return a.play(cmd, args, loop, duration)
		},
	}

	cmd.Flags().BoolVarP(&loop, "loop", "l", false, "repeat the files seamlessly")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 0, "stop after this long (0 plays to the end)")

	return cmd
}

func (a *app) play(cmd *cobra.Command, paths []string, loop bool, duration time.Duration) error {
	log := logger.WithComponent("ualplay")

	bufs := make([]*audio.SampleBuffer, 0, len(paths))
	for _, path := range paths {
		buf, err := ual.LoadPCM(path)
		if err != nil {
			return err
		}
		buf.SetLoop(loop)
		bufs = append(bufs, buf)

		log.Debug("loaded",
			slog.String("file", path),
			slog.Int("rate", buf.SampleRate()),
			slog.Int("channels", buf.Channels()),
			slog.Duration("duration", buf.Duration()))
	}

	dev := ual.OpenDevice(a.cfg.ToDeviceConfig(slog.Default()))
	defer dev.Close()

	if err := dev.Start(); err != nil {
		return fmt.Errorf("failed to start output: %w", err)
	}
	for _, buf := range bufs {
		if buf.SampleRate() != dev.Format().SampleRate {
			log.Warn("sample rate differs from output, playback speed will change",
				slog.Int("buffer", buf.SampleRate()),
				slog.Int("output", dev.Format().SampleRate))
		}
		dev.AddBuffer(buf)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "playing %d file(s) on %s\n", len(bufs), dev.Format())

	if finished := waitIdle(ctx, dev); finished {
		// The last frames are still queued in the device buffer.
		sleepCtx(ctx, a.cfg.Device.Buffer)
	}

	stats := dev.Stats()
	log.Info("playback finished",
		slog.Uint64("frames", stats.Frames),
		slog.Uint64("loops", stats.Loops),
		slog.Uint64("device_errors", stats.DeviceErrors))

	return dev.Close()
}

// waitIdle blocks until no buffer is left playing or ctx ends. It reports
// whether the buffers finished.
func waitIdle(ctx context.Context, dev *ual.OutputDevice) bool {
	t := time.NewTicker(playPoll)
	defer t.Stop()

	for dev.Active() > 0 {
		select {
		case <-ctx.Done():
			return false
		case <-t.C:
		}
	}

	return true
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
