// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/ual"
)

func (a *app) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a sound file",
		Long: `Convert decodes the input in any supported format and writes it in the
format named by the output extension: uad, wav, aif or aiff.

Converting compressed sounds to UAD once avoids decoding them every time
they are loaded.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]

			buf, err := ual.LoadPCM(src)
			if err != nil {
				return err
			}
			if err := ual.Save(buf, dst); err != nil {
				return err
			}

			slog.Debug("converted", slog.String("from", src), slog.String("to", dst))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d frames, %dHz %dch, %s\n",
				dst, buf.NumFrames(), buf.SampleRate(), buf.Channels(), buf.Duration())

			return nil
		},
	}
}

func (a *app) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Describe sound files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, path := range args {
				buf, err := ual.LoadPCM(path)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s:\n", path)
				fmt.Fprintf(out, "  Format: %s\n", strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
				fmt.Fprintf(out, "  Sample rate: %d Hz\n", buf.SampleRate())
				fmt.Fprintf(out, "  Channels: %d\n", buf.Channels())
				fmt.Fprintf(out, "  Frames: %d\n", buf.NumFrames())
				fmt.Fprintf(out, "  Duration: %s\n", buf.Duration())
				fmt.Fprintf(out, "  PCM size: %d bytes\n", buf.DataSize())
			}

			return nil
		},
	}
}
