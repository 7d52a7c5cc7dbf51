// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/ual/device"
	"github.com/ik5/ual/internal/config"
	"github.com/ik5/ual/internal/logger"
	"github.com/ik5/ual/mixer"
)

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	cfg *config.Config
}

// NewRootCommand builds the ualplay command tree with its own viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "ualplay",
		Short: "Play and convert PCM16 sound files",
		Long: `ualplay mixes any number of sound files into one audio output.

It decodes WAV, AIFF, MP3, Ogg Vorbis, FLAC and UAD files, and can convert
any of them into UAD files that load without decoding.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	flags.StringP("backend", "b", device.DefaultBackend(), "output backend")
	flags.IntP("sample-rate", "r", device.PreferredSampleRate, "requested output sample rate")
	flags.Duration("buffer", device.DefaultBuffer, "output buffer length")
	flags.Duration("poll-interval", mixer.DefaultPollInterval, "mixer poll interval")
	flags.Duration("idle-interval", mixer.DefaultIdleInterval, "mixer wait when the output is full")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	// Bind flags to viper
	for key, name := range map[string]string{
		"device.backend":      "backend",
		"device.sample_rate":  "sample-rate",
		"device.buffer":       "buffer",
		"mixer.poll_interval": "poll-interval",
		"mixer.idle_interval": "idle-interval",
		"logging.level":       "log-level",
		"logging.format":      "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		a.playCommand(),
		a.convertCommand(),
		a.infoCommand(),
		a.backendsCommand(),
		a.configCommand(),
		versionCommand(),
	)

	return root
}

// Execute runs ualplay with the process arguments.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and the global logger before any command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.verbose {
		a.v.Set("logging.level", "debug")
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	a.cfg = cfg

	return nil
}
