// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long:  "Commands for managing and validating ualplay configuration.",
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long:  "Validate the current configuration file, environment variables and flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				slog.Error("Configuration validation failed", slog.Any("error", err))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the configuration values after files, environment variables and flags are merged.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			cfg := a.cfg

			if file := a.v.ConfigFileUsed(); file != "" {
				fmt.Fprintf(out, "Config file: %s\n", file)
			}
			fmt.Fprintln(out, "Current Configuration:")
			fmt.Fprintf(out, "  Device:\n")
			fmt.Fprintf(out, "    Backend: %s\n", cfg.Device.Backend)
			fmt.Fprintf(out, "    Sample rate: %d\n", cfg.Device.SampleRate)
			fmt.Fprintf(out, "    Channels: %d\n", cfg.Device.Channels)
			fmt.Fprintf(out, "    Buffer: %s\n", cfg.Device.Buffer)
			fmt.Fprintf(out, "  Mixer:\n")
			fmt.Fprintf(out, "    Poll interval: %s\n", cfg.Mixer.PollInterval)
			fmt.Fprintf(out, "    Idle interval: %s\n", cfg.Mixer.IdleInterval)
			fmt.Fprintf(out, "  Logging:\n")
			fmt.Fprintf(out, "    Level: %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "    Format: %s\n", cfg.Logging.Format)
		},
	}

	cmd.AddCommand(validate, show)

	return cmd
}
