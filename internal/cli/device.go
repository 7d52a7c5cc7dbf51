// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/ual/device"
)

func (a *app) backendsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List output backends built into this binary",
		Long: `List the output backends compiled in. The default one is marked with *.

The portaudio and pulse backends need the build tags of the same name, and
building with the headless tag leaves only the null backend.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			def := device.DefaultBackend()
			for _, name := range device.Backends() {
				mark := " "
				if name == def {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, name)
			}
		},
	}
}
