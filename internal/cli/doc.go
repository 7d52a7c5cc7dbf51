// SPDX-License-Identifier: EPL-2.0

// Package cli implements the ualplay command line.
//
// Every command reads its settings through one viper instance: defaults,
// then config.yaml, then UAL_ environment variables, then flags.
package cli
