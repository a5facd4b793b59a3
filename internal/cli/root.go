// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdanalyst [COMMAND] [OPTIONS]",
		Short: "Analyze the strength, entropy and structure of passwords",
		Long: "Analyze single passwords or whole password corpora: strength rules, Shannon and min-entropy, " +
			"structural patterns, and how close generated password lists are to a reference list",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./pwdanalyst.toml", "Analysis settings TOML file. Ignored if it does not exist")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii", false, "Only recognize ASCII letters and digits, everything else is a special character")
}

func Execute() error {
	return rootCmd.Execute()
}
