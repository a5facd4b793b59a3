// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/alvinbaena/pwd-analyst/internal/config"
	"github.com/alvinbaena/pwd-analyst/internal/report"
	"github.com/alvinbaena/pwd-analyst/internal/util"
	"github.com/alvinbaena/pwd-analyst/pkg/entropy"
	"github.com/spf13/cobra"
	"io"
)

var (
	entropyCmd = &cobra.Command{
		Use:   "entropy [password]",
		Short: "Compute the Shannon and min-entropy of a password or a password file",
		Args:  requirePasswordSource,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return entropyCommand(cmd.OutOrStdout(), cfg.Analysis, args)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	entropyCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Password file to analyze, one password per line")
	entropyCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode.")
	entropyCmd.MarkFlagsMutuallyExclusive("in-file", "interactive")

	rootCmd.AddCommand(entropyCmd)
}

func entropyCommand(out io.Writer, cfg config.Analysis, args []string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	analyzer := entropy.NewAnalyzer(cfg.Classes(), cfg.TopChars)
	w := report.NewWriter(out)

	if inputFile != "" {
		passwords, err := loadCorpusFile(inputFile)
		if err != nil {
			return err
		}

		res, err := analyzer.AnalyzeCorpus(passwords)
		if err != nil {
			return err
		}

		w.CorpusEntropy(inputFile, res)
		return w.Err()
	}

	analyze := func(password string) error {
		res, err := analyzer.AnalyzeSingle(password)
		if err != nil {
			return err
		}

		w.PasswordEntropy(res)
		return w.Err()
	}

	if interactive {
		return runInteractiveSession(w, analyze)
	}

	return analyze(args[0])
}
