// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"github.com/alvinbaena/pwd-analyst/internal/config"
	"github.com/alvinbaena/pwd-analyst/internal/report"
	"github.com/alvinbaena/pwd-analyst/internal/util"
	"github.com/alvinbaena/pwd-analyst/pkg/compare"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"io"
	"path/filepath"
	"strings"
)

var (
	patternsCmd = &cobra.Command{
		Use:   "patterns",
		Short: "Rank the most frequent lengths and structural patterns of a password file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return patternsCommand(cmd.OutOrStdout(), cfg.Analysis)
		},
	}

	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Measure how close the length and pattern distributions of password files are to a reference file",
		Example: "  pwdanalyst compare -r rockyou-test.txt -c markov=markov.txt -c gan=gan.txt\n" +
			"  pwdanalyst compare -r rockyou-test.txt -c generated.txt",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return compareCommand(cmd.OutOrStdout(), cfg.Analysis)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	patternsCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Password file to analyze, one password per line (required)")
	patternsCmd.MarkFlagRequired("in-file")

	compareCmd.Flags().StringVarP(&referenceFile, "reference", "r", "", "Reference password file (required)")
	compareCmd.MarkFlagRequired("reference")
	compareCmd.Flags().StringArrayVarP(&candidates, "candidate", "c", nil,
		"Candidate password file as name=path, or path to name it after the file. Repeat for more candidates (required)")
	compareCmd.MarkFlagRequired("candidate")

	rootCmd.AddCommand(patternsCmd, compareCmd)
}

func patternsCommand(out io.Writer, cfg config.Analysis) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	passwords, err := loadCorpusFile(inputFile)
	if err != nil {
		return err
	}

	p, err := compare.NewComparator(cfg.Classes()).Profile(passwords, cfg.TopLengths, cfg.TopPatterns)
	if err != nil {
		return err
	}

	w := report.NewWriter(out)
	w.Profile(inputFile, p)
	return w.Err()
}

// parseCandidate splits name=path. A bare path is named after the file, without extension.
func parseCandidate(arg string) (name, path string, err error) {
	if n, p, ok := strings.Cut(arg, "="); ok {
		if n == "" || p == "" {
			return "", "", fmt.Errorf("%w: candidate %q should be name=path", corpus.ErrMismatchedInput, arg)
		}
		return n, p, nil
	}

	base := filepath.Base(arg)
	return strings.TrimSuffix(base, filepath.Ext(base)), arg, nil
}

func compareCommand(out io.Writer, cfg config.Analysis) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	reference, err := loadCorpusFile(referenceFile)
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}

	list := make([]compare.Candidate, 0, len(candidates))
	for _, arg := range candidates {
		name, path, err := parseCandidate(arg)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		passwords, err := loadCorpusFile(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		list = append(list, compare.Candidate{Name: name, Corpus: passwords})
	}

	if err = result.ErrorOrNil(); err != nil {
		return err
	}

	res, err := compare.NewComparator(cfg.Classes()).Compare(reference, list)
	if err != nil {
		return err
	}

	w := report.NewWriter(out)
	w.Comparison(referenceFile, res)
	return w.Err()
}
