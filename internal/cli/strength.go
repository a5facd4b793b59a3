// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/internal/config"
	"github.com/alvinbaena/pwd-analyst/internal/report"
	"github.com/alvinbaena/pwd-analyst/internal/util"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/hibp"
	"github.com/alvinbaena/pwd-analyst/pkg/strength"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"io"
	"os"
	"path/filepath"
	"time"
)

var (
	strengthCmd = &cobra.Command{
		Use:   "strength [password]",
		Short: "Check passwords against the strength rules",
		Long: "Check a password, or every password of a file, against the strength rules: at least 8 characters, " +
			"uppercase, lowercase, digit and special characters, and optionally not a common password",
		Args: requirePasswordSource,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			return strengthCommand(cmd.Context(), cmd.OutOrStdout(), cfg, args)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	strengthCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Password file to check, one password per line")
	strengthCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode.")
	strengthCmd.Flags().BoolVar(&denyCommon, "deny-common", true, "Reject passwords found in the common passwords list")
	strengthCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of workers checking a password file. Defaults to the number of CPUs")
	strengthCmd.Flags().BoolVar(&pwned, "pwned", false, "Look up single passwords in the Pwned Passwords breach corpus")
	strengthCmd.Flags().StringVarP(&exportFile, "export-strong", "o", "", "Write the strong passwords of the file to this path")
	strengthCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite any existing files while writing the results.")
	strengthCmd.MarkFlagsMutuallyExclusive("in-file", "interactive")

	rootCmd.AddCommand(strengthCmd)
}

func strengthCommand(ctx context.Context, out io.Writer, cfg config.Config, args []string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	evaluator := strength.NewEvaluator(strength.Options{
		DenyCommon: cfg.Analysis.DenyCommon,
		Classes:    cfg.Analysis.Classes(),
	})
	w := report.NewWriter(out)

	if inputFile != "" {
		return strengthFile(w, evaluator, cfg.Analysis)
	}

	client, err := newPwnedClient(cfg.Hibp)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	check := func(password string) error {
		return strengthPassword(ctx, w, evaluator, client, password)
	}

	if interactive {
		return runInteractiveSession(w, check)
	}

	return check(args[0])
}

func strengthPassword(ctx context.Context, w *report.Writer, evaluator *strength.Evaluator, client *hibp.Client, password string) error {
	estimate := strength.EstimatePassword(password)
	res := report.PasswordStrength{
		Verdict:  evaluator.Evaluate(password),
		Estimate: &estimate,
	}

	if client != nil {
		count, err := client.Count(ctx, password)
		if err != nil {
			return fmt.Errorf("error looking up password in Pwned Passwords: %w", err)
		}
		res.PwnedCount = &count
	}

	w.Strength(res)
	return w.Err()
}

func strengthFile(w *report.Writer, evaluator *strength.Evaluator, cfg config.Analysis) error {
	s := util.Stats()
	defer s()

	// Fail before doing the work, not after
	var exportPath string
	if exportFile != "" {
		abs, err := filepath.Abs(exportFile)
		if err != nil {
			return fmt.Errorf("could not get absolute path of file: %w", err)
		}
		if !overwrite {
			if _, err = os.Stat(abs); !os.IsNotExist(err) {
				return fmt.Errorf("file %s exists and overwrite flag is not set", exportFile)
			}
		}
		exportPath = abs
	}

	passwords, err := loadCorpusFile(inputFile)
	if err != nil {
		return err
	}
	if err = passwords.RequireNonEmpty(inputFile); err != nil {
		return err
	}

	progress := util.NewProgress("strength check", passwords.Len(), 10*time.Second)
	progress.Begin()
	results, err := evaluator.EvaluateAll(passwords, strength.BatchOptions{
		Workers:    cfg.Workers,
		ChunkSize:  cfg.ChunkSize,
		OnProgress: progress.Set,
	})
	progress.Done()
	if err != nil {
		return err
	}

	summary := strength.Summarize(results, cfg.SampleWeak)
	w.StrengthSummary(inputFile, summary)
	if err = w.Err(); err != nil {
		return err
	}

	if exportPath != "" {
		return exportStrongList(exportPath, inputFile, summary.StrongList)
	}

	return nil
}

func exportStrongList(path, source string, passwords []string) error {
	if len(passwords) == 0 {
		return fmt.Errorf("%w: %s has no strong passwords to export", corpus.ErrEmptyInput, source)
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = writeStrongList(out, source, passwords); err != nil {
		return err
	}

	log.Info().Msgf("exported %d strong passwords to %s", len(passwords), path)
	return nil
}

// writeStrongList writes the export to out and closes it. A failed close is an error, the file may be incomplete.
func writeStrongList(out io.WriteCloser, source string, passwords []string) (err error) {
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing strong passwords file: %w", cerr)
		}
	}()

	return strength.WriteStrongList(out, filepath.Base(source), passwords, time.Now())
}
