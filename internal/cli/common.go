// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"github.com/alvinbaena/pwd-analyst/internal/config"
	"github.com/alvinbaena/pwd-analyst/internal/report"
	"github.com/alvinbaena/pwd-analyst/internal/util"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/hibp"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// loadConfig loads the analysis settings, then applies the flags set in the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("ascii") {
		cfg.Analysis.ASCIIOnly = asciiOnly
	}
	if flags.Changed("deny-common") {
		cfg.Analysis.DenyCommon = denyCommon
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = workers
	}
	if flags.Changed("pwned") {
		cfg.Hibp.Enabled = pwned
	}

	return cfg, config.Validate(cfg)
}

// loadCorpusFile loads a password file after checking the system can hold it in memory.
func loadCorpusFile(fileName string) (corpus.Corpus, error) {
	if err := util.CheckCorpusFile(fileName); err != nil {
		return nil, err
	}

	passwords, err := corpus.LoadFile(fileName)
	if err != nil {
		return nil, err
	}

	p := message.NewPrinter(language.English)
	log.Debug().Msgf("loaded %s passwords from %s", p.Sprintf("%d", passwords.Len()), fileName)
	return passwords, nil
}

// newPwnedClient returns nil when breach lookups are disabled.
func newPwnedClient(cfg config.Hibp) (*hibp.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	log.Debug().Msgf("Pwned Passwords lookups enabled using %s", cfg.BaseURL)
	return hibp.NewClient(hibp.Options{BaseURL: cfg.BaseURL, CacheMB: cfg.CacheMB})
}

// runInteractiveSession prompts for passwords, masked, until ^C or ^D.
func runInteractiveSession(w *report.Writer, process func(password string) error) error {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a password")
			}
			return nil
		},
	}

	log.Info().Msgf("Running interactive session. ^C to exit")
	for {
		result, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				log.Info().Msgf("Goodbye")
				return nil
			}
			return err
		}

		if err = process(result); err != nil {
			log.Error().Err(err).Msg("Error processing input")
		}
		if err = w.Err(); err != nil {
			return err
		}
	}
}

// requirePasswordSource checks a command got exactly one of a password argument, an input file or interactive mode.
func requirePasswordSource(cmd *cobra.Command, args []string) error {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if inputFile != "" {
		sources++
	}
	if interactive {
		sources++
	}

	if sources != 1 {
		return errors.New("use exactly one of a password argument, --in-file or --interactive")
	}

	return cobra.MaximumNArgs(1)(cmd, args)
}
