// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package config loads the analysis settings: an optional TOML file overlaid by environment variables.
package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/alvinbaena/pwd-analyst/internal/util"
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"github.com/alvinbaena/pwd-analyst/pkg/compare"
	"github.com/alvinbaena/pwd-analyst/pkg/entropy"
	"github.com/alvinbaena/pwd-analyst/pkg/hibp"
	"github.com/alvinbaena/pwd-analyst/pkg/strength"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"os"
	"reflect"
	"strings"
)

type Config struct {
	Analysis Analysis `toml:"analysis" mapstructure:"ANALYSIS"`
	Hibp     Hibp     `toml:"hibp" mapstructure:"HIBP"`
}

type Analysis struct {
	ASCIIOnly   bool `toml:"ascii_only" mapstructure:"ASCII_ONLY"`
	DenyCommon  bool `toml:"deny_common" mapstructure:"DENY_COMMON"`
	Workers     int  `toml:"workers" mapstructure:"WORKERS" validate:"gte=0"`
	ChunkSize   int  `toml:"chunk_size" mapstructure:"CHUNK_SIZE" validate:"gte=0"`
	TopLengths  int  `toml:"top_lengths" mapstructure:"TOP_LENGTHS" validate:"gte=1"`
	TopPatterns int  `toml:"top_patterns" mapstructure:"TOP_PATTERNS" validate:"gte=1"`
	TopChars    int  `toml:"top_chars" mapstructure:"TOP_CHARS" validate:"gte=1"`
	SampleWeak  int  `toml:"sample_weak" mapstructure:"SAMPLE_WEAK" validate:"gte=1"`
}

type Hibp struct {
	Enabled bool   `toml:"enabled" mapstructure:"ENABLED"`
	BaseURL string `toml:"base_url" mapstructure:"BASE_URL" validate:"required,url"`
	CacheMB int64  `toml:"cache_mb" mapstructure:"CACHE_MB" validate:"gte=0"`
}

func Default() Config {
	return Config{
		Analysis: Analysis{
			DenyCommon:  true,
			TopLengths:  compare.DefaultTopLengths,
			TopPatterns: compare.DefaultTopPatterns,
			TopChars:    entropy.DefaultTopChars,
			SampleWeak:  strength.DefaultSampleSize,
		},
		Hibp: Hibp{
			BaseURL: hibp.DefaultBaseURL,
			CacheMB: 16,
		},
	}
}

// Classes are the character classes selected by the configuration.
func (a Analysis) Classes() charclass.Classes {
	return charclass.Select(a.ASCIIOnly)
}

// BindEnvs registers every leaf field as a viper key with its current value as default, so the environment
// can be unmarshalled without a viper config file.
func BindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			BindEnvs(v, fv.Interface(), append(parts, tv)...)
		default:
			key := strings.Join(append(parts, tv), ".")
			v.SetDefault(key, fv.Interface())
			_ = v.BindEnv(key)
		}
	}
}

// Load reads the TOML file at path on top of the defaults, then applies the environment (ANALYSIS_WORKERS,
// HIBP_ENABLED, ...). A missing file is not an error, an empty path skips the file.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err = toml.DecodeFile(path, &config); err != nil {
				return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	BindEnvs(v, config)

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to read config from environment: %w", err)
	}

	if err := Validate(config); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks s with its validate tags, naming invalid fields by their environment variable.
func Validate(s interface{}) error {
	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("error validating configuration: %w", err)
	}

	var msgs []string
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: %s", envName(fe.StructNamespace()), msgForTag(fe)))
	}

	return errors.New(strings.Join(msgs, ". "))
}

// envName of a validator namespace, e.g. Config.Analysis.TopChars is ANALYSIS_TOP_CHARS.
func envName(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, p := range parts {
		parts[i] = util.ToScreamingSnakeCase(p)
	}

	return strings.Join(parts, "_")
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without_all":
		return fmt.Sprintf("This field is required if fields [%s] are missing", util.ToScreamingSnakeCase(fe.Param()))
	case "required_if":
		return fmt.Sprintf("This field is required if %s", util.ToScreamingSnakeCase(fe.Param()))
	case "required_with":
		return fmt.Sprintf("This is field requires the presence of %s", util.ToScreamingSnakeCase(fe.Param()))
	case "gte":
		return fmt.Sprintf("This field must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("This field must be at most %s", fe.Param())
	case "url":
		return "This field must be a valid URL"
	}
	return fe.Error() // default error
}
