// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"github.com/alvinbaena/pwd-analyst/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"strings"
)

const (
	DefaultPort        = 3100
	DefaultMaxUploadMB = 32
)

type Config struct {
	Port        uint16 `mapstructure:"PORT" validate:"required"`
	SelfTLS     bool   `mapstructure:"SELF_TLS" validate:"required_without_all=TLSCert TLSKey"`
	TLSCert     string `mapstructure:"TLS_CERT" validate:"required_if=SelfTLS false,required_with=TLSKey"`
	TLSKey      string `mapstructure:"TLS_KEY" validate:"required_if=SelfTLS false,required_with=TLSCert"`
	Debug       bool   `mapstructure:"DEBUG"`
	MaxUploadMB int64  `mapstructure:"MAX_UPLOAD_MB" validate:"gte=1"`
}

// flagKeys maps serve flags to the config keys they override.
var flagKeys = map[string]string{
	"port":          "PORT",
	"self-tls":      "SELF_TLS",
	"tls-cert":      "TLS_CERT",
	"tls-key":       "TLS_KEY",
	"max-upload-mb": "MAX_UPLOAD_MB",
}

// LoadConfig reads the server configuration from the environment. Flags set in flags take precedence.
func LoadConfig(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	cfg := Config{Port: DefaultPort, MaxUploadMB: DefaultMaxUploadMB}
	config.BindEnvs(v, cfg)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error reading server configuration: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
