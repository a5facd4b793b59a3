// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"reflect"
	"strings"
	"testing"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("../../test/data/does-not-exist.toml")
	if err != nil {
		t.Fatalf("Should not fail for a missing file: %s", err)
	}

	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("A missing file should give the defaults, got %+v", cfg)
	}
	if !cfg.Analysis.DenyCommon || cfg.Analysis.TopLengths != 10 || cfg.Analysis.TopPatterns != 15 {
		t.Errorf("Unexpected defaults: %+v", cfg.Analysis)
	}
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load("../../test/data/config.toml")
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	if !cfg.Analysis.ASCIIOnly || cfg.Analysis.Workers != 2 || cfg.Analysis.TopPatterns != 5 {
		t.Errorf("File values should be loaded, got %+v", cfg.Analysis)
	}
	if cfg.Analysis.TopLengths != 10 || !cfg.Analysis.DenyCommon {
		t.Errorf("Values missing from the file should keep their defaults, got %+v", cfg.Analysis)
	}
	if !cfg.Hibp.Enabled || cfg.Hibp.CacheMB != 4 {
		t.Errorf("Unexpected hibp config: %+v", cfg.Hibp)
	}
	if cfg.Analysis.Classes() != charclass.ASCII {
		t.Errorf("ascii_only should select the ASCII classes")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ANALYSIS_DENY_COMMON", "false")
	t.Setenv("ANALYSIS_WORKERS", "8")
	t.Setenv("HIBP_BASE_URL", "http://localhost:8080")

	cfg, err := Load("../../test/data/config.toml")
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	if cfg.Analysis.DenyCommon {
		t.Errorf("ANALYSIS_DENY_COMMON should override the default")
	}
	if cfg.Analysis.Workers != 8 {
		t.Errorf("ANALYSIS_WORKERS should override the file, got %d", cfg.Analysis.Workers)
	}
	if cfg.Analysis.TopPatterns != 5 {
		t.Errorf("File values without env should be kept, got %d", cfg.Analysis.TopPatterns)
	}
	if cfg.Hibp.BaseURL != "http://localhost:8080" {
		t.Errorf("Unexpected base url %s", cfg.Hibp.BaseURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load("../../test/data/invalid-config.toml")
	if err == nil {
		t.Fatalf("Should fail validation")
	}

	for _, want := range []string{"ANALYSIS_TOP_CHARS: This field must be at least 1", "HIBP_BASE_URL: This field must be a valid URL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error should contain %q, got %s", want, err)
		}
	}
}
