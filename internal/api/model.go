// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/alvinbaena/pwd-analyst/pkg/compare"
	"github.com/alvinbaena/pwd-analyst/pkg/entropy"
	"github.com/alvinbaena/pwd-analyst/pkg/strength"
)

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

type strengthResponse struct {
	Password string `json:"password"`
	strength.Verdict
	Estimate strength.Estimate `json:"zxcvbn"`
	// nil when the breach lookup is disabled or failed
	PwnedCount *int `json:"pwned_count,omitempty"`
}

type fileMeta struct {
	Timestamp string `json:"timestamp"`
	Filename  string `json:"filename"`
}

type strengthFileResponse struct {
	fileMeta
	strength.Summary
}

type exportRequest struct {
	StrongPasswords []string `json:"strong_passwords"`
	Filename        string   `json:"filename"`
}

type entropyFileResponse struct {
	fileMeta
	entropy.CorpusResult
}

type profileResponse struct {
	fileMeta
	compare.Profile
}

type compareResponse struct {
	Timestamp string `json:"timestamp"`
	Reference string `json:"original_file"`
	compare.Result
}

type healthResponse struct {
	Status      string `json:"status"`
	MemoryUsage string `json:"memory_usage"`
	CpuUsage    string `json:"cpu_usage"`
	DiskUsage   string `json:"disk_usage"`
}
