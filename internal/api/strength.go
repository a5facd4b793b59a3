// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"net/http"
)

func (a *analysisApi) checkPassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := strengthResponse{
		Password: req.Password,
		Verdict:  a.evaluator.Evaluate(req.Password),
		Estimate: strength.EstimatePassword(req.Password),
	}

	if a.pwned != nil {
		if count, err := a.pwned.Count(c.Request.Context(), req.Password); err == nil {
			resp.PwnedCount = &count
		} else {
			log.Warn().Err(err).Msg("error looking up password in Pwned Passwords")
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (a *analysisApi) checkFile(c *gin.Context) {
	filename, passwords, err := formCorpus(c, "file")
	if err != nil {
		abortWithError(c, err)
		return
	}

	results, err := a.evaluator.EvaluateAll(passwords, strength.BatchOptions{
		Workers:   a.cfg.Workers,
		ChunkSize: a.cfg.ChunkSize,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, strengthFileResponse{
		fileMeta: fileMeta{Timestamp: a.timestamp(), Filename: filename},
		Summary:  strength.Summarize(results, a.cfg.SampleWeak),
	})
}

func (a *analysisApi) exportStrong(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.StrongPasswords) == 0 {
		abortWithError(c, fmt.Errorf("%w: no strong passwords to export", corpus.ErrEmptyInput))
		return
	}
	if req.Filename == "" {
		req.Filename = "passwords.txt"
	}

	now := a.now()
	var buf bytes.Buffer
	if err := strength.WriteStrongList(&buf, req.Filename, req.StrongPasswords, now); err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="strong_passwords_%d.txt"`, now.Unix()))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}
