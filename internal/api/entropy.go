// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

func (a *analysisApi) entropyPassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := a.analyzer.AnalyzeSingle(req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (a *analysisApi) entropyFile(c *gin.Context) {
	filename, passwords, err := formCorpus(c, "file")
	if err != nil {
		abortWithError(c, err)
		return
	}

	res, err := a.analyzer.AnalyzeCorpus(passwords)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entropyFileResponse{
		fileMeta:     fileMeta{Timestamp: a.timestamp(), Filename: filename},
		CorpusResult: res,
	})
}
