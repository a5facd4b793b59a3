// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/internal/config"
	"github.com/alvinbaena/pwd-analyst/pkg/compare"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/entropy"
	"github.com/alvinbaena/pwd-analyst/pkg/hibp"
	"github.com/alvinbaena/pwd-analyst/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

type analysisApi struct {
	cfg        config.Analysis
	evaluator  *strength.Evaluator
	analyzer   *entropy.Analyzer
	comparator *compare.Comparator
	// nil when breach lookups are disabled
	pwned *hibp.Client
	now   func() time.Time
}

// RegisterAnalysisApi registers the strength, entropy and pattern endpoints in group. pwned may be nil.
// Request bodies larger than maxUploadBytes are rejected.
func RegisterAnalysisApi(group *gin.RouterGroup, cfg config.Config, pwned *hibp.Client, maxUploadBytes int64) {
	classes := cfg.Analysis.Classes()
	a := &analysisApi{
		cfg:        cfg.Analysis,
		evaluator:  strength.NewEvaluator(strength.Options{DenyCommon: cfg.Analysis.DenyCommon, Classes: classes}),
		analyzer:   entropy.NewAnalyzer(classes, cfg.Analysis.TopChars),
		comparator: compare.NewComparator(classes),
		pwned:      pwned,
		now:        time.Now,
	}

	limited := group.Group("", limitBody(maxUploadBytes))

	s := limited.Group("/strength")
	s.POST("/password", a.checkPassword)
	s.POST("/file", a.checkFile)
	s.POST("/export", a.exportStrong)

	e := limited.Group("/entropy")
	e.POST("/password", a.entropyPassword)
	e.POST("/file", a.entropyFile)

	p := limited.Group("/patterns")
	p.POST("/file", a.patternsFile)
	p.POST("/compare", a.comparePatterns)
}

func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

func (a *analysisApi) timestamp() string {
	return a.now().Format(timestampLayout)
}

// errorStatus maps analysis errors to client errors, everything else is a server error.
func errorStatus(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, corpus.ErrEmptyInput),
		errors.Is(err, corpus.ErrInvalidEncoding),
		errors.Is(err, corpus.ErrMismatchedInput):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errorStatus(err), gin.H{"error": err.Error()})
}

// loadUpload reads the uploaded corpus, failing when it has no passwords.
func loadUpload(fh *multipart.FileHeader) (corpus.Corpus, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	passwords, err := corpus.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fh.Filename, err)
	}

	if err = passwords.RequireNonEmpty(fh.Filename); err != nil {
		return nil, err
	}

	return passwords, nil
}

// formCorpus loads the single file uploaded in field.
func formCorpus(c *gin.Context, field string) (string, corpus.Corpus, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: no %s file provided", corpus.ErrMismatchedInput, field)
	}

	passwords, err := loadUpload(fh)
	return fh.Filename, passwords, err
}

// loadUploads loads every file, reporting all the failures together.
func loadUploads(files []*multipart.FileHeader) ([]corpus.Corpus, error) {
	var result *multierror.Error
	corpora := make([]corpus.Corpus, len(files))

	for i, fh := range files {
		passwords, err := loadUpload(fh)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		corpora[i] = passwords
	}

	return corpora, result.ErrorOrNil()
}

// candidateName is the file name without its extension.
func candidateName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
