// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/compare"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/gin-gonic/gin"
	"mime/multipart"
	"net/http"
)

func (a *analysisApi) patternsFile(c *gin.Context) {
	filename, passwords, err := formCorpus(c, "file")
	if err != nil {
		abortWithError(c, err)
		return
	}

	p, err := a.comparator.Profile(passwords, a.cfg.TopLengths, a.cfg.TopPatterns)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		fileMeta: fileMeta{Timestamp: a.timestamp(), Filename: filename},
		Profile:  p,
	})
}

// comparePatterns takes a multipart form with one reference file and one or more candidate files. Candidates are
// named after their file, unless a name field is sent for every candidate.
func (a *analysisApi) comparePatterns(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if !errors.As(err, &maxErr) {
			err = fmt.Errorf("%w: %s", corpus.ErrMismatchedInput, err)
		}
		abortWithError(c, err)
		return
	}

	refs := form.File["reference"]
	if len(refs) != 1 {
		abortWithError(c, fmt.Errorf("%w: exactly one reference file is required, got %d", corpus.ErrMismatchedInput, len(refs)))
		return
	}

	files := form.File["candidate"]
	if len(files) == 0 {
		abortWithError(c, fmt.Errorf("%w: at least one candidate file is required", corpus.ErrMismatchedInput))
		return
	}

	names := form.Value["name"]
	if len(names) > 0 && len(names) != len(files) {
		abortWithError(c, fmt.Errorf("%w: got %d names for %d candidates", corpus.ErrMismatchedInput, len(names), len(files)))
		return
	}

	corpora, err := loadUploads(append([]*multipart.FileHeader{refs[0]}, files...))
	if err != nil {
		abortWithError(c, err)
		return
	}

	candidates := make([]compare.Candidate, len(files))
	for i, fh := range files {
		name := candidateName(fh.Filename)
		if len(names) > 0 {
			name = names[i]
		}
		candidates[i] = compare.Candidate{Name: name, Corpus: corpora[i+1]}
	}

	res, err := a.comparator.Compare(corpora[0], candidates)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, compareResponse{
		Timestamp: a.timestamp(),
		Reference: refs[0].Filename,
		Result:    res,
	})
}
