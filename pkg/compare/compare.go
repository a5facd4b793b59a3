// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package compare measures how close the length and pattern distributions of candidate corpora, e.g. the output
// of password generation models, are to a reference corpus.
package compare

import (
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/distribution"
	"github.com/alvinbaena/pwd-analyst/pkg/pattern"
)

// Candidate is a named corpus compared against the reference.
type Candidate struct {
	Name   string
	Corpus corpus.Corpus
}

// Distance of a candidate to the reference corpus.
type Distance struct {
	Name            string  `json:"model"`
	LengthDistance  float64 `json:"length_distance"`
	PatternDistance float64 `json:"pattern_distance"`
}

// CorpusSize is the number of passwords of a compared corpus.
type CorpusSize struct {
	Name      string `json:"name"`
	Passwords int    `json:"passwords"`
}

type Stats struct {
	ReferencePasswords int          `json:"original_passwords"`
	Candidates         []CorpusSize `json:"candidates"`
}

// Result holds one Distance per candidate, in the order the candidates were given.
type Result struct {
	Distances []Distance `json:"distances"`
	Stats     Stats      `json:"stats"`
}

type profile struct {
	lengths  distribution.Distribution[int]
	patterns distribution.Distribution[pattern.Pattern]
}

type Comparator struct {
	classifier *pattern.Classifier
}

func NewComparator(classes charclass.Classes) *Comparator {
	return &Comparator{classifier: pattern.NewClassifier(classes)}
}

// Compare computes the Euclidean distance between the length distributions and between the pattern
// distributions of every candidate and the reference.
func (c *Comparator) Compare(reference corpus.Corpus, candidates []Candidate) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, fmt.Errorf("%w: no candidate corpora to compare", corpus.ErrMismatchedInput)
	}

	ref, err := c.distributions("reference", reference)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Distances: make([]Distance, 0, len(candidates)),
		Stats: Stats{
			ReferencePasswords: reference.Len(),
			Candidates:         make([]CorpusSize, 0, len(candidates)),
		},
	}

	for _, candidate := range candidates {
		p, err := c.distributions(candidate.Name, candidate.Corpus)
		if err != nil {
			return Result{}, err
		}

		res.Distances = append(res.Distances, Distance{
			Name:            candidate.Name,
			LengthDistance:  distribution.Euclidean(ref.lengths, p.lengths),
			PatternDistance: distribution.Euclidean(ref.patterns, p.patterns),
		})
		res.Stats.Candidates = append(res.Stats.Candidates, CorpusSize{Name: candidate.Name, Passwords: candidate.Corpus.Len()})
	}

	return res, nil
}

func (c *Comparator) distributions(name string, passwords corpus.Corpus) (profile, error) {
	if err := passwords.RequireNonEmpty(name); err != nil {
		return profile{}, err
	}

	lengths, err := distribution.Build(passwords, distribution.Length)
	if err != nil {
		return profile{}, fmt.Errorf("%s: %w", name, err)
	}

	patterns, err := distribution.Build(passwords, c.classifier.Key())
	if err != nil {
		return profile{}, fmt.Errorf("%s: %w", name, err)
	}

	return profile{lengths: lengths, patterns: patterns}, nil
}
