// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package compare

import (
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/distribution"
	"github.com/alvinbaena/pwd-analyst/pkg/pattern"
)

const (
	DefaultTopLengths  = 10
	DefaultTopPatterns = 15
)

type LengthCount struct {
	Length    int     `json:"length"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

type PatternCount struct {
	Pattern   pattern.Pattern `json:"pattern"`
	Count     int             `json:"count"`
	Frequency float64         `json:"frequency"`
}

// Profile describes the length and pattern make up of a single corpus.
type Profile struct {
	TotalPasswords int            `json:"total_passwords"`
	AvgLength      float64        `json:"avg_length"`
	UniquePatterns int            `json:"unique_patterns"`
	TopLengths     []LengthCount  `json:"top_lengths"`
	TopPatterns    []PatternCount `json:"top_patterns"`
}

// Profile ranks the most frequent lengths and patterns of passwords. Non-positive limits use the defaults.
func (c *Comparator) Profile(passwords corpus.Corpus, topLengths, topPatterns int) (Profile, error) {
	if err := passwords.RequireNonEmpty("corpus"); err != nil {
		return Profile{}, err
	}

	if topLengths <= 0 {
		topLengths = DefaultTopLengths
	}
	if topPatterns <= 0 {
		topPatterns = DefaultTopPatterns
	}

	lengths := distribution.Count(passwords, distribution.Length)
	patterns := distribution.Count(passwords, c.classifier.Key())

	p := Profile{
		TotalPasswords: passwords.Len(),
		AvgLength:      float64(passwords.Chars()) / float64(passwords.Len()),
		UniquePatterns: patterns.Len(),
		TopLengths:     make([]LengthCount, 0, topLengths),
		TopPatterns:    make([]PatternCount, 0, topPatterns),
	}

	for _, b := range lengths.Top(topLengths) {
		p.TopLengths = append(p.TopLengths, LengthCount{Length: b.Key, Count: b.Count, Frequency: b.Frequency})
	}
	for _, b := range patterns.Top(topPatterns) {
		p.TopPatterns = append(p.TopPatterns, PatternCount{Pattern: b.Key, Count: b.Count, Frequency: b.Frequency})
	}

	return p, nil
}
