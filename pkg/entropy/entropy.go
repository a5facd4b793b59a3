// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package entropy computes entropy statistics of a single password and of a whole corpus.
//
// The single password analysis is empirical: the Shannon entropy of the character frequencies of that
// password. The corpus analysis reports two unrelated families side by side: the theoretical entropy of
// each password assuming a uniform printable ASCII alphabet, and the empirical entropy of the character
// distribution of all passwords together.
package entropy

import (
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/distribution"
	"github.com/montanaflynn/stats"
	"math"
	"unicode/utf8"
)

// AlphabetSize is the number of printable ASCII characters.
const AlphabetSize = 95

// DefaultTopChars is how many characters the corpus analysis reports by default.
const DefaultTopChars = 10

// CharFrequency is the number of occurrences of a character and its share of the analyzed text.
type CharFrequency struct {
	Char      string  `json:"char"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// PasswordResult is the entropy analysis of one password.
type PasswordResult struct {
	Password           string  `json:"password"`
	Length             int     `json:"length"`
	ShannonEntropy     float64 `json:"shannon_entropy"`
	MinEntropy         float64 `json:"min_entropy"`
	MaxPossibleEntropy float64 `json:"max_possible_entropy"`
	EntropyRatio       float64 `json:"entropy_ratio"`
	UniqueChars        int     `json:"unique_chars"`
	charclass.Counts
	CharFrequency []CharFrequency `json:"char_frequency"`
}

// CorpusResult is the entropy analysis of a corpus.
type CorpusResult struct {
	TotalPasswords int     `json:"total_passwords"`
	AvgLength      float64 `json:"avg_length"`

	// length * log2(95) per password
	TheoreticalMin  float64 `json:"min_entropy"`
	TheoreticalMax  float64 `json:"max_entropy"`
	TheoreticalMean float64 `json:"avg_entropy"`

	// over the characters of every password concatenated
	TotalChars              int     `json:"total_chars"`
	UniqueChars             int     `json:"unique_chars"`
	CharDistributionEntropy float64 `json:"char_distribution_entropy"`
	CharMinEntropy          float64 `json:"char_min_entropy"`
	charclass.Counts
	TopChars []CharFrequency `json:"top_chars"`
}

type Analyzer struct {
	classes  charclass.Classes
	topChars int
}

// NewAnalyzer creates an analyzer using classes to count character classes. topChars is the number of
// characters reported by AnalyzeCorpus, DefaultTopChars when <= 0.
func NewAnalyzer(classes charclass.Classes, topChars int) *Analyzer {
	if classes == nil {
		classes = charclass.Unicode
	}
	if topChars <= 0 {
		topChars = DefaultTopChars
	}

	return &Analyzer{classes: classes, topChars: topChars}
}

// AnalyzeSingle computes the empirical entropy of password.
func (a *Analyzer) AnalyzeSingle(password string) (PasswordResult, error) {
	length := utf8.RuneCountInString(password)
	if length == 0 {
		return PasswordResult{}, fmt.Errorf("%w: password is empty", corpus.ErrEmptyInput)
	}

	chars := countChars(password)

	maxPossible := math.Log2(float64(min(AlphabetSize, length)))
	shannon := shannonEntropy(chars)

	ratio := 0.0
	if maxPossible > 0 {
		ratio = shannon / maxPossible * 100
	}

	return PasswordResult{
		Password:           password,
		Length:             length,
		ShannonEntropy:     shannon,
		MinEntropy:         minEntropy(chars),
		MaxPossibleEntropy: maxPossible,
		EntropyRatio:       ratio,
		UniqueChars:        chars.Len(),
		Counts:             charclass.Count(a.classes, password),
		CharFrequency:      frequencies(chars, 0),
	}, nil
}

// AnalyzeCorpus computes the theoretical per password entropy and the empirical character entropy of passwords.
func (a *Analyzer) AnalyzeCorpus(passwords []string) (CorpusResult, error) {
	if len(passwords) == 0 {
		return CorpusResult{}, fmt.Errorf("%w: no valid passwords found", corpus.ErrEmptyInput)
	}

	bitsPerChar := math.Log2(AlphabetSize)
	theoretical := make([]float64, 0, len(passwords))
	chars := distribution.NewHistogram[rune]()
	var counts charclass.Counts
	totalLength := 0

	for _, p := range passwords {
		length := 0
		for _, r := range p {
			chars.Add(r)
			length++
		}

		totalLength += length
		theoretical = append(theoretical, float64(length)*bitsPerChar)
		counts = counts.Add(charclass.Count(a.classes, p))
	}

	res := CorpusResult{
		TotalPasswords:          len(passwords),
		AvgLength:               float64(totalLength) / float64(len(passwords)),
		TotalChars:              chars.Total(),
		UniqueChars:             chars.Len(),
		CharDistributionEntropy: shannonEntropy(chars),
		CharMinEntropy:          minEntropy(chars),
		Counts:                  counts,
		TopChars:                frequencies(chars, a.topChars),
	}

	var err error
	if res.TheoreticalMin, err = stats.Min(theoretical); err != nil {
		return CorpusResult{}, err
	}
	if res.TheoreticalMax, err = stats.Max(theoretical); err != nil {
		return CorpusResult{}, err
	}
	if res.TheoreticalMean, err = stats.Mean(theoretical); err != nil {
		return CorpusResult{}, err
	}

	return res, nil
}

var defaultAnalyzer = NewAnalyzer(charclass.Unicode, DefaultTopChars)

// AnalyzeSingle uses a default analyzer with Unicode character classes.
func AnalyzeSingle(password string) (PasswordResult, error) {
	return defaultAnalyzer.AnalyzeSingle(password)
}

// AnalyzeCorpus uses a default analyzer with Unicode character classes.
func AnalyzeCorpus(passwords []string) (CorpusResult, error) {
	return defaultAnalyzer.AnalyzeCorpus(passwords)
}

func countChars(s string) *distribution.Histogram[rune] {
	h := distribution.NewHistogram[rune]()
	for _, r := range s {
		h.Add(r)
	}

	return h
}

func shannonEntropy(h *distribution.Histogram[rune]) float64 {
	if h.Total() == 0 {
		return 0
	}

	total := float64(h.Total())
	entropy := 0.0
	for _, b := range h.Top(0) {
		p := float64(b.Count) / total
		entropy -= p * math.Log2(p)
	}

	return entropy
}

func minEntropy(h *distribution.Histogram[rune]) float64 {
	if h.Total() == 0 {
		return 0
	}

	maxP := float64(h.MaxCount()) / float64(h.Total())
	// -log2(1) is -0
	return math.Abs(-math.Log2(maxP))
}

func frequencies(h *distribution.Histogram[rune], n int) []CharFrequency {
	top := h.Top(n)
	out := make([]CharFrequency, 0, len(top))
	for _, b := range top {
		out = append(out, CharFrequency{Char: string(b.Key), Count: b.Count, Frequency: b.Frequency})
	}

	return out
}
