// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"bufio"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/distribution"
	"io"
	"math"
	"strings"
	"time"
)

// DefaultSampleSize is the number of weak passwords kept as a sample in a Summary.
const DefaultSampleSize = 10

// IssueCount is how many weak passwords have an issue.
type IssueCount struct {
	Issue Issue `json:"issue"`
	Count int   `json:"count"`
}

// Summary aggregates the results of a batch evaluation.
type Summary struct {
	TotalPasswords  int          `json:"total_passwords"`
	StrongPasswords int          `json:"strong_passwords"`
	WeakPasswords   int          `json:"weak_passwords"`
	StrongPercent   float64      `json:"strong_percentage"`
	WeakPercent     float64      `json:"weak_percentage"`
	CommonIssues    []IssueCount `json:"common_issues"`
	SampleWeak      []Result     `json:"sample_weak_passwords"`
	StrongList      []string     `json:"strong_passwords_list"`
}

// Summarize aggregates results, which must be in corpus order. The weak sample holds the first sampleSize
// weak passwords of the corpus, DefaultSampleSize if sampleSize <= 0.
func Summarize(results []Result, sampleSize int) Summary {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	s := Summary{
		TotalPasswords: len(results),
		CommonIssues:   []IssueCount{},
		SampleWeak:     []Result{},
		StrongList:     []string{},
	}
	issues := distribution.NewHistogram[Issue]()

	for _, r := range results {
		if r.Strong {
			s.StrongPasswords++
			s.StrongList = append(s.StrongList, r.Password)
			continue
		}

		s.WeakPasswords++
		if len(s.SampleWeak) < sampleSize {
			s.SampleWeak = append(s.SampleWeak, r)
		}
		for _, issue := range r.Issues {
			issues.Add(issue)
		}
	}

	if s.TotalPasswords > 0 {
		s.StrongPercent = percent(s.StrongPasswords, s.TotalPasswords)
		s.WeakPercent = percent(s.WeakPasswords, s.TotalPasswords)
	}

	for _, b := range issues.Top(0) {
		s.CommonIssues = append(s.CommonIssues, IssueCount{Issue: b.Key, Count: b.Count})
	}

	return s
}

// percent rounded to one decimal, halves to even.
func percent(part, total int) float64 {
	return math.RoundToEven(float64(part)/float64(total)*1000) / 10
}

// WriteStrongList writes a plain text export of strong passwords: a header naming the source, followed by one
// numbered password per line.
func WriteStrongList(w io.Writer, source string, passwords []string, at time.Time) error {
	bw := bufio.NewWriter(w)

	header := fmt.Sprintf("STRONG PASSWORDS\nTime: %s\nSource: %s\nTotal strong passwords: %d\n%s\n\n",
		at.Format("2006-01-02 15:04:05"), source, len(passwords), strings.Repeat("=", 50))
	if _, err := bw.WriteString(header); err != nil {
		return err
	}

	for i, p := range passwords {
		if _, err := fmt.Fprintf(bw, "%d. %s\n", i+1, p); err != nil {
			return err
		}
	}

	return bw.Flush()
}
