// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"github.com/alvinbaena/pwd-analyst/pkg/compare"
	"github.com/alvinbaena/pwd-analyst/pkg/entropy"
	"github.com/alvinbaena/pwd-analyst/pkg/strength"
	"strconv"
	"strings"
)

// PasswordStrength is everything known about the strength of one password.
type PasswordStrength struct {
	Verdict  strength.Verdict
	Estimate *strength.Estimate
	// PwnedCount is nil when the breach lookup was not made.
	PwnedCount *int
}

func (w *Writer) Strength(s PasswordStrength) {
	if s.Verdict.Strong {
		w.println(goodStyle.Render("Password is strong"))
	} else {
		w.println(badStyle.Render("Password is weak"))
	}

	if len(s.Verdict.Issues) > 0 {
		rows := make([][]string, 0, len(s.Verdict.Issues))
		for _, issue := range s.Verdict.Issues {
			rows = append(rows, []string{string(issue)})
		}
		w.table([]string{"Issue"}, rows)
	}

	pairs := make([]string, 0, 8)
	if s.Estimate != nil {
		pairs = append(pairs,
			"zxcvbn score", fmt.Sprintf("%d/4", s.Estimate.Score),
			"Crack time", s.Estimate.CrackTimeDisplay,
		)
	}
	if s.PwnedCount != nil {
		pairs = append(pairs, "Times seen in breaches", w.count(*s.PwnedCount))
	}
	if len(pairs) > 0 {
		w.keyValues(pairs...)
	}
}

func (w *Writer) StrengthSummary(source string, s strength.Summary) {
	w.title("Strength of %s", source)
	w.keyValues(
		"Total passwords", w.count(s.TotalPasswords),
		"Strong", fmt.Sprintf("%s (%.1f%%)", w.count(s.StrongPasswords), s.StrongPercent),
		"Weak", fmt.Sprintf("%s (%.1f%%)", w.count(s.WeakPasswords), s.WeakPercent),
	)

	if len(s.CommonIssues) > 0 {
		rows := make([][]string, 0, len(s.CommonIssues))
		for _, ic := range s.CommonIssues {
			rows = append(rows, []string{string(ic.Issue), w.count(ic.Count)})
		}
		w.table([]string{"Issue", "Passwords"}, rows)
	}

	if len(s.SampleWeak) > 0 {
		rows := make([][]string, 0, len(s.SampleWeak))
		for _, r := range s.SampleWeak {
			issues := make([]string, 0, len(r.Issues))
			for _, issue := range r.Issues {
				issues = append(issues, string(issue))
			}
			rows = append(rows, []string{strconv.Itoa(r.Index + 1), r.Password, strings.Join(issues, ", ")})
		}
		w.table([]string{"#", "Weak password", "Issues"}, rows)
	}
}

func (w *Writer) classCounts(c charclass.Counts) {
	w.table([]string{"Lowercase", "Uppercase", "Digit", "Special"}, [][]string{
		{w.count(c.Lowercase), w.count(c.Uppercase), w.count(c.Digit), w.count(c.Special)},
	})
}

func (w *Writer) charFrequencies(header string, freqs []entropy.CharFrequency) {
	rows := make([][]string, 0, len(freqs))
	for _, f := range freqs {
		rows = append(rows, []string{visible(f.Char), w.count(f.Count), percent(f.Frequency)})
	}
	w.table([]string{header, "Count", "Frequency"}, rows)
}

func (w *Writer) PasswordEntropy(r entropy.PasswordResult) {
	w.title("Entropy")
	w.keyValues(
		"Length", w.count(r.Length),
		"Unique characters", w.count(r.UniqueChars),
		"Shannon entropy", w.float(r.ShannonEntropy)+" bits/char",
		"Min-entropy", w.float(r.MinEntropy)+" bits/char",
		"Max possible entropy", w.float(r.MaxPossibleEntropy)+" bits/char",
		"Entropy ratio", fmt.Sprintf("%.2f%%", r.EntropyRatio),
	)
	w.classCounts(r.Counts)
	w.charFrequencies("Character", r.CharFrequency)
}

func (w *Writer) CorpusEntropy(source string, r entropy.CorpusResult) {
	w.title("Entropy of %s", source)
	w.keyValues(
		"Total passwords", w.count(r.TotalPasswords),
		"Average length", w.float(r.AvgLength),
		"Theoretical entropy min", w.float(r.TheoreticalMin)+" bits",
		"Theoretical entropy mean", w.float(r.TheoreticalMean)+" bits",
		"Theoretical entropy max", w.float(r.TheoreticalMax)+" bits",
		"Total characters", w.count(r.TotalChars),
		"Unique characters", w.count(r.UniqueChars),
		"Character distribution entropy", w.float(r.CharDistributionEntropy)+" bits/char",
		"Character min-entropy", w.float(r.CharMinEntropy)+" bits/char",
	)
	w.classCounts(r.Counts)
	w.charFrequencies("Top character", r.TopChars)
}

func (w *Writer) Profile(source string, p compare.Profile) {
	w.title("Patterns of %s", source)
	w.keyValues(
		"Total passwords", w.count(p.TotalPasswords),
		"Average length", w.float(p.AvgLength),
		"Unique patterns", w.count(p.UniquePatterns),
	)

	lengths := make([][]string, 0, len(p.TopLengths))
	for _, l := range p.TopLengths {
		lengths = append(lengths, []string{strconv.Itoa(l.Length), w.count(l.Count), percent(l.Frequency)})
	}
	w.table([]string{"Length", "Count", "Frequency"}, lengths)

	patterns := make([][]string, 0, len(p.TopPatterns))
	for _, pc := range p.TopPatterns {
		patterns = append(patterns, []string{string(pc.Pattern), w.count(pc.Count), percent(pc.Frequency)})
	}
	w.table([]string{"Pattern", "Count", "Frequency"}, patterns)
}

func (w *Writer) Comparison(reference string, r compare.Result) {
	w.title("Distance to %s (%s passwords)", reference, w.count(r.Stats.ReferencePasswords))

	rows := make([][]string, 0, len(r.Distances))
	for i, d := range r.Distances {
		size := ""
		if i < len(r.Stats.Candidates) {
			size = w.count(r.Stats.Candidates[i].Passwords)
		}
		rows = append(rows, []string{d.Name, size, w.float(d.LengthDistance), w.float(d.PatternDistance)})
	}
	w.table([]string{"Candidate", "Passwords", "Length distance", "Pattern distance"}, rows)
}
