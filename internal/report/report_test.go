// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"github.com/alvinbaena/pwd-analyst/pkg/compare"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/entropy"
	"github.com/alvinbaena/pwd-analyst/pkg/strength"
	"strings"
	"testing"
)

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("Report should contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriter_Strength(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	pwned := 1234567
	estimate := strength.EstimatePassword("abc")
	w.Strength(PasswordStrength{
		Verdict:    strength.NewEvaluator(strength.Options{}).Evaluate("abc"),
		Estimate:   &estimate,
		PwnedCount: &pwned,
	})
	if err := w.Err(); err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	assertContains(t, buf.String(), "Password is weak", "too short", "missing special character", "zxcvbn score",
		"1,234,567")
}

func TestWriter_StrengthSummary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	results, _ := strength.NewEvaluator(strength.Options{}).EvaluateAll([]string{"abc", "Abcdefg1!"}, strength.BatchOptions{Workers: 1})
	w.StrengthSummary("gen.txt", strength.Summarize(results, 0))

	assertContains(t, buf.String(), "Strength of gen.txt", "1 (50.0%)", "missing uppercase", "abc")
}

func TestWriter_Entropy(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	single, err := entropy.AnalyzeSingle("a a")
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	w.PasswordEntropy(single)

	c, err := entropy.AnalyzeCorpus([]string{"abc", "abcd"})
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	w.CorpusEntropy("corpus.txt", c)

	assertContains(t, buf.String(), "Shannon entropy", "<space>", "Entropy of corpus.txt", "Theoretical entropy mean")
}

func TestWriter_EntropyRatio(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	// 4 distinct chars twice each: 2 bits out of log2(8) = 3
	r, err := entropy.AnalyzeSingle("Ab3!Ab3!")
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	w.PasswordEntropy(r)

	assertContains(t, buf.String(), "66.67%")
	if strings.Contains(buf.String(), "6666.67%") {
		t.Errorf("Entropy ratio is already a percentage:\n%s", buf.String())
	}
}

func TestWriter_Patterns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	comparator := compare.NewComparator(nil)
	reference := corpus.Corpus{"abc", "abcd", "Ab1!"}

	p, err := comparator.Profile(reference, 0, 0)
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	w.Profile("reference.txt", p)

	r, err := comparator.Compare(reference, []compare.Candidate{{Name: "markov", Corpus: corpus.Corpus{"abc", "abd", "Xyz12"}}})
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}
	w.Comparison("reference.txt", r)

	assertContains(t, buf.String(), "Patterns of reference.txt", "ULDS", "Distance to reference.txt", "markov",
		"0.8165", "0.6667")
}
