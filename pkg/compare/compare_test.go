// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package compare

import (
	"errors"
	"github.com/alvinbaena/pwd-analyst/pkg/corpus"
	"github.com/alvinbaena/pwd-analyst/pkg/pattern"
	"math"
	"strings"
	"testing"
)

const tolerance = 1e-9

func loadFixture(t *testing.T, path string) corpus.Corpus {
	t.Helper()

	c, err := corpus.LoadFile(path)
	if err != nil {
		t.Fatalf("Should not fail loading %s: %s", path, err)
	}

	return c
}

func TestCompare(t *testing.T) {
	reference := loadFixture(t, "../../test/data/reference.txt")
	generated := loadFixture(t, "../../test/data/generated.txt")

	res, err := NewComparator(nil).Compare(reference, []Candidate{
		{Name: "markov", Corpus: generated},
		{Name: "identity", Corpus: reference},
	})
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	if len(res.Distances) != 2 || res.Distances[0].Name != "markov" || res.Distances[1].Name != "identity" {
		t.Fatalf("Distances should keep the candidate order, got %+v", res.Distances)
	}

	// lengths {3: 1/3, 4: 2/3} vs {3: 2/3, 5: 1/3}
	if d := res.Distances[0].LengthDistance; math.Abs(d-math.Sqrt(6)/3) > tolerance {
		t.Errorf("Length distance should be sqrt(6)/3, got %f", d)
	}
	// patterns {LLL, LLLL, ULDS: 1/3} vs {LLL: 2/3, ULLDD: 1/3}
	if d := res.Distances[0].PatternDistance; math.Abs(d-2.0/3.0) > tolerance {
		t.Errorf("Pattern distance should be 2/3, got %f", d)
	}

	if res.Distances[1].LengthDistance != 0 || res.Distances[1].PatternDistance != 0 {
		t.Errorf("A corpus should be at distance 0 of itself, got %+v", res.Distances[1])
	}

	if res.Stats.ReferencePasswords != 3 || len(res.Stats.Candidates) != 2 || res.Stats.Candidates[0].Passwords != 3 {
		t.Errorf("Unexpected stats: %+v", res.Stats)
	}
}

func TestCompare_Errors(t *testing.T) {
	c := NewComparator(nil)
	reference := corpus.Corpus{"abc"}

	if _, err := c.Compare(reference, nil); !errors.Is(err, corpus.ErrMismatchedInput) {
		t.Errorf("Should fail with ErrMismatchedInput without candidates, got %v", err)
	}

	if _, err := c.Compare(nil, []Candidate{{Name: "gan", Corpus: reference}}); !errors.Is(err, corpus.ErrEmptyInput) {
		t.Errorf("Should fail with ErrEmptyInput for an empty reference, got %v", err)
	}

	_, err := c.Compare(reference, []Candidate{{Name: "gan", Corpus: reference}, {Name: "lstm"}})
	if !errors.Is(err, corpus.ErrEmptyInput) {
		t.Fatalf("Should fail with ErrEmptyInput for an empty candidate, got %v", err)
	}
	if !strings.Contains(err.Error(), "lstm") {
		t.Errorf("Error should name the empty corpus, got %s", err)
	}
}

func TestProfile(t *testing.T) {
	c := corpus.Corpus{"abc", "abd", "Xyz12", "abcd", "xyz"}

	p, err := NewComparator(nil).Profile(c, 2, 0)
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	if p.TotalPasswords != 5 || p.UniquePatterns != 3 {
		t.Errorf("Unexpected totals: %+v", p)
	}
	if math.Abs(p.AvgLength-18.0/5.0) > tolerance {
		t.Errorf("Average length should be 3.6, got %f", p.AvgLength)
	}

	if len(p.TopLengths) != 2 || p.TopLengths[0].Length != 3 || p.TopLengths[0].Count != 3 || p.TopLengths[1].Length != 5 {
		t.Errorf("Top lengths should be 3 then 5 (first seen), got %+v", p.TopLengths)
	}
	if math.Abs(p.TopLengths[0].Frequency-0.6) > tolerance {
		t.Errorf("Frequency of length 3 should be 0.6, got %f", p.TopLengths[0].Frequency)
	}

	want := []pattern.Pattern{"LLL", "ULLDD", "LLLL"}
	if len(p.TopPatterns) != len(want) {
		t.Fatalf("Should have %d patterns, have %d", len(want), len(p.TopPatterns))
	}
	for i, w := range want {
		if p.TopPatterns[i].Pattern != w {
			t.Errorf("Pattern %d should be %s, got %s", i, w, p.TopPatterns[i].Pattern)
		}
	}
}

func TestProfile_Empty(t *testing.T) {
	if _, err := NewComparator(nil).Profile(nil, 0, 0); !errors.Is(err, corpus.ErrEmptyInput) {
		t.Errorf("Should fail with ErrEmptyInput, got %v", err)
	}
}
