// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"bytes"
	"fmt"
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	e := NewEvaluator(Options{})

	cases := []struct {
		name     string
		password string
		want     []Issue
	}{
		{"only lowercase", "abc", []Issue{TooShort, MissingUpper, MissingDigit, MissingSpecial}},
		{"empty", "", []Issue{TooShort, MissingUpper, MissingLower, MissingDigit, MissingSpecial}},
		{"strong", "Abcdefg1!", []Issue{}},
		{"missing special", "Abcdefg1h", []Issue{MissingSpecial}},
		{"special outside the set", "Abcdefg1_", []Issue{MissingSpecial}},
		{"missing lowercase", "ABCDEFG1!", []Issue{MissingLower}},
		{"common without deny list", "password", []Issue{MissingUpper, MissingDigit, MissingSpecial}},
		{"unicode uppercase", "Ñandú123!", []Issue{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Evaluate(tc.password)
			if !reflect.DeepEqual(got.Issues, tc.want) {
				t.Errorf("Evaluate(%q).Issues = %v, want %v", tc.password, got.Issues, tc.want)
			}
			if got.Strong != (len(got.Issues) == 0) {
				t.Errorf("Evaluate(%q).Strong = %v with issues %v", tc.password, got.Strong, got.Issues)
			}
		})
	}
}

func TestEvaluate_DenyCommon(t *testing.T) {
	e := NewEvaluator(Options{DenyCommon: true})

	got := e.Evaluate("QWERTY")
	want := []Issue{TooShort, MissingLower, MissingDigit, MissingSpecial, TooCommon}
	if !reflect.DeepEqual(got.Issues, want) {
		t.Errorf("Evaluate(QWERTY).Issues = %v, want %v", got.Issues, want)
	}

	if v := e.Evaluate("Password1!"); !v.Strong {
		t.Errorf("Only exact matches should be denied, got %v", v.Issues)
	}
}

func TestEvaluate_ASCII(t *testing.T) {
	e := NewEvaluator(Options{Classes: charclass.ASCII})

	got := e.Evaluate("Ñandú123!")
	if !reflect.DeepEqual(got.Issues, []Issue{MissingUpper}) {
		t.Errorf("Ñ should not count as uppercase in ASCII mode, got %v", got.Issues)
	}
}

func TestEvaluateAll_Order(t *testing.T) {
	e := NewEvaluator(Options{DenyCommon: true})

	passwords := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		if i%3 == 0 {
			passwords = append(passwords, fmt.Sprintf("Strong#%04d", i))
		} else {
			passwords = append(passwords, fmt.Sprintf("weak%d", i))
		}
	}

	var calls int64
	results, err := e.EvaluateAll(passwords, BatchOptions{
		Workers:    4,
		ChunkSize:  7,
		OnProgress: func(int) { atomic.AddInt64(&calls, 1) },
	})
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	if len(results) != len(passwords) {
		t.Fatalf("Should have %d results, have %d", len(passwords), len(results))
	}

	for i, r := range results {
		if r.Index != i || r.Password != passwords[i] {
			t.Fatalf("Result %d is out of order: %+v", i, r)
		}
		if r.Strong != (i%3 == 0) {
			t.Errorf("Result %d should be strong=%v", i, i%3 == 0)
		}
	}

	if calls != 143 {
		t.Errorf("Progress should be reported once per chunk (143), got %d", calls)
	}
}

func TestEvaluateAll_Sequential(t *testing.T) {
	e := NewEvaluator(Options{})

	results, err := e.EvaluateAll([]string{"abc", "Abcdefg1!"}, BatchOptions{Workers: 1})
	if err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	if results[0].Strong || !results[1].Strong {
		t.Errorf("Unexpected verdicts: %+v", results)
	}

	empty, err := e.EvaluateAll(nil, BatchOptions{})
	if err != nil || len(empty) != 0 {
		t.Errorf("An empty corpus should give no results, got %v, %v", empty, err)
	}
}

func TestSummarize(t *testing.T) {
	e := NewEvaluator(Options{})
	passwords := []string{"abc", "Abcdefg1!", "ABC", "Zyxwvut9?", "abcdefgh"}
	results, _ := e.EvaluateAll(passwords, BatchOptions{Workers: 1})

	s := Summarize(results, 2)
	if s.TotalPasswords != 5 || s.StrongPasswords != 2 || s.WeakPasswords != 3 {
		t.Errorf("Unexpected totals: %+v", s)
	}
	if s.StrongPercent != 40 || s.WeakPercent != 60 {
		t.Errorf("Unexpected percentages: %f, %f", s.StrongPercent, s.WeakPercent)
	}

	if len(s.SampleWeak) != 2 || s.SampleWeak[0].Password != "abc" || s.SampleWeak[1].Password != "ABC" {
		t.Errorf("Weak sample should be the first 2 weak passwords, got %+v", s.SampleWeak)
	}
	if !reflect.DeepEqual(s.StrongList, []string{"Abcdefg1!", "Zyxwvut9?"}) {
		t.Errorf("Unexpected strong list: %v", s.StrongList)
	}

	// abc: short, upper, digit, special. ABC: short, lower, digit, special. abcdefgh: upper, digit, special.
	want := []IssueCount{
		{MissingDigit, 3},
		{MissingSpecial, 3},
		{TooShort, 2},
		{MissingUpper, 2},
		{MissingLower, 1},
	}
	if !reflect.DeepEqual(s.CommonIssues, want) {
		t.Errorf("CommonIssues = %v, want %v", s.CommonIssues, want)
	}
}

func TestSummarize_Percentages(t *testing.T) {
	s := Summarize([]Result{{Verdict: Verdict{Strong: true}}, {}, {}}, 0)
	if s.StrongPercent != 33.3 || s.WeakPercent != 66.7 {
		t.Errorf("Percentages should be rounded to one decimal, got %f, %f", s.StrongPercent, s.WeakPercent)
	}
}

func TestSummarize_PercentagesHalfToEven(t *testing.T) {
	results := make([]Result, 16)
	results[0].Strong = true

	// 6.25 and 93.75
	s := Summarize(results, 0)
	if s.StrongPercent != 6.2 || s.WeakPercent != 93.8 {
		t.Errorf("Halves should round to even, got %f, %f", s.StrongPercent, s.WeakPercent)
	}
}

func TestWriteStrongList(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	if err := WriteStrongList(&buf, "gen.txt", []string{"Abcdefg1!", "Zyxwvut9?"}, at); err != nil {
		t.Fatalf("Should not fail: %s", err)
	}

	out := buf.String()
	for _, want := range []string{"Time: 2024-05-01 10:30:00", "Source: gen.txt", "Total strong passwords: 2", "1. Abcdefg1!\n2. Zyxwvut9?\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Export should contain %q, got:\n%s", want, out)
		}
	}
}

func TestEstimatePassword(t *testing.T) {
	weak := EstimatePassword("password")
	strong := EstimatePassword("correct-Horse-battery-staple-91!")

	if weak.Score > 1 {
		t.Errorf("password should have a low score, got %d", weak.Score)
	}
	if strong.Score <= weak.Score || strong.Entropy <= weak.Entropy {
		t.Errorf("A long passphrase should score better than password: %+v vs %+v", strong, weak)
	}
	if weak.CrackTimeDisplay == "" {
		t.Errorf("Crack time should be displayed")
	}
}
