// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package pattern

import (
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"testing"
	"unicode/utf8"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		input string
		want  Pattern
	}{
		{"Ab3!", "ULDS"},
		{"", ""},
		{"password", "LLLLLLLL"},
		{"P@ss w0rd", "USLLSLDLL"},
		{"Ñandú٣", "ULLLLD"},
		{"密码", "SS"},
	}

	for _, tc := range cases {
		if got := Classify(tc.input); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestClassifier_ASCII(t *testing.T) {
	c := NewClassifier(charclass.ASCII)
	if got := c.Classify("Ñandú٣"); got != "SLLLSS" {
		t.Errorf("ASCII classifier should treat non-ASCII as special, got %q", got)
	}
}

func TestClassify_Length(t *testing.T) {
	inputs := []string{"", "a", "Tr0ub4dor&3", "mật khẩu", "🔑🔑key", "\t \n"}
	for _, in := range inputs {
		if got := Classify(in); len(got) != utf8.RuneCountInString(in) {
			t.Errorf("Pattern of %q should have %d symbols, got %d", in, utf8.RuneCountInString(in), len(got))
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	c := NewClassifier(nil)
	key := c.Key()
	for _, in := range []string{"Ab3!", "CorrectHorse9!", "ÉTÉ2024"} {
		if c.Classify(in) != key(in) || Classify(in) != c.Classify(in) {
			t.Errorf("Classify(%q) should always return the same pattern", in)
		}
	}
}
