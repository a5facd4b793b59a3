// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package pattern

import (
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"strings"
)

const (
	Lower   = 'L'
	Upper   = 'U'
	Digit   = 'D'
	Special = 'S'
)

// Pattern is the structural shape of a password, one of L, U, D or S per character.
type Pattern string

type Classifier struct {
	classes charclass.Classes
}

func NewClassifier(classes charclass.Classes) *Classifier {
	if classes == nil {
		classes = charclass.Unicode
	}

	return &Classifier{classes: classes}
}

// Classify maps every rune of password to its class symbol, checking lowercase, uppercase and digit in that order.
func (c *Classifier) Classify(password string) Pattern {
	var b strings.Builder
	b.Grow(len(password))

	for _, r := range password {
		switch {
		case c.classes.IsLower(r):
			b.WriteByte(Lower)
		case c.classes.IsUpper(r):
			b.WriteByte(Upper)
		case c.classes.IsDigit(r):
			b.WriteByte(Digit)
		default:
			b.WriteByte(Special)
		}
	}

	return Pattern(b.String())
}

// Key is Classify as a distribution key function.
func (c *Classifier) Key() func(string) Pattern {
	return c.Classify
}

var unicodeClassifier = NewClassifier(charclass.Unicode)

// Classify uses the Unicode aware character classes.
func Classify(password string) Pattern {
	return unicodeClassifier.Classify(password)
}
