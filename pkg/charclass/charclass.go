// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package charclass holds the character classification used by the analyzers. Results for
// non-ASCII input depend on which implementation is picked, so the choice is always explicit.
package charclass

import (
	"unicode"
)

// Classes decides whether a rune is a lowercase letter, an uppercase letter or a decimal digit.
// Anything else is "special".
type Classes interface {
	IsLower(r rune) bool
	IsUpper(r rune) bool
	IsDigit(r rune) bool
}

type unicodeClasses struct{}

func (unicodeClasses) IsLower(r rune) bool { return unicode.IsLower(r) }
func (unicodeClasses) IsUpper(r rune) bool { return unicode.IsUpper(r) }
func (unicodeClasses) IsDigit(r rune) bool { return unicode.IsDigit(r) }

type asciiClasses struct{}

func (asciiClasses) IsLower(r rune) bool { return r >= 'a' && r <= 'z' }
func (asciiClasses) IsUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func (asciiClasses) IsDigit(r rune) bool { return r >= '0' && r <= '9' }

var (
	// Unicode uses the unicode package predicates, so 'é' is lowercase and 'Ж' uppercase.
	Unicode Classes = unicodeClasses{}
	// ASCII only recognizes a-z, A-Z and 0-9. Every other rune is special.
	ASCII Classes = asciiClasses{}
)

// Select returns ASCII when asciiOnly is set, Unicode otherwise.
func Select(asciiOnly bool) Classes {
	if asciiOnly {
		return ASCII
	}

	return Unicode
}

// Counts is the per class character count of a text. Special is the residual: total minus the other three.
type Counts struct {
	Lowercase int `json:"lowercase_count"`
	Uppercase int `json:"uppercase_count"`
	Digit     int `json:"digit_count"`
	Special   int `json:"special_count"`
}

// Count tallies the classes of every rune of s.
func Count(classes Classes, s string) Counts {
	var c Counts
	total := 0
	for _, r := range s {
		total++
		switch {
		case classes.IsLower(r):
			c.Lowercase++
		case classes.IsUpper(r):
			c.Uppercase++
		case classes.IsDigit(r):
			c.Digit++
		}
	}
	c.Special = total - c.Lowercase - c.Uppercase - c.Digit

	return c
}

// Add sums two counts.
func (c Counts) Add(o Counts) Counts {
	return Counts{
		Lowercase: c.Lowercase + o.Lowercase,
		Uppercase: c.Uppercase + o.Uppercase,
		Digit:     c.Digit + o.Digit,
		Special:   c.Special + o.Special,
	}
}

// Total is the number of characters counted.
func (c Counts) Total() int {
	return c.Lowercase + c.Uppercase + c.Digit + c.Special
}
