// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"github.com/alvinbaena/pwd-analyst/pkg/charclass"
	"strings"
	"unicode/utf8"
)

// Issue is the reason a password is considered weak.
type Issue string

const (
	TooShort       Issue = "too short"
	MissingUpper   Issue = "missing uppercase"
	MissingLower   Issue = "missing lowercase"
	MissingDigit   Issue = "missing digit"
	MissingSpecial Issue = "missing special character"
	TooCommon      Issue = "too common"
)

// MinLength is the minimum number of characters of a strong password.
const MinLength = 8

// SpecialChars is the set of characters accepted as special characters.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

var commonPasswords = map[string]struct{}{
	"password": {},
	"123456":   {},
	"qwerty":   {},
	"admin":    {},
}

// Verdict is the result of evaluating a password. Strong is true only when there are no issues.
type Verdict struct {
	Strong bool    `json:"is_strong"`
	Issues []Issue `json:"issues"`
}

type Options struct {
	// DenyCommon rejects passwords found in the common passwords list.
	DenyCommon bool
	// Classes decides what is an uppercase, lowercase or digit character. Unicode if nil.
	Classes charclass.Classes
}

type Evaluator struct {
	denyCommon bool
	classes    charclass.Classes
}

func NewEvaluator(opts Options) *Evaluator {
	classes := opts.Classes
	if classes == nil {
		classes = charclass.Unicode
	}

	return &Evaluator{denyCommon: opts.DenyCommon, classes: classes}
}

// Evaluate runs every check on password. Issues are reported in check order and are never short-circuited.
func (e *Evaluator) Evaluate(password string) Verdict {
	issues := make([]Issue, 0, 6)

	if utf8.RuneCountInString(password) < MinLength {
		issues = append(issues, TooShort)
	}
	if !e.containsFunc(password, e.classes.IsUpper) {
		issues = append(issues, MissingUpper)
	}
	if !e.containsFunc(password, e.classes.IsLower) {
		issues = append(issues, MissingLower)
	}
	if !e.containsFunc(password, e.classes.IsDigit) {
		issues = append(issues, MissingDigit)
	}
	if !strings.ContainsAny(password, SpecialChars) {
		issues = append(issues, MissingSpecial)
	}
	if e.denyCommon && IsCommon(password) {
		issues = append(issues, TooCommon)
	}

	return Verdict{Strong: len(issues) == 0, Issues: issues}
}

func (e *Evaluator) containsFunc(password string, f func(rune) bool) bool {
	return strings.IndexFunc(password, f) >= 0
}

// IsCommon reports whether password, case-folded, is in the common passwords list.
func IsCommon(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}
