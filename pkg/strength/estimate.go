// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"github.com/nbutton23/zxcvbn-go"
)

// Estimate is the zxcvbn guessability estimate of a password. It is informative only and never changes a Verdict.
type Estimate struct {
	// Score from 0 (too guessable) to 4 (very unguessable).
	Score            int     `json:"score"`
	Entropy          float64 `json:"entropy"`
	CrackTime        float64 `json:"crack_time"`
	CrackTimeDisplay string  `json:"crack_time_display"`
}

// EstimatePassword runs zxcvbn on password. userInputs, e.g. the user name, are penalized when found in it.
func EstimatePassword(password string, userInputs ...string) Estimate {
	m := zxcvbn.PasswordStrength(password, userInputs)
	return Estimate{
		Score:            m.Score,
		Entropy:          m.Entropy,
		CrackTime:        m.CrackTime,
		CrackTimeDisplay: m.CrackTimeDisplay,
	}
}
