// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"math"
	"unicode/utf8"
)

// DefaultGuessRate is the assumed offline attacker throughput, in guesses per
// second. Every reported crack time scales with it.
const DefaultGuessRate = 1e9

// Placeholder is rendered for crack times that are undefined or not finite.
const Placeholder = "—"

// Character class sizes used to estimate the search space.
const (
	lowerSize   = 26
	upperSize   = 26
	digitSize   = 10
	symbolSize  = 33
	defaultSize = 10
)

// Counts at or above this many years are rendered with a capped label.
const maxYears = 1_000_000

type unit struct {
	name    string
	seconds float64
}

var units = []unit{
	{"year", 365 * 24 * 60 * 60},
	{"day", 24 * 60 * 60},
	{"hour", 60 * 60},
	{"minute", 60},
	{"second", 1},
}

// CharsetSize sums the sizes of the character classes present in candidate.
func CharsetSize(c Criteria) int {
	size := 0
	if c.Lower {
		size += lowerSize
	}
	if c.Upper {
		size += upperSize
	}
	if c.Digit {
		size += digitSize
	}
	if c.Symbol {
		size += symbolSize
	}
	if size == 0 {
		size = defaultSize
	}
	return size
}

// CrackTimeSeconds estimates the expected seconds an attacker making guessRate
// guesses per second needs to find candidate by exhaustive search. It returns
// nil for an empty candidate. Large search spaces overflow to +Inf.
func CrackTimeSeconds(candidate string, guessRate float64) *float64 {
	if candidate == "" {
		return nil
	}
	if guessRate <= 0 {
		guessRate = DefaultGuessRate
	}

	charset := float64(CharsetSize(CheckCriteria(candidate)))
	space := math.Pow(charset, float64(utf8.RuneCountInString(candidate)))
	seconds := space / 2 / guessRate
	return &seconds
}

// FormatDuration renders seconds using the largest whole unit, from years down
// to seconds. Negative or non-finite values render as Placeholder.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return Placeholder
	}
	if seconds < 1 {
		return "< 1 second"
	}

	for _, u := range units {
		n := math.Floor(seconds / u.seconds)
		if n < 1 {
			continue
		}

		if u.name == "year" {
			p := message.NewPrinter(language.English)
			if n >= maxYears {
				return p.Sprintf("%d+ years", maxYears)
			}
			return p.Sprintf("%d %s", int64(n), plural(u.name, n))
		}
		return fmt.Sprintf("%d %s", int64(n), plural(u.name, n))
	}

	return "< 1 second"
}

func plural(name string, n float64) string {
	if n == 1 {
		return name
	}
	return name + "s"
}
