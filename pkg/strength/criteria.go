// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"strings"
	"unicode/utf8"
)

// MinLength is the length a candidate needs to satisfy the length criterion.
const MinLength = 12

// Well known weak tokens. Matched as case-insensitive substrings.
var commonTokens = []string{
	"password",
	"qwerty",
	"123456",
	"12345678",
	"111111",
	"admin",
	"letmein",
	"iloveyou",
	"welcome",
}

// Keyboard and alphabet runs a lot of people start their passwords with.
var sequentialPrefixes = []string{"1234", "abcd", "qwer"}

var leetFolder = strings.NewReplacer(
	"0", "o",
	"1", "l",
	"3", "e",
	"4", "a",
	"5", "s",
	"7", "t",
	"@", "a",
	"$", "s",
)

// Criteria is the set of independent checks run against a candidate.
type Criteria struct {
	Length   bool `json:"length"`
	Upper    bool `json:"upper"`
	Lower    bool `json:"lower"`
	Digit    bool `json:"digit"`
	Symbol   bool `json:"symbol"`
	Uncommon bool `json:"uncommon"`
}

// CheckCriteria evaluates every criterion against candidate. An empty candidate
// satisfies none of them, Uncommon included.
func CheckCriteria(candidate string) Criteria {
	if candidate == "" {
		return Criteria{}
	}

	c := Criteria{
		Length:   utf8.RuneCountInString(candidate) >= MinLength,
		Uncommon: !LooksCommon(candidate),
	}

	for _, r := range candidate {
		switch {
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= '0' && r <= '9':
			c.Digit = true
		default:
			c.Symbol = true
		}
	}

	return c
}

// Classes returns how many of the four character classes are present.
func (c Criteria) Classes() int {
	n := 0
	for _, ok := range []bool{c.Upper, c.Lower, c.Digit, c.Symbol} {
		if ok {
			n++
		}
	}
	return n
}

// All reports whether every criterion is met.
func (c Criteria) All() bool {
	return c.Length && c.Upper && c.Lower && c.Digit && c.Symbol && c.Uncommon
}

func (c Criteria) Map() map[string]bool {
	return map[string]bool{
		"length":   c.Length,
		"upper":    c.Upper,
		"lower":    c.Lower,
		"digit":    c.Digit,
		"symbol":   c.Symbol,
		"uncommon": c.Uncommon,
	}
}

// LooksCommon reports whether candidate matches a known weak pattern: it
// contains a denylisted token (also after undoing common leetspeak
// substitutions), it is six or more repetitions of a single character, or it
// starts with a sequential run.
func LooksCommon(candidate string) bool {
	if candidate == "" {
		return false
	}

	lower := strings.ToLower(candidate)
	folded := leetFolder.Replace(lower)
	for _, token := range commonTokens {
		if strings.Contains(lower, token) || strings.Contains(folded, token) {
			return true
		}
	}

	if isRepeated(candidate, 6) {
		return true
	}

	for _, prefix := range sequentialPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	return false
}

// isRepeated reports whether s is made of at least min copies of one rune.
func isRepeated(s string, min int) bool {
	first, _ := utf8.DecodeRuneInString(s)
	count := 0
	for _, r := range s {
		if r != first {
			return false
		}
		count++
	}
	return count >= min
}
