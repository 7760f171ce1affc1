// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestEvaluate_Empty(t *testing.T) {
	r := Evaluate("")
	if r.Score != 0 {
		t.Errorf("Empty candidate should score 0, got %d", r.Score)
	}
	if r.Label != VeryWeak {
		t.Errorf("Empty candidate should be %s, got %s", VeryWeak, r.Label)
	}
	if r.Criteria != (Criteria{}) {
		t.Errorf("Empty candidate should meet no criteria, got %+v", r.Criteria)
	}
	if r.CrackTimeSeconds != nil {
		t.Errorf("Empty candidate should have no crack time, got %f", *r.CrackTimeSeconds)
	}
	if r.CrackTimeDisplay() != Placeholder {
		t.Errorf("Empty candidate should display %q, got %q", Placeholder, r.CrackTimeDisplay())
	}
}

func TestEvaluate_Scores(t *testing.T) {
	cases := []struct {
		candidate string
		score     int
		label     Label
	}{
		{"Passw0rd!", 40, Weak},
		{"Xk9#mQ2vLp7!", 84, Strong},
		{"Xk9#mQ2vLp7!Zr", 88, Excellent},
		{"abcXYZ123", 53, Good},
		{"correcthorsebatterystaple", 52, Good},
		{"aaaaaaa", 0, VeryWeak},
		{"password", 1, VeryWeak},
		{"hunter2", 35, Weak},
	}

	for _, tc := range cases {
		r := Evaluate(tc.candidate)
		if r.Score != tc.score {
			t.Errorf("Evaluate(%q).Score: %d, want: %d", tc.candidate, r.Score, tc.score)
		}
		if r.Label != tc.label {
			t.Errorf("Evaluate(%q).Label: %s, want: %s", tc.candidate, r.Label, tc.label)
		}
	}
}

func TestEvaluate_WeakerThanStrong(t *testing.T) {
	weak := Evaluate("Passw0rd!")
	strong := Evaluate("Xk9#mQ2vLp7!")
	if weak.Score >= strong.Score {
		t.Errorf("Passw0rd! (%d) should score below Xk9#mQ2vLp7! (%d)", weak.Score, strong.Score)
	}
	if weak.Criteria.Uncommon {
		t.Errorf("Passw0rd! should be flagged as a weak pattern")
	}
	if weak.Criteria.Length {
		t.Errorf("Passw0rd! should not meet the length criterion")
	}
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	inputs := []string{
		"", "a", "!", "1111111111", "qwertyuiop", "ÄÖÜäöü",
		strings.Repeat("Aa1!", 64), "letmein-letmein-letmein", "ABCDEFGHIJKLMNOP",
	}

	for _, in := range inputs {
		r := Evaluate(in)
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("Evaluate(%q).Score should be within [0,100], got %d", in, r.Score)
		}
	}
}

func TestEvaluate_MonotonicInLength(t *testing.T) {
	const candidate = "Xk9#mQ2vLp7!Zr8"
	last := -1
	for i := 1; i <= len(candidate); i++ {
		score := Evaluate(candidate[:i]).Score
		if score < last {
			t.Errorf("Score should not decrease when growing %q: %d < %d", candidate[:i], score, last)
		}
		last = score
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	for _, in := range []string{"", "Passw0rd!", "Xk9#mQ2vLp7!", "zzzzzz"} {
		a := Evaluate(in)
		b := Evaluate(in)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Evaluate(%q) should be deterministic: %+v != %+v", in, a, b)
		}
	}
}

func TestLooksCommon(t *testing.T) {
	cases := []struct {
		candidate string
		want      bool
	}{
		{"password", true},
		{"xxPASSWORDxx", true},
		{"myPassWord2024!", true},
		{"P@ssw0rd", true},
		{"aaaaaaa", true},
		{"aaaaaa", true},
		{"aaaaa", false},
		{"1234zzzz", true},
		{"ABCDpony", true},
		{"Qwer!!", true},
		{"iloveyou", true},
		{"abcXYZ123", false},
		{"Xk9#mQ2vLp7!", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := LooksCommon(tc.candidate); got != tc.want {
			t.Errorf("LooksCommon(%q): %t, want: %t", tc.candidate, got, tc.want)
		}
	}
}

func TestCheckCriteria(t *testing.T) {
	c := CheckCriteria("Xk9#mQ2vLp7!")
	want := Criteria{Length: true, Upper: true, Lower: true, Digit: true, Symbol: true, Uncommon: true}
	if c != want {
		t.Errorf("CheckCriteria: %+v, want: %+v", c, want)
	}
	if !c.All() {
		t.Errorf("All should be true when every criterion is met")
	}

	c = CheckCriteria("über")
	if !c.Symbol || !c.Lower || c.Upper {
		t.Errorf("Non ASCII letters should count as symbols: %+v", c)
	}

	m := CheckCriteria("abc").Map()
	if len(m) != 6 || !m["lower"] || m["upper"] {
		t.Errorf("Map should expose every criterion: %v", m)
	}
}

func TestLabelFor(t *testing.T) {
	cases := []struct {
		score int
		want  Label
	}{
		{0, VeryWeak}, {29, VeryWeak}, {30, Weak}, {49, Weak}, {50, Good},
		{69, Good}, {70, Strong}, {84, Strong}, {85, Excellent}, {100, Excellent},
	}

	for _, tc := range cases {
		if got := LabelFor(tc.score); got != tc.want {
			t.Errorf("LabelFor(%d): %s, want: %s", tc.score, got, tc.want)
		}
	}

	if Excellent.String() != "Excellent" || VeryWeak.String() != "Very weak" {
		t.Errorf("Label names should match their display form")
	}
}

func TestCrackTimeSeconds(t *testing.T) {
	secs := CrackTimeSeconds("abc", DefaultGuessRate)
	if secs == nil {
		t.Fatalf("Crack time should be defined for a non empty candidate")
	}
	want := math.Pow(26, 3) / 2 / DefaultGuessRate
	if *secs != want {
		t.Errorf("CrackTimeSeconds(abc): %g, want: %g", *secs, want)
	}

	secs = CrackTimeSeconds("ab", 1)
	if *secs != 338 {
		t.Errorf("CrackTimeSeconds(ab, 1): %g, want: 338", *secs)
	}

	secs = CrackTimeSeconds(strings.Repeat("Aa1!", 200), DefaultGuessRate)
	if !math.IsInf(*secs, 1) {
		t.Errorf("Huge search spaces should overflow to +Inf, got %g", *secs)
	}

	if CrackTimeSeconds("", DefaultGuessRate) != nil {
		t.Errorf("Crack time should be undefined for an empty candidate")
	}
}

func TestEstimator_GuessRate(t *testing.T) {
	slow := NewEstimator(WithGuessRate(1)).Evaluate("ab")
	if got := slow.CrackTimeDisplay(); got != "5 minutes" {
		t.Errorf("CrackTimeDisplay with 1 guess/s: %q, want: %q", got, "5 minutes")
	}

	if NewEstimator(WithGuessRate(-5)).GuessRate() != DefaultGuessRate {
		t.Errorf("Non positive guess rates should keep the default")
	}

	inf := Evaluate(strings.Repeat("Aa1!", 200))
	if inf.CrackTimeDisplay() != Placeholder {
		t.Errorf("Infinite crack time should display the placeholder, got %q", inf.CrackTimeDisplay())
	}
}

func TestFormatDuration(t *testing.T) {
	const year = 365 * 24 * 60 * 60
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "< 1 second"},
		{0.5, "< 1 second"},
		{1, "1 second"},
		{59, "59 seconds"},
		{120, "2 minutes"},
		{3600, "1 hour"},
		{7199, "1 hour"},
		{90000, "1 day"},
		{2 * year, "2 years"},
		{1234 * year, "1,234 years"},
		{1e20, "1,000,000+ years"},
		{math.Inf(1), Placeholder},
		{math.NaN(), Placeholder},
		{-1, Placeholder},
	}

	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%g): %q, want: %q", tc.seconds, got, tc.want)
		}
	}
}

func TestTips(t *testing.T) {
	tips := Tips(Criteria{})
	if len(tips) != 6 {
		t.Fatalf("Every unmet criterion should produce a tip, got %d", len(tips))
	}
	if !strings.Contains(tips[0], "12 characters") {
		t.Errorf("Length tip should come first, got %q", tips[0])
	}
	if !strings.Contains(tips[5], "common") {
		t.Errorf("Weak pattern tip should come last, got %q", tips[5])
	}

	tips = Tips(Criteria{Length: true, Upper: true, Lower: true, Digit: true, Uncommon: true})
	if len(tips) != 1 || !strings.Contains(tips[0], "symbol") {
		t.Errorf("Only the symbol tip should be returned, got %v", tips)
	}

	tips = Evaluate("Xk9#mQ2vLp7!").Tips
	if len(tips) != 1 || tips[0] != AllMetTip {
		t.Errorf("A password meeting every criterion should get the affirmative tip, got %v", tips)
	}
}
