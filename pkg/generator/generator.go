// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package generator builds random passwords that contain at least one
// character of every enabled class.
package generator

import (
	"errors"
	"strings"
)

const (
	UpperAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowerAlphabet  = "abcdefghijklmnopqrstuvwxyz"
	DigitAlphabet  = "0123456789"
	SymbolAlphabet = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

var (
	ErrNoClassSelected = errors.New("no character class selected")
	ErrInvalidLength   = errors.New("password length cannot be negative")
)

// Classes selects the character classes that take part in a password.
type Classes struct {
	Upper  bool `json:"upper"`
	Lower  bool `json:"lower"`
	Digit  bool `json:"digit"`
	Symbol bool `json:"symbol"`
}

func AllClasses() Classes {
	return Classes{Upper: true, Lower: true, Digit: true, Symbol: true}
}

// Alphabets returns the alphabet of every enabled class, in a fixed order.
func (c Classes) Alphabets() []string {
	alphabets := make([]string, 0, 4)
	if c.Upper {
		alphabets = append(alphabets, UpperAlphabet)
	}
	if c.Lower {
		alphabets = append(alphabets, LowerAlphabet)
	}
	if c.Digit {
		alphabets = append(alphabets, DigitAlphabet)
	}
	if c.Symbol {
		alphabets = append(alphabets, SymbolAlphabet)
	}
	return alphabets
}

type Generator struct {
	src Source
}

// New returns a generator drawing from src. A nil src means CryptoSource.
func New(src Source) *Generator {
	if src == nil {
		src = CryptoSource
	}
	return &Generator{src: src}
}

// Generate returns a random password of the requested length. When length is
// smaller than the number of enabled classes the result holds exactly one
// character per class instead.
func (g *Generator) Generate(length int, classes Classes) (string, error) {
	if length < 0 {
		return "", ErrInvalidLength
	}

	alphabets := classes.Alphabets()
	if len(alphabets) == 0 {
		return "", ErrNoClassSelected
	}

	size := length
	if size < len(alphabets) {
		size = len(alphabets)
	}

	out := make([]byte, 0, size)
	// One guaranteed character per class first.
	for _, alphabet := range alphabets {
		out = append(out, g.pick(alphabet))
	}

	union := strings.Join(alphabets, "")
	for len(out) < size {
		out = append(out, g.pick(union))
	}

	g.shuffle(out)
	return string(out), nil
}

func (g *Generator) pick(alphabet string) byte {
	return alphabet[g.src.Intn(len(alphabet))]
}

// shuffle is an in place Fisher-Yates shuffle, last index down to 1.
func (g *Generator) shuffle(b []byte) {
	for i := len(b) - 1; i > 0; i-- {
		j := g.src.Intn(i + 1)
		b[i], b[j] = b[j], b[i]
	}
}

var defaultGenerator = New(CryptoSource)

// Generate uses a generator backed by CryptoSource.
func Generate(length int, classes Classes) (string, error) {
	return defaultGenerator.Generate(length, classes)
}
