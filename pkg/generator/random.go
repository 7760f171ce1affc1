// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package generator

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source is a uniform random integer source. Intn returns a value in [0, n)
// and may panic if n <= 0.
type Source interface {
	Intn(n int) int
}

type cryptoSource struct{}

// CryptoSource draws from crypto/rand. It is the default source of the
// package and the one to use for real passwords.
var CryptoSource Source = cryptoSource{}

func (cryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unusable.
		panic(err)
	}
	return int(v.Int64())
}

// NewMathSource returns a seeded math/rand source. It is NOT suitable for
// secrets, only for reproducible output in tests and demos.
func NewMathSource(seed int64) Source {
	return mrand.New(mrand.NewSource(seed))
}
