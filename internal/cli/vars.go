// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// root
	prefsLocation string
	// check, audit, live
	guessRate float64
	// check
	interactive bool
	// check
	pwned bool
	// check, serve
	hibpURL string
	// audit
	inputFile string
	// audit
	workers int
	// audit
	minScore int
	// generate, live
	length int
	// generate, live
	useUpper bool
	// generate, live
	useLower bool
	// generate, live
	useDigit bool
	// generate, live
	useSymbol bool
	// generate
	count int
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
	// serve
	hibpEnabled bool
	// serve
	hibpCacheSize int64
)
