// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"pwd-strength/internal/prefs"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdstrength [COMMAND] [OPTIONS]",
		Short: "Measure password strength and generate strong passwords",
		Long: "Score passwords with live feedback: a 0-100 score, a rating, an estimated crack time and tips " +
			"to improve them. Also generates random passwords, audits password lists and serves an HTTP API.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
	rootCmd.PersistentFlags().StringVar(&prefsLocation, "prefs", prefs.DefaultFilePath(),
		"Where preferences (theme, visit counter) are kept: a file path, memory: or a redis:// URL")
}

func Execute() error {
	return rootCmd.Execute()
}

func openPrefs() (prefs.Store, error) {
	store, err := prefs.Open(prefsLocation)
	if err != nil {
		return nil, err
	}
	log.Debug().Msgf("using preferences at %s", prefsLocation)
	return store, nil
}
