package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"pwd-strength/internal/prefs"
	"pwd-strength/internal/tui"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/generator"
	"pwd-strength/pkg/strength"
)

var (
	liveCmd = &cobra.Command{
		Use:   "live",
		Short: "Live strength meter in the terminal, updated on every keystroke",
		RunE: func(cmd *cobra.Command, args []string) error {
			return liveCommand(cmd)
		},
	}
)

func init() {
	addClassFlags(liveCmd)
	liveCmd.Flags().Float64Var(&guessRate, "guess-rate", strength.DefaultGuessRate, "Assumed attacker guesses per second")

	rootCmd.AddCommand(liveCmd)
}

func liveCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	store, err := openPrefs()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	// Preferences are a nicety, the meter still works without them.
	visits, err := prefs.RecordVisit(ctx, store)
	if err != nil {
		log.Warn().Err(err).Msg("could not update visit counter")
	}
	theme, err := prefs.Theme(ctx, store)
	if err != nil {
		log.Warn().Err(err).Msg("could not read theme")
	}

	return tui.Run(tui.Config{
		Estimator: strength.NewEstimator(strength.WithGuessRate(guessRate)),
		Generator: generator.New(generator.CryptoSource),
		Store:     store,
		Length:    length,
		Classes:   selectedClasses(),
		Theme:     theme,
		Visits:    visits,
	})
}
