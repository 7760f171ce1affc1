package cli

import (
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"os"
	"pwd-strength/internal/audit"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/strength"
)

var (
	auditCmd = &cobra.Command{
		Use:   "audit",
		Short: "Score every password of a file, one per line, and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return auditCommand(cmd)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	auditCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "File with one password per line (required)")
	auditCmd.MarkFlagRequired("in-file")
	auditCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of workers. Defaults to the number of logical processors.")
	auditCmd.Flags().IntVar(&minScore, "min-score", 50, "Passwords scoring below this are counted as rejected")
	auditCmd.Flags().Float64Var(&guessRate, "guess-rate", strength.DefaultGuessRate, "Assumed attacker guesses per second")

	rootCmd.AddCommand(auditCmd)
}

func auditCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	file, err := os.Open(inputFile)
	if err != nil {
		return err
	}

	defer func(file *os.File) {
		if err = file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing password list")
		}
	}(file)

	report, err := audit.Run(cmd.Context(), file, audit.Options{
		Workers:   workers,
		MinScore:  minScore,
		Estimator: strength.NewEstimator(strength.WithGuessRate(guessRate)),
	})
	if err != nil {
		return fmt.Errorf("error auditing %s: %w", inputFile, err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), report.Summary())
	return err
}
