package cli

import (
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"io"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/generator"
	"pwd-strength/pkg/strength"
)

var (
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords with at least one character of every selected class",
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCommand(cmd.OutOrStdout())
		},
	}
)

func addClassFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&length, "length", "l", 16, "Password length. Never shorter than the number of selected classes.")
	cmd.Flags().BoolVar(&useUpper, "upper", true, "Include uppercase letters")
	cmd.Flags().BoolVar(&useLower, "lower", true, "Include lowercase letters")
	cmd.Flags().BoolVar(&useDigit, "digit", true, "Include digits")
	cmd.Flags().BoolVar(&useSymbol, "symbol", true, "Include symbols")
}

func selectedClasses() generator.Classes {
	return generator.Classes{Upper: useUpper, Lower: useLower, Digit: useDigit, Symbol: useSymbol}
}

func init() {
	addClassFlags(generateCmd)
	generateCmd.Flags().IntVarP(&count, "count", "c", 1, "How many passwords to generate")

	rootCmd.AddCommand(generateCmd)
}

func generateCommand(out io.Writer) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	for i := 0; i < count; i++ {
		pwd, err := generator.Generate(length, selectedClasses())
		if errors.Is(err, generator.ErrNoClassSelected) {
			return fmt.Errorf("%w: enable at least one of --upper, --lower, --digit or --symbol", err)
		}
		if err != nil {
			return err
		}

		res := strength.Evaluate(pwd)
		log.Debug().Msgf("generated password scores %d/100 (%s)", res.Score, res.Label)
		if _, err = fmt.Fprintln(out, pwd); err != nil {
			return err
		}
	}

	return nil
}
