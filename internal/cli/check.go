// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/manifoldco/promptui"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"pwd-strength/internal/util"
	"pwd-strength/pkg/hibp"
	"pwd-strength/pkg/strength"
	"strings"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check [PASSWORD]",
		Short: "Score a password and show how to make it stronger",
		Args: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				if err := cobra.ExactArgs(1)(cmd, args); err != nil {
					return err
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return checkCommand(cmd.Context(), "")
			} else {
				return checkCommand(cmd.Context(), args[0])
			}
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	checkCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode. Passwords are typed masked, one per prompt.")
	checkCmd.Flags().Float64Var(&guessRate, "guess-rate", strength.DefaultGuessRate, "Assumed attacker guesses per second for the crack time estimate")
	checkCmd.Flags().BoolVar(&pwned, "pwned", false, "Also look the password up in the Pwned Passwords range API")
	checkCmd.Flags().StringVar(&hibpURL, "hibp-url", hibp.DefaultBaseURL, "Base URL of the Pwned Passwords range API")

	rootCmd.AddCommand(checkCmd)
}

type checker struct {
	estimator *strength.Estimator
	breach    *hibp.Client
}

func checkCommand(ctx context.Context, password string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)
	if ctx == nil {
		ctx = context.Background()
	}

	c := &checker{estimator: strength.NewEstimator(strength.WithGuessRate(guessRate))}
	if pwned {
		client, err := hibp.NewClient(hibp.Options{BaseURL: hibpURL, RetryMax: 3})
		if err != nil {
			return err
		}
		c.breach = client
	}

	if !interactive {
		return c.check(ctx, password)
	}

	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a password")
			}
			return nil
		},
	}

	log.Info().Msgf("Running interactive session. ^C to exit")
	if err := runInteractiveSession(ctx, prompt, c); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			log.Info().Msgf("Goodbye")
		} else {
			log.Error().Err(err).Msgf("Error during interactive session")
		}
		// No return to avoid the default cobra error message
		return nil
	}

	return nil
}

func runInteractiveSession(ctx context.Context, prompt promptui.Prompt, c *checker) error {
	for {
		result, err := prompt.Run()
		if err != nil {
			return err
		}

		if err = c.check(ctx, result); err != nil {
			log.Error().Err(err).Msg("Error during check")
		}
	}
}

func (c *checker) check(ctx context.Context, password string) error {
	res := c.estimator.Evaluate(password)
	for _, line := range describe(res) {
		log.Info().Msg(line)
	}

	if password != "" {
		entropy := zxcvbn.PasswordStrength(password, nil)
		log.Debug().Msgf("zxcvbn: score %d/4, crack time %s", entropy.Score, entropy.CrackTimeDisplay)
	}

	if c.breach != nil {
		n, err := c.breach.Count(ctx, password)
		if err != nil {
			return fmt.Errorf("error checking Pwned Passwords: %w", err)
		}
		if n > 0 {
			log.Warn().Msgf("Password is present in breach data %d times", n)
		} else {
			log.Info().Msgf("Password is not present in breach data")
		}
	}

	return nil
}

// describe renders a result as log lines. The candidate itself is never part
// of the output.
func describe(res strength.Result) []string {
	marks := func(ok bool) string {
		if ok {
			return "x"
		}
		return " "
	}
	c := res.Criteria

	lines := []string{
		fmt.Sprintf("Score %d/100, %s. Crack time: %s", res.Score, res.Label, res.CrackTimeDisplay()),
		fmt.Sprintf("[%s] length  [%s] upper  [%s] lower  [%s] digit  [%s] symbol  [%s] uncommon",
			marks(c.Length), marks(c.Upper), marks(c.Lower), marks(c.Digit), marks(c.Symbol), marks(c.Uncommon)),
	}
	for _, tip := range res.Tips {
		lines = append(lines, "Tip: "+strings.TrimSpace(tip))
	}
	return lines
}
