package cli

import (
	"fmt"
	"github.com/spf13/cobra"
	"pwd-strength/internal/prefs"
)

var (
	prefsCmd = &cobra.Command{
		Use:   "prefs",
		Short: "Show or change the stored preferences",
	}

	themeCmd = &cobra.Command{
		Use:       "theme [toggle]",
		Short:     "Print the theme used by the live meter, or toggle it between dark and light",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs()
			if err != nil {
				return err
			}

			var theme string
			if len(args) == 1 {
				theme, err = prefs.ToggleTheme(cmd.Context(), store)
			} else {
				theme, err = prefs.Theme(cmd.Context(), store)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), theme)
			return err
		},
	}

	visitsCmd = &cobra.Command{
		Use:   "visits",
		Short: "Print how many live sessions were started",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPrefs()
			if err != nil {
				return err
			}

			n, err := prefs.Visits(cmd.Context(), store)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
)

func init() {
	prefsCmd.AddCommand(themeCmd, visitsCmd)
	rootCmd.AddCommand(prefsCmd)
}
