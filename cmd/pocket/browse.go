package main

import (
	"github.com/Veraticus/pocket/internal/tui"
	"github.com/Veraticus/pocket/internal/tui/themes"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse expenses interactively",
		Long: `Open a full-screen browser with live search, sorting, deletion and a
dashboard of totals, budget status and the last seven days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			return tui.Run(cmd.Context(), ctrl, tui.WithTheme(themes.GetTheme(theme)))
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin-mocha)")

	return cmd
}
