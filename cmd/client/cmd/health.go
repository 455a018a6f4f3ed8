package cmd

import (
	"encoding/json"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"employees/cmd/client/cmd/types"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Проверить доступность сервера",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd.Context())
		if err != nil {
			return err
		}

		h, err := app.CheckConnection(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return json.NewEncoder(out).Encode(h)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ %s: %s (%s)\n",
			app.Config().BaseURL(), h.Status, h.Timestamp.Local().Format(time.RFC3339))
		return nil
	},
}
