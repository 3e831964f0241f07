package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/timetable/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent parse and apply runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			a, err := openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			events, err := a.engine.History(cmd.Context(), a.cfg.UserHandle, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No activity yet."))
				return nil
			}
			fmt.Fprintln(out, cli.RenderBox(cli.FormatTitle("Recent activity"), cli.EventTable(events)))
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Number of entries to show")

	return cmd
}
