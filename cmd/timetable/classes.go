package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/timetable/internal/cli"
)

func classesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List your stored classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			classes, err := a.engine.Classes(cmd.Context(), a.cfg.UserHandle)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(classes) == 0 {
				fmt.Fprintln(out, cli.FormatInfo(`No classes yet. Try "timetable parse <image>".`))
				return nil
			}
			fmt.Fprintln(out, cli.RenderBox(cli.FormatTitle(fmt.Sprintf("%d classes", len(classes))), cli.ClassTable(classes)))
			return nil
		},
	}
}
