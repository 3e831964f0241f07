package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Veraticus/timetable/internal/cli"
	"github.com/Veraticus/timetable/internal/common"
	"github.com/Veraticus/timetable/internal/engine"
)

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Add the latest parsed schedule to your classes",
		Long: `Normalize and merge the newest parsed upload and insert every class
slot that is not already in your schedule. Slots already present are
skipped, so applying twice never duplicates a class.`,
		Args: cobra.NoArgs,
		RunE: runApply,
	}

	cmd.Flags().Bool("dry-run", false, "Show what would be inserted without writing")

	return cmd
}

func runApply(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	report, err := a.engine.ApplyLatest(cmd.Context(), a.cfg.UserHandle, dryRun)
	if errors.Is(err, common.ErrNothingToApply) {
		fmt.Fprintln(out, cli.FormatWarning(`Nothing to apply. Parse a timetable first with "timetable parse".`))
		return nil
	}
	if err != nil {
		return err
	}

	printApplyReport(out, report)
	return nil
}

func printApplyReport(out io.Writer, report *engine.ApplyReport) {
	result := report.Result
	if len(result.ToInsert) > 0 {
		title := "New classes"
		if report.DryRun {
			title = "Would add"
		}
		fmt.Fprintln(out, cli.RenderBox(title, cli.SlotTable(result.ToInsert)))
	}

	summary := fmt.Sprintf("Inserted %d, skipped %d", result.Inserted, result.Skipped)
	if report.DryRun {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: would insert %d, skip %d", result.Inserted, result.Skipped)))
		return
	}
	fmt.Fprintln(out, cli.FormatSuccess(summary))
}
