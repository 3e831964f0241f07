package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/timetable/internal/cli"
	"github.com/Veraticus/timetable/internal/common"
)

const dateLayout = "2006-01-02"

func todayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the classes meeting today",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}

	cmd.Flags().String("date", "", "Show another day instead (YYYY-MM-DD)")

	return cmd
}

func runToday(cmd *cobra.Command, _ []string) error {
	dateFlag, _ := cmd.Flags().GetString("date")
	date, err := parseDate(dateFlag, time.Now())
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	sessions, err := a.engine.SessionsOn(cmd.Context(), a.cfg.UserHandle, date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := cli.FormatTitle(date.Format("Monday, 2 January"))
	if len(sessions) == 0 {
		fmt.Fprintln(out, cli.RenderBox(title, cli.SubtleStyle.Render("No classes")))
		return nil
	}
	fmt.Fprintln(out, cli.RenderBox(title, cli.SessionList(sessions)))
	return nil
}

// parseDate reads a YYYY-MM-DD date in now's location. An empty value means
// the day of now.
func parseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}
	date, err := time.ParseInLocation(dateLayout, value, now.Location())
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("Invalid date %q, expected YYYY-MM-DD", value), err)
	}
	return date, nil
}
