package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/timetable/internal/cli"
	"github.com/Veraticus/timetable/internal/engine"
	"github.com/Veraticus/timetable/internal/model"
)

func parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [image...]",
		Short: "Extract classes from timetable images",
		Long: `Send timetable images to the configured vision model and store what it
finds as parsed uploads, ready for "timetable apply".

Without arguments the newest registered upload that was never parsed is
retried.`,
		RunE: runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	if len(args) == 0 {
		report, err := a.engine.ParseLatest(cmd.Context(), a.cfg.UserHandle)
		if err != nil {
			return err
		}
		printParseReport(out, report)
		return nil
	}

	handler := cli.NewInterruptHandler(out, `Run "timetable parse" to retry the next unparsed image.`)
	ctx := handler.HandleInterrupts(cmd.Context())
	defer handler.Stop()

	return parseImages(ctx, out, a.engine, a.cfg.UserHandle, args)
}

// parseImages registers and extracts each image in turn. Failures on one
// image are reported and do not stop the batch.
func parseImages(ctx context.Context, out io.Writer, eng *engine.Engine, userHandle string, paths []string) error {
	var bar interface{ Add(int) error }
	if len(paths) > 1 {
		bar = cli.NewProgressBar(out, len(paths), "Parsing timetables")
	}

	var reports []*engine.ParseReport
	var failed int
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		report, err := parseImage(ctx, eng, userHandle, path)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			failed++
			slog.Error("Failed to parse image", "path", path, "error", err)
		} else {
			reports = append(reports, report)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	for _, report := range reports {
		printParseReport(out, report)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d images could not be parsed", failed, len(paths))
	}
	return nil
}

func parseImage(ctx context.Context, eng *engine.Engine, userHandle, path string) (*engine.ParseReport, error) {
	upload, err := eng.RegisterUpload(ctx, userHandle, path)
	if err != nil {
		return nil, err
	}
	return eng.ParseUpload(ctx, upload)
}

func printParseReport(out io.Writer, report *engine.ParseReport) {
	upload := report.Upload
	if upload.Status == model.UploadError {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("No schedule data found in %s", upload.FilePath)))
		return
	}

	title := fmt.Sprintf("%s %d classes in %s", cli.RobotIcon, report.Classes, upload.FilePath)
	body := cli.PreviewLines(report.Preview)
	if more := report.Classes - len(report.Preview); more > 0 {
		body += "\n" + cli.SubtleStyle.Render(fmt.Sprintf("... and %d more", more))
	}
	if body == "" {
		body = cli.SubtleStyle.Render("(no classes)")
	}
	fmt.Fprintln(out, cli.RenderBox(title, body))
	fmt.Fprintln(out, cli.FormatInfo(`Run "timetable apply" to add them to your schedule.`))
}
