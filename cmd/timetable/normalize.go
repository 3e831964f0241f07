package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/timetable/internal/cli"
	"github.com/Veraticus/timetable/internal/common"
	"github.com/Veraticus/timetable/internal/llm"
	"github.com/Veraticus/timetable/internal/model"
	"github.com/Veraticus/timetable/internal/schedule"
)

func normalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <file.json|->",
		Short: "Normalize an extraction document offline",
		Long: `Read an extraction document and print the canonical, merged class slots
it describes, sorted by key. Nothing is stored and no model is called.
Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: runNormalize,
	}

	cmd.Flags().Bool("json", false, "Print slots as a JSON document instead of a table")

	return cmd
}

func runNormalize(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	data, err := readInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	payload, err := llm.ParseExtraction(string(data))
	if err != nil {
		return common.NewUserError(fmt.Sprintf("%s does not contain a schedule document", args[0]), err)
	}

	slots := schedule.SortByKey(schedule.NormalizeItems(payload.Items()))
	return writeSlots(cmd.OutOrStdout(), slots, asJSON)
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func writeSlots(out io.Writer, slots []model.Slot, asJSON bool) error {
	if asJSON {
		doc := model.ExtractionPayload{Classes: make([]model.RawSlotItem, 0, len(slots))}
		for _, s := range slots {
			doc.Classes = append(doc.Classes, s.Row())
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode slots: %w", err)
		}
		return nil
	}

	if len(slots) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No complete class slots found"))
		return nil
	}
	fmt.Fprintln(out, cli.SlotTable(slots))
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d slots", len(slots))))
	return nil
}
