package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import an already extracted schedule document",
		Long: `Store a saved extraction answer (a JSON document with a "classes" list)
as a parsed upload without calling the vision model. Markdown fences and
surrounding prose are tolerated.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.engine.ImportPayload(cmd.Context(), a.cfg.UserHandle, args[0], data)
	if err != nil {
		return err
	}

	printParseReport(cmd.OutOrStdout(), report)
	return nil
}
