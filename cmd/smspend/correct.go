package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akashdeo/smspend/internal/model"
)

func correctCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct <message-id> <category>",
		Short: "Record a category correction for a message",
		Long: fmt.Sprintf(`Override the stored category for a classified message.

The correction becomes ground truth for the next retrain. Valid categories:
  %s`, categoryList()),
		Args: cobra.ExactArgs(2),
		RunE: runCorrect,
	}
	return cmd
}

func runCorrect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	messageID := args[0]
	category := model.Category(args[1])

	eng, cleanup, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := eng.RecordCorrection(ctx, messageID, category); err != nil {
		return err
	}

	needed, err := eng.ShouldRetrain(ctx)
	if err != nil {
		return err
	}
	if needed {
		slog.Info("Correction threshold reached, consider running: smspend retrain")
	}

	fmt.Printf("Corrected %s -> %s\n", messageID, category)
	return nil
}

func categoryList() string {
	names := make([]string, 0, len(model.KnownCategories()))
	for _, c := range model.KnownCategories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
