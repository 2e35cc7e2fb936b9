package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/akashdeo/smspend/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <corpus.csv>",
		Short: "Import a labeled SMS corpus",
		Long: `Import a CSV of pre-labeled messages to seed the training corpus.

The file must have a header row and columns "text" and "category". Imported
labels are treated as ground truth for future retrains.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	examples, err := readCorpusCSV(args[0])
	if err != nil {
		return err
	}
	if len(examples) == 0 {
		return fmt.Errorf("no labeled rows found in %s", args[0])
	}

	eng, cleanup, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	bar := progressbar.NewOptions(len(examples),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing labeled messages..."),
	)

	imported := 0
	for _, ex := range examples {
		n, err := eng.ImportLabeled(ctx, []model.TrainingExample{ex})
		imported += n
		if err != nil {
			return fmt.Errorf("import stopped after %d rows: %w", imported, err)
		}
		_ = bar.Add(1)
	}

	slog.Info("Corpus imported", "rows", imported, "file", args[0])
	return nil
}

// readCorpusCSV reads (text, category) rows. Column order is taken from the
// header, so exports with extra columns still import.
func readCorpusCSV(path string) ([]model.TrainingExample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	textIdx, labelIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "text", "source_text":
			textIdx = i
		case "category", "label":
			labelIdx = i
		}
	}
	if textIdx < 0 || labelIdx < 0 {
		return nil, fmt.Errorf("corpus CSV must have \"text\" and \"category\" columns")
	}

	var examples []model.TrainingExample
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if textIdx >= len(record) || labelIdx >= len(record) {
			continue
		}

		text := strings.TrimSpace(record[textIdx])
		label := strings.TrimSpace(record[labelIdx])
		if text == "" || label == "" {
			continue
		}
		examples = append(examples, model.TrainingExample{
			Text:  text,
			Label: model.Category(label),
		})
	}
	return examples, nil
}
