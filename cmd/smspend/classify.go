package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akashdeo/smspend/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify SMS messages",
		Long: `Classify one or more SMS messages into spending categories.

A single message can be passed as an argument; --file reads one message per
line ("-" for stdin). Results are stored unless --dry-run is given.

Examples:
  smspend classify "Rs.176 credited to your Meesho Balance."
  smspend classify --file inbox.txt
  cat inbox.txt | smspend classify --file -`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("file", "f", "", "read messages from file, one per line (\"-\" for stdin)")
	cmd.Flags().String("owner", "", "owner identifier stored with the messages")
	cmd.Flags().Bool("dry-run", false, "classify without storing anything")

	_ = viper.BindPFlag("classify.file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("classify.owner", cmd.Flags().Lookup("owner"))
	_ = viper.BindPFlag("classify.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	file := viper.GetString("classify.file")
	owner := viper.GetString("classify.owner")
	dryRun := viper.GetBool("classify.dry_run")

	texts, err := collectTexts(args, file)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("nothing to classify: pass a message or --file")
	}

	eng, cleanup, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	for _, text := range texts {
		var c model.Classification
		if dryRun {
			c = eng.Classify(text)
		} else {
			c, err = eng.ClassifyAndStore(ctx, text, owner, time.Now())
			if err != nil {
				return err
			}
		}
		printClassification(text, c)
	}
	return nil
}

func collectTexts(args []string, file string) ([]string, error) {
	var texts []string
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		texts = append(texts, args[0])
	}
	if file == "" {
		return texts, nil
	}

	in := os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return texts, nil
}

func printClassification(text string, c model.Classification) {
	amount := "-"
	if c.Amount != nil {
		amount = fmt.Sprintf("%.2f", *c.Amount)
	}
	review := ""
	if c.NeedsReview {
		review = "  [needs review]"
	}
	id := ""
	if c.MessageID != "" {
		id = fmt.Sprintf("  id=%s", c.MessageID)
	}
	fmt.Printf("%-16s  amount=%-10s  confidence=%.2f  via=%s%s%s\n    %s\n",
		c.Category, amount, c.Confidence, c.Provenance, review, id, text)
}
