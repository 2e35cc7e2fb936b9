package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show model status and pending corrections",
		RunE:  runStatus,
	}
	return cmd
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	eng, cleanup, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := eng.ModelStatus(ctx)
	if err != nil {
		return err
	}

	if !st.Loaded {
		fmt.Println("Model: not loaded (rule-engine-only classification)")
	} else {
		fmt.Printf("Model: %s\n", st.Version)
		fmt.Printf("Trained: %s on %d examples\n", st.TrainedAt.Format("2006-01-02 15:04:05 MST"), st.TrainedOn)
	}
	fmt.Printf("Corrections pending retrain: %d\n", st.CorrectedPending)
	return nil
}
