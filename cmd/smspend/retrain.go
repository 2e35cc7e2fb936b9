package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func retrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrain",
		Short: "Rebuild the classifier from the corrected corpus",
		Long: `Rebuild the statistical classifier from all labeled messages with user
corrections applied, then activate the new model.

By default retraining runs unconditionally. With --auto it only runs once
enough corrections have accumulated since the last retrain.`,
		RunE: runRetrain,
	}

	cmd.Flags().Bool("auto", false, "retrain only if the correction threshold was reached")
	cmd.Flags().Duration("timeout", 0, "abort retraining after this duration (0 = no timeout)")

	_ = viper.BindPFlag("retrain.auto", cmd.Flags().Lookup("auto"))
	_ = viper.BindPFlag("retrain.timeout", cmd.Flags().Lookup("timeout"))

	return cmd
}

func runRetrain(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	auto := viper.GetBool("retrain.auto")
	timeout := viper.GetDuration("retrain.timeout")

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	eng, cleanup, err := openEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	if auto {
		result, ran, err := eng.RetrainIfNeeded(ctx)
		if err != nil {
			return err
		}
		if !ran {
			fmt.Println("Correction threshold not reached, nothing to do")
			return nil
		}
		fmt.Printf("Retrained model %s on %d examples in %s\n",
			result.Version, result.TrainedOn, time.Since(start).Round(time.Millisecond))
		return nil
	}

	result, err := eng.Retrain(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Retrained model %s on %d examples in %s\n",
		result.Version, result.TrainedOn, time.Since(start).Round(time.Millisecond))
	return nil
}
