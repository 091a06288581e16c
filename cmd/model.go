package cmd

import (
	"encoding/json"
	"fmt"

	"traffic-classifier/core/config"

	"github.com/spf13/cobra"
)

// modelCmd represents the model command
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect the configured model artifact",
	Long:  `Loads and validates the configured model, then prints its metadata as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err := connectStorage(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}

		predictor, err := loadPredictor(ctx, cfg, store)
		if err != nil {
			return fmt.Errorf("failed to load model: %w", err)
		}

		out, err := json.MarshalIndent(predictor.Info(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(modelCmd)
}
