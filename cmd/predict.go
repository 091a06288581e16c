package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"traffic-classifier/core/config"
	"traffic-classifier/feature/prediction"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var outputFlag string

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict <input.csv>",
	Short: "Classify a local CSV file",
	Long: `Runs the same cleaning and classification as POST /api/predict on a local file
and writes the labelled rows to the output path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := cliLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		store, err := connectStorage(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}

		predictor, err := loadPredictor(ctx, cfg, store)
		if err != nil {
			return fmt.Errorf("failed to load model: %w", err)
		}

		input := args[0]
		file, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()

		svc := prediction.NewService(predictor, store, cfg.Storage.Bucket, logg, nil, prediction.Options{
			Archive:       cfg.Prediction.Archive && store != nil,
			ArchivePrefix: cfg.Prediction.ArchivePrefix,
		})

		start := time.Now()
		res, err := svc.Classify(ctx, filepath.Base(input), file)
		if err != nil {
			return err
		}

		output := outputFlag
		if output == "" {
			output = prediction.OutputFilename
		}
		if err := os.WriteFile(output, res.CSV, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		logg.Info("Classification finished",
			zap.String("output", output),
			zap.Int("received", res.RowsReceived),
			zap.Int("classified", res.RowsClassified),
			zap.Int("dropped", res.RowsDropped),
			zap.Any("labels", res.LabelCounts),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	},
}

func init() {
	predictCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output CSV path (default classified_packets.csv)")
	RootCmd.AddCommand(predictCmd)
}
