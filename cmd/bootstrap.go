package cmd

import (
	"context"
	"fmt"

	"traffic-classifier/core/config"
	"traffic-classifier/core/logger"
	"traffic-classifier/core/model"
	"traffic-classifier/core/storage"

	"go.uber.org/zap"
)

// connectStorage returns the object storage client, or nil when storage is disabled.
func connectStorage(ctx context.Context, cfg *config.Config) (storage.Client, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		return nil, err
	}
	return client, nil
}

// loadPredictor loads the configured model.
// On failure the returned Predictor is a nil interface, never a typed nil.
func loadPredictor(ctx context.Context, cfg *config.Config, client storage.Client) (model.Predictor, error) {
	if !cfg.Model.IsValidSource() {
		return nil, fmt.Errorf("invalid model source %q", cfg.Model.Source)
	}

	forest, err := model.Load(ctx, cfg.Model, client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}
	return forest, nil
}

// cliLogger builds the console logger used by the one-shot commands.
func cliLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(&logger.Config{Level: cfg.Log.Level, Format: "console"})
}
