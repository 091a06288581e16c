package history

import (
	"context"
	"fmt"

	"traffic-classifier/feature/prediction"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is the number of runs listed when no limit is given.
	DefaultLimit = 50
	// MaxLimit caps the number of runs listed at once.
	MaxLimit = 500
)

// Repository stores prediction runs. It implements prediction.Recorder.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new run repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the runs table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("failed to migrate prediction runs: %w", err)
	}
	return nil
}

// Record stores the summary of one run.
func (r *Repository) Record(ctx context.Context, summary prediction.Summary) error {
	run := FromSummary(summary)
	if err := r.db.WithContext(ctx).Create(&run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", summary.RunID, err)
	}
	return nil
}

// List returns the most recent runs first.
// limit is clamped to [1, MaxLimit]; zero or less means DefaultLimit.
func (r *Repository) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	runs := make([]Run, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
