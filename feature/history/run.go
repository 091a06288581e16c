package history

import (
	"time"

	"traffic-classifier/feature/prediction"
)

// Run is one recorded classification run.
type Run struct {
	ID             string         `gorm:"column:id;primaryKey;size:36" json:"id"`
	Filename       string         `gorm:"column:filename;size:255" json:"filename"`
	RowsReceived   int            `gorm:"column:rows_received" json:"rows_received"`
	RowsClassified int            `gorm:"column:rows_classified" json:"rows_classified"`
	RowsDropped    int            `gorm:"column:rows_dropped" json:"rows_dropped"`
	DroppedColumns []string       `gorm:"column:dropped_columns;type:text;serializer:json" json:"dropped_columns"`
	LabelCounts    map[string]int `gorm:"column:label_counts;type:text;serializer:json" json:"label_counts"`
	ModelVersion   string         `gorm:"column:model_version;size:64" json:"model_version"`
	DurationMS     int64          `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt      time.Time      `gorm:"column:created_at;index" json:"created_at"`
}

// TableName overrides the table name used by Run to `prediction_runs`.
func (Run) TableName() string {
	return "prediction_runs"
}

// FromSummary converts a prediction summary into a Run.
func FromSummary(s prediction.Summary) Run {
	return Run{
		ID:             s.RunID,
		Filename:       s.Filename,
		RowsReceived:   s.RowsReceived,
		RowsClassified: s.RowsClassified,
		RowsDropped:    s.RowsDropped,
		DroppedColumns: s.DroppedColumns,
		LabelCounts:    s.LabelCounts,
		ModelVersion:   s.ModelVersion,
		DurationMS:     s.Duration.Milliseconds(),
		CreatedAt:      s.CreatedAt,
	}
}
