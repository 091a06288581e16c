package prediction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"traffic-classifier/core/dataset"
	"traffic-classifier/core/metrics"
	"traffic-classifier/core/model"
	"traffic-classifier/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// LabelColumn is the column appended to every classified row.
	LabelColumn = "Predicted_Label"
	// OutputFilename is the name of the returned attachment and the archived object.
	OutputFilename = "classified_packets.csv"
)

// Summary describes one classification run.
type Summary struct {
	RunID          string
	Filename       string
	RowsReceived   int
	RowsClassified int
	RowsDropped    int
	DroppedColumns []string
	LabelCounts    map[string]int
	ModelVersion   string
	Duration       time.Duration
	CreatedAt      time.Time
}

// Result is a classified upload.
type Result struct {
	Summary
	// CSV holds the original columns of the surviving rows plus LabelColumn.
	CSV []byte
}

// Recorder persists run summaries.
type Recorder interface {
	Record(ctx context.Context, summary Summary) error
}

// Options holds the optional collaborators of a Service.
type Options struct {
	// Archive uploads every output CSV to the storage bucket.
	Archive bool
	// ArchivePrefix is the key prefix of archived outputs.
	ArchivePrefix string
	// Recorder stores run summaries when set.
	Recorder Recorder
}

// Service classifies uploaded traffic records.
type Service struct {
	predictor model.Predictor
	client    storage.Client
	bucket    string
	logger    *zap.Logger
	metrics   *metrics.Metrics
	opts      Options
}

// NewService creates a new prediction service.
// predictor may be nil when the model failed to load; every run then fails
// with ErrModelUnavailable.
func NewService(predictor model.Predictor, client storage.Client, bucket string, logger *zap.Logger, m *metrics.Metrics, opts Options) *Service {
	if opts.ArchivePrefix == "" {
		opts.ArchivePrefix = "classified"
	}
	return &Service{
		predictor: predictor,
		client:    client,
		bucket:    bucket,
		logger:    logger,
		metrics:   m,
		opts:      opts,
	}
}

// Available reports whether a model is loaded.
func (s *Service) Available() bool {
	return s.predictor != nil
}

// Info describes the loaded model.
func (s *Service) Info() (model.Info, error) {
	if s.predictor == nil {
		return model.Info{}, ErrModelUnavailable
	}
	return s.predictor.Info(), nil
}

// Classify cleans the CSV read from r, predicts a label for every surviving
// row and returns those rows, as uploaded, with the label appended.
func (s *Service) Classify(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	if s.predictor == nil {
		return nil, ErrModelUnavailable
	}
	start := time.Now()

	table, err := dataset.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	cleaned, err := dataset.Clean(table)
	if err != nil {
		return nil, err
	}

	features := s.predictor.Features()
	if err := cleaned.Require(features); err != nil {
		return nil, err
	}

	codes, err := s.predict(ctx, cleaned, features)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(codes))
	counts := make(map[string]int)
	for i, code := range codes {
		labels[i] = model.Label(code)
		counts[labels[i]]++
	}

	base, err := table.Subset(cleaned.Index)
	if err != nil {
		return nil, fmt.Errorf("failed to select original rows: %w", err)
	}
	out, err := base.WithColumn(LabelColumn, labels)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := out.WriteCSV(&buf); err != nil {
		return nil, err
	}

	summary := Summary{
		RunID:          uuid.NewString(),
		Filename:       filename,
		RowsReceived:   table.Len(),
		RowsClassified: len(codes),
		RowsDropped:    cleaned.DroppedRows,
		DroppedColumns: cleaned.DroppedColumns,
		LabelCounts:    counts,
		ModelVersion:   s.predictor.Info().Version,
		Duration:       time.Since(start),
		CreatedAt:      start.UTC(),
	}

	if s.metrics != nil {
		s.metrics.ObserveRows(metrics.StageReceived, summary.RowsReceived)
		s.metrics.ObserveRows(metrics.StageClassified, summary.RowsClassified)
		s.metrics.ObserveRows(metrics.StageDropped, summary.RowsDropped)
		s.metrics.ObserveLabels(counts)
	}

	s.logger.Info("Classified upload",
		zap.String("run_id", summary.RunID),
		zap.String("filename", filename),
		zap.Int("received", summary.RowsReceived),
		zap.Int("classified", summary.RowsClassified),
		zap.Strings("dropped_columns", summary.DroppedColumns),
	)

	s.archive(ctx, summary.RunID, buf.Bytes())
	s.record(ctx, summary)

	return &Result{Summary: summary, CSV: buf.Bytes()}, nil
}

// predict runs the model over the cleaned rows. No surviving rows means no labels.
func (s *Service) predict(ctx context.Context, cleaned *dataset.Cleaned, features []string) ([]int, error) {
	if len(cleaned.Index) == 0 {
		return []int{}, nil
	}

	X, err := cleaned.Matrix(features)
	if err != nil {
		return nil, err
	}

	codes, err := s.predictor.Predict(ctx, X)
	if err != nil {
		return nil, err
	}
	if len(codes) != len(cleaned.Index) {
		return nil, fmt.Errorf("model returned %d labels for %d rows", len(codes), len(cleaned.Index))
	}
	return codes, nil
}

// ArchiveKey returns the object key of an archived run output.
func (s *Service) ArchiveKey(runID string) string {
	return path.Join(s.opts.ArchivePrefix, runID, OutputFilename)
}

func (s *Service) archive(ctx context.Context, runID string, data []byte) {
	if !s.opts.Archive || s.client == nil {
		return
	}
	key := s.ArchiveKey(runID)
	if err := storage.PutBytes(ctx, s.client, s.bucket, key, data, "text/csv"); err != nil {
		s.logger.Warn("Failed to archive classified output", zap.String("run_id", runID), zap.Error(err))
		return
	}
	s.logger.Debug("Archived classified output", zap.String("key", key))
}

func (s *Service) record(ctx context.Context, summary Summary) {
	if s.opts.Recorder == nil {
		return
	}
	if err := s.opts.Recorder.Record(ctx, summary); err != nil {
		s.logger.Warn("Failed to record prediction run", zap.String("run_id", summary.RunID), zap.Error(err))
	}
}
