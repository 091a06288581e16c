package prediction

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"traffic-classifier/core/metrics"
	"traffic-classifier/core/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stumpJSON flags short flows (Flow Duration <= 1000) as bots.
const stumpJSON = `{
  "name": "stump",
  "version": "1",
  "features": ["Flow Duration", "Total Fwd Packets"],
  "classes": [0, 1],
  "trees": [{"nodes": [
    {"feature": 0, "threshold": 1000, "left": 1, "right": 2},
    {"left": -1, "right": -1, "value": [1, 9]},
    {"left": -1, "right": -1, "value": [8, 2]}
  ]}]
}`

func newStump(t *testing.T) *model.Forest {
	t.Helper()
	forest, err := model.Decode(strings.NewReader(stumpJSON))
	require.NoError(t, err)
	return forest
}

// recorder captures summaries, or fails when err is set.
type recorder struct {
	summaries []Summary
	err       error
}

func (r *recorder) Record(_ context.Context, s Summary) error {
	if r.err != nil {
		return r.err
	}
	r.summaries = append(r.summaries, s)
	return nil
}

func setupTestApp(t *testing.T, predictor model.Predictor, opts Options) (*fiber.App, *Service, *metrics.Metrics) {
	t.Helper()
	app := fiber.New()
	m := metrics.New()
	feature := NewFeature(predictor, nil, "test-bucket", zap.NewNop(), m, opts)
	require.NoError(t, feature.Load(app))
	return app, feature.Service(), m
}

func newUpload(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/predict", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func readCSV(t *testing.T, r io.Reader) [][]string {
	t.Helper()
	records, err := csv.NewReader(r).ReadAll()
	require.NoError(t, err)
	return records
}
