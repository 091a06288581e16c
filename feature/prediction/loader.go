package prediction

import (
	"traffic-classifier/core/metrics"
	"traffic-classifier/core/model"
	"traffic-classifier/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Prediction feature.
func NewFeature(predictor model.Predictor, client storage.Client, bucket string, logger *zap.Logger, m *metrics.Metrics, opts Options) *Feature {
	svc := NewService(predictor, client, bucket, logger, m, opts)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "prediction"
}

// IsEnabled checks if the feature is enabled.
// The routes stay up without a model so clients get a 503 instead of a 404.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
