package prediction

import (
	"errors"
	"fmt"
	"time"

	"traffic-classifier/core/dataset"
	"traffic-classifier/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Response messages returned in the "error" field.
const (
	MsgModelUnavailable = "Prediction model is not loaded."
	MsgNoFile           = "No file part or selected file in the request."
	msgMissingColumn    = "Missing expected column in CSV: '%s'. Check your input data format."
	msgPredictionFailed = "An error occurred during prediction: %s"
)

// RunIDHeader carries the run ID of a classified upload.
const RunIDHeader = "X-Run-ID"

// Handler handles HTTP requests for predictions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the prediction routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleHome)

	api := app.Group("/api")
	api.Post("/predict", h.HandlePredict)
	api.Get("/model", h.HandleModel)
}

// HandleHome reports that the service is up.
// @Summary Liveness
// @Description Plain-text liveness message.
// @Tags prediction
// @Produce plain
// @Success 200 {string} string "Cyber Threat Prediction Backend is Running!"
// @Router / [get]
func (h *Handler) HandleHome(c *fiber.Ctx) error {
	return c.SendString("Cyber Threat Prediction Backend is Running!")
}

// HandlePredict classifies an uploaded CSV.
// @Summary Classify Traffic
// @Description Cleans the uploaded CSV, classifies every complete row as Benign or Bot and returns those rows with a Predicted_Label column.
// @Tags prediction
// @Accept multipart/form-data
// @Produce text/csv
// @Param file formData file true "CSV of network flow records"
// @Success 200 {file} file "classified_packets.csv"
// @Header 200 {string} X-Run-ID "Run ID"
// @Failure 400 {object} map[string]string "Missing file or column"
// @Failure 500 {object} map[string]string "Prediction failed"
// @Failure 503 {object} map[string]string "Model not loaded"
// @Router /api/predict [post]
func (h *Handler) HandlePredict(c *fiber.Ctx) error {
	start := time.Now()
	defer func() {
		if h.service.metrics != nil {
			h.service.metrics.ObserveRequest(c.Response().StatusCode())
			h.service.metrics.ObserveDuration(time.Since(start))
		}
	}()

	l := logger.WithRayID(h.service.logger, c)

	if !h.service.Available() {
		return h.fail(c, l, ErrModelUnavailable)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh.Filename == "" {
		return h.fail(c, l, ErrNoFile)
	}

	file, err := fh.Open()
	if err != nil {
		return h.fail(c, l, fmt.Errorf("failed to open upload: %w", err))
	}
	defer file.Close()

	l.Info("Received file for prediction", zap.String("filename", fh.Filename), zap.Int64("size", fh.Size))

	res, err := h.service.Classify(c.Context(), fh.Filename, file)
	if err != nil {
		return h.fail(c, l, err)
	}

	c.Set(RunIDHeader, res.RunID)
	c.Attachment(OutputFilename)
	c.Set(fiber.HeaderContentType, "text/csv")
	return c.Status(fiber.StatusOK).Send(res.CSV)
}

// HandleModel describes the loaded model.
// @Summary Model Info
// @Description Returns the metadata of the loaded classifier.
// @Tags prediction
// @Produce json
// @Success 200 {object} map[string]interface{} "Model info"
// @Failure 503 {object} map[string]interface{} "Model not loaded"
// @Router /api/model [get]
func (h *Handler) HandleModel(c *fiber.Ctx) error {
	info, err := h.service.Info()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"available": false,
			"error":     MsgModelUnavailable,
		})
	}
	return c.JSON(fiber.Map{
		"available": true,
		"model":     info,
	})
}

// fail maps err to its status and message and writes the JSON error body.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var missing *dataset.MissingColumnError

	switch {
	case errors.Is(err, ErrModelUnavailable):
		l.Warn("Prediction requested without a model")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": MsgModelUnavailable})
	case errors.Is(err, ErrNoFile):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": MsgNoFile})
	case errors.As(err, &missing):
		l.Warn("Upload is missing a model feature", zap.String("column", missing.Column))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf(msgMissingColumn, missing.Column),
		})
	default:
		l.Error("Prediction failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf(msgPredictionFailed, err.Error()),
		})
	}
}
