package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"traffic-classifier/core/config"
	"traffic-classifier/core/database"
	"traffic-classifier/core/loader"
	"traffic-classifier/core/logger"
	"traffic-classifier/core/metrics"
	"traffic-classifier/core/middleware/rayid"
	"traffic-classifier/core/model"
	"traffic-classifier/core/storage"

	"traffic-classifier/feature/history"
	"traffic-classifier/feature/prediction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "traffic-classifier/docs/swagger"
)

// @title Traffic Classifier API
// @version 1.0
// @description Classifies uploaded network flow records as Benign or Bot.
// @host localhost:5000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the classification server",
	Long:  `Loads the model, starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.IsValidPort() {
			logg.Fatal("Invalid server port", zap.String("port", cfg.Server.Port))
		}

		// 3. Initialize Storage (Optional)
		var store storage.Client
		if client, err := connectStorage(ctx, cfg); err != nil {
			logg.Warn("Optional storage connection failed", zap.Error(err))
		} else if client != nil {
			store = client
			logg.Info("Connected to object storage", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 4. Load Model. The server keeps running without one and answers 503.
		m := metrics.New()
		var predictor model.Predictor
		if p, err := loadPredictor(ctx, cfg, store); err != nil {
			logg.Error("Failed to load prediction model",
				zap.String("source", cfg.Model.Source),
				zap.String("location", cfg.Model.Location()),
				zap.Error(err))
		} else {
			predictor = p
			info := p.Info()
			logg.Info("Prediction model loaded",
				zap.String("name", info.Name),
				zap.String("version", info.Version),
				zap.Int("trees", info.Trees),
				zap.Int("features", len(info.Features)),
				zap.String("sha256", info.SHA256))
		}
		m.SetModelLoaded(predictor != nil)

		// 5. Connect to Database (Optional)
		var db *gorm.DB
		if cfg.Database.Enabled {
			if conn, err := database.Connect(cfg.Database); err != nil {
				logg.Warn("Optional database connection failed", zap.Error(err))
			} else {
				db = conn
				logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
			}
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: !cfg.Server.Debug,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// Middleware Registration
		// 1. Recover (turns panics into 500s)
		app.Use(recover.New())

		// 2. RayID (trace every request)
		app.Use(rayid.New())

		// 3. CORS
		app.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.Server.CorsOrigins,
			ExposeHeaders: strings.Join([]string{fiber.HeaderContentDisposition, prediction.RunIDHeader, rayid.HeaderName}, ","),
		}))

		// 4. Logging Middleware (Zap + RayID)
		app.Use(logger.Middleware(logg))

		// 5. Swagger Documentation and Metrics
		app.Get("/swagger/*", swagger.HandlerDefault)
		m.RegisterRoutes(app)

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		hist := history.NewFeature(db, logg)
		opts := prediction.Options{
			Archive:       cfg.Prediction.Archive,
			ArchivePrefix: cfg.Prediction.ArchivePrefix,
		}
		if rec := hist.Recorder(); rec != nil {
			opts.Recorder = rec
		}
		if opts.Archive && store == nil {
			logg.Warn("Archiving requested but object storage is not available")
		}

		// Register Features
		mgr.Register(hist)
		mgr.Register(prediction.NewFeature(predictor, store, cfg.Storage.Bucket, logg, m, opts))

		// 8. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
