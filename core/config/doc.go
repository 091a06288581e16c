// Package config provides configuration management for the traffic classifier.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv). Defaults come from the
// `default` struct tags of every section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: bind host and port, debug flag, CORS origins, body limit
//   - Model: classifier artifact path, source (file or storage) and object key
//   - Prediction: archiving of classified outputs
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: optional MySQL/SQLite connection for run history
//   - Log: Logging level and format
//
// Environment keys are the upper-cased dotted path with underscores,
// e.g. SERVER_PORT or MODEL_PATH.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Address())
package config
