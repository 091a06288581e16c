// Package database handles the optional relational database connection.
//
// It wraps GORM and configures either MySQL (production) or SQLite (local
// runs and tests) from the application's configuration. The database backs
// the prediction run history; the service classifies uploads without it.
//
// # Connect
//
// Connect opens the connection, tunes the pool for the driver and pings the
// server with the configured timeout. It never exits the process: callers log
// the error and carry on without history.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
