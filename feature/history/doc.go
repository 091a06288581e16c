// Package history records classification runs in the optional database.
//
// Every successful upload produces a prediction.Summary; the Repository
// stores it as a Run in the prediction_runs table. GET /api/runs lists the
// most recent runs. The feature is only enabled when a database connection
// exists.
package history
