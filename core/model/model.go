package model

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Predictor is a trained classifier.
type Predictor interface {
	// Features returns the input column names, in matrix column order.
	Features() []string
	// Predict returns one label code per row of X.
	Predict(ctx context.Context, X mat.Matrix) ([]int, error)
	// Info describes the loaded artifact.
	Info() Info
}

// Info describes a loaded model artifact.
type Info struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Features []string `json:"features"`
	Classes  []int    `json:"classes"`
	Trees    int      `json:"trees"`
	// SHA256 is the hex digest of the artifact bytes.
	SHA256 string `json:"sha256"`
	// Source is the path or object key the artifact was read from.
	Source string `json:"source"`
}

// Labels maps label codes to their human-readable names.
var Labels = map[int]string{
	0: "Benign",
	1: "Bot",
}

// Label returns the name for a label code, or "" when the code is unknown.
func Label(code int) string {
	return Labels[code]
}
