package prediction

import "errors"

var (
	// ErrModelUnavailable is returned when no classifier was loaded at startup.
	ErrModelUnavailable = errors.New("prediction model is not loaded")
	// ErrNoFile is returned when the request carries no usable file part.
	ErrNoFile = errors.New("no file part or selected file in the request")
)
