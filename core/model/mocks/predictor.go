package mocks

import (
	"context"

	"traffic-classifier/core/model"

	"github.com/stretchr/testify/mock"
	"gonum.org/v1/gonum/mat"
)

// Predictor is a mock implementation of model.Predictor
type Predictor struct {
	mock.Mock
}

func (m *Predictor) Features() []string {
	args := m.Called()
	if features, ok := args.Get(0).([]string); ok {
		return features
	}
	return nil
}

func (m *Predictor) Predict(ctx context.Context, X mat.Matrix) ([]int, error) {
	args := m.Called(ctx, X)
	if codes, ok := args.Get(0).([]int); ok {
		return codes, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Predictor) Info() model.Info {
	args := m.Called()
	return args.Get(0).(model.Info)
}
