package ml

import "errors"

// ErrNotFitted is returned when predictions are requested from a model
// that has neither been fitted nor restored from a cached fit.
var ErrNotFitted = errors.New("model is not fitted")

// Classifier is a supervised model over numeric features and integer class codes.
type Classifier interface {
	Fit(x [][]float64, y []int) error
	Predict(x [][]float64) ([]int, error)
}
