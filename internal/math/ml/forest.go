package ml

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

// Forest is a random forest classifier.
// The fitted state keeps the training snapshot, so that a restored blob
// can rebuild the forest without the caller re-supplying data.
type Forest struct {
	Trees  int
	TrainX [][]float64
	TrainY []int

	forest *randomforest.Forest
}

// NewForest creates a random forest with the given number of trees.
func NewForest(trees int) *Forest {
	return &Forest{
		Trees: trees,
	}
}

func (f *Forest) Fit(x [][]float64, y []int) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d samples vs %d labels", len(x), len(y))
	}
	f.TrainX = x
	f.TrainY = y
	return f.build()
}

func (f *Forest) build() error {
	if len(f.TrainX) == 0 {
		return ErrNotFitted
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: f.TrainX, Class: f.TrainY}
	forest.Train(f.Trees)
	f.forest = forest
	log.Debug().Int("trees", f.Trees).Int("samples", len(f.TrainX)).Msg("forest trained")
	return nil
}

func (f *Forest) Predict(x [][]float64) ([]int, error) {
	if f.forest == nil {
		if err := f.build(); err != nil {
			return nil, err
		}
	}
	classes := make([]int, len(x))
	for i, row := range x {
		votes := f.forest.Vote(row)
		best := 0
		for c, v := range votes {
			if v > votes[best] {
				best = c
			}
		}
		classes[i] = best
	}
	return classes, nil
}

// Importance returns the relative feature importance of the fitted forest.
func (f *Forest) Importance() ([]float64, error) {
	if f.forest == nil {
		if err := f.build(); err != nil {
			return nil, err
		}
	}
	return f.forest.FeatureImportance, nil
}
