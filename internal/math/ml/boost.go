package ml

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"gonum.org/v1/gonum/mat"
)

// Boost is a gradient boosting classifier on top of the lightgbm port.
// As with Forest, the fitted state keeps the training snapshot so a restored
// blob can rebuild the boosting rounds deterministically.
type Boost struct {
	Iterations   int
	Leaves       int
	LearningRate float64
	TrainX       [][]float64
	TrainY       []int

	clf *lightgbm.LGBMClassifier
}

// NewBoost creates a gradient boosting classifier.
func NewBoost(iterations, leaves int, learningRate float64) *Boost {
	return &Boost{
		Iterations:   iterations,
		Leaves:       leaves,
		LearningRate: learningRate,
	}
}

func (b *Boost) Fit(x [][]float64, y []int) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training set: %d samples vs %d labels", len(x), len(y))
	}
	b.TrainX = x
	b.TrainY = y
	return b.build()
}

func (b *Boost) build() error {
	if len(b.TrainX) == 0 {
		return ErrNotFitted
	}
	clf := lightgbm.NewLGBMClassifier().
		WithNumIterations(b.Iterations).
		WithNumLeaves(b.Leaves).
		WithLearningRate(b.LearningRate)

	X := toDense(b.TrainX)
	y := mat.NewDense(len(b.TrainY), 1, nil)
	for i, c := range b.TrainY {
		y.Set(i, 0, float64(c))
	}
	if err := clf.Fit(X, y); err != nil {
		return fmt.Errorf("could not fit boosting model: %w", err)
	}
	b.clf = clf
	return nil
}

func (b *Boost) Predict(x [][]float64) ([]int, error) {
	if b.clf == nil {
		if err := b.build(); err != nil {
			return nil, err
		}
	}
	predictions, err := b.clf.Predict(toDense(x))
	if err != nil {
		return nil, fmt.Errorf("could not predict with boosting model: %w", err)
	}
	classes := make([]int, len(x))
	for i := range x {
		classes[i] = int(math.Round(predictions.At(i, 0)))
	}
	return classes, nil
}

func toDense(x [][]float64) *mat.Dense {
	rows := len(x)
	cols := 0
	if rows > 0 {
		cols = len(x[0])
	}
	d := mat.NewDense(rows, cols, nil)
	for i, row := range x {
		d.SetRow(i, row)
	}
	return d
}
