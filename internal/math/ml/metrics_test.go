package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {

	type test struct {
		actual    []int
		predicted []int
		accuracy  float64
	}

	tests := map[string]test{
		"perfect": {
			actual:    []int{0, 1, 2, 1},
			predicted: []int{0, 1, 2, 1},
			accuracy:  1,
		},
		"half": {
			actual:    []int{0, 1, 0, 1},
			predicted: []int{0, 0, 1, 1},
			accuracy:  0.5,
		},
		"none": {
			actual:    []int{0, 0},
			predicted: []int{1, 1},
			accuracy:  0,
		},
		"mismatched-lengths": {
			actual:    []int{0, 1},
			predicted: []int{0},
			accuracy:  0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tt.accuracy, Accuracy(tt.actual, tt.predicted), 1e-9)
		})
	}
}

func TestMicroF1(t *testing.T) {
	// with exactly one label per sample, micro f1 pools to the accuracy
	actual := []int{0, 1, 2, 2, 1, 0}
	predicted := []int{0, 1, 2, 1, 1, 2}
	assert.InDelta(t, Accuracy(actual, predicted), MicroF1(actual, predicted), 1e-9)
	assert.InDelta(t, 4.0/6.0, MicroF1(actual, predicted), 1e-9)

	assert.Equal(t, 0.0, MicroF1([]int{0, 0}, []int{1, 1}))
	assert.Equal(t, 0.0, MicroF1(nil, nil))
}
