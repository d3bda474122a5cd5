package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKNN_FitPredict(t *testing.T) {
	x := [][]float64{
		{0, 0}, {0.1, 0.2}, {0.2, 0.1}, {0.1, 0.1},
		{10, 10}, {10.1, 10.2}, {10.2, 10.1}, {10.1, 10.1},
	}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}

	cls := NewKNN(3, "euclidean")
	require.NoError(t, cls.Fit(x, y))

	predictions, err := cls.Predict([][]float64{{0.05, 0.05}, {10.05, 10.05}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, predictions)
}

func TestKNN_NotFitted(t *testing.T) {
	cls := NewKNN(3, "euclidean")
	_, err := cls.Predict([][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestClassValueRoundTrip(t *testing.T) {
	for _, code := range []int{0, 1, 5, 42} {
		parsed, err := parseClassValue(classValue(code))
		require.NoError(t, err)
		assert.Equal(t, code, parsed)
	}
	_, err := parseClassValue("slider")
	assert.Error(t, err)
}
