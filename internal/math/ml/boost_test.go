package ml

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoost_FitPredict(t *testing.T) {
	x, y := separable(100, 1, 7)

	cls := NewBoost(20, 7, 0.1)
	require.NoError(t, cls.Fit(x, y))

	predictions, err := cls.Predict([][]float64{{0.5, 50}, {10.5, 50}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, predictions)
}

func TestBoost_RebuildsFromSnapshot(t *testing.T) {
	x, y := separable(100, 1, 7)

	cls := NewBoost(20, 7, 0.1)
	require.NoError(t, cls.Fit(x, y))

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(cls))

	restored := &Boost{}
	require.NoError(t, gob.NewDecoder(&buf).Decode(restored))
	assert.Equal(t, 20, restored.Iterations)

	predictions, err := restored.Predict([][]float64{{0.5, 50}, {10.5, 50}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, predictions)
}

func TestBoost_NotFitted(t *testing.T) {
	cls := NewBoost(10, 31, 0.1)
	_, err := cls.Predict([][]float64{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)
}
