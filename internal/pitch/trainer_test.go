package pitch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/pitch-guess/internal/math/ml"
	gobstore "github.com/drakos74/pitch-guess/internal/storage/file/gob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrainer_RequiredArguments(t *testing.T) {
	store := gobstore.NewStore()

	_, err := NewTrainer(nil, store, "model.gob", false)
	assert.Error(t, err)

	_, err = NewTrainer(ml.NewKNN(5, "euclidean"), store, "", false)
	assert.Error(t, err)

	_, err = NewTrainer(ml.NewKNN(5, "euclidean"), store, "model.gob", false)
	assert.NoError(t, err)
}

func TestTrainer_FitPersistsAndReloads(t *testing.T) {
	store := gobstore.NewStore()
	path := filepath.Join(t.TempDir(), "knn.gob")

	x := [][]float64{{1, 1}, {2, 2}, {3, 3}}
	y := []int{0, 1, 2}

	trainer, err := NewTrainer(ml.NewKNN(1, "euclidean"), store, path, false)
	require.NoError(t, err)
	fitted, err := trainer.Fit(x, y)
	require.NoError(t, err)
	assert.Equal(t, x, fitted.(*ml.KNN).TrainX)

	// second run with different data reuses the cached fit
	other := ml.NewKNN(1, "euclidean")
	trainer2, err := NewTrainer(other, store, path, false)
	require.NoError(t, err)
	fitted2, err := trainer2.Fit([][]float64{{9, 9}}, []int{5})
	require.NoError(t, err)
	assert.Equal(t, x, fitted2.(*ml.KNN).TrainX)
	assert.Equal(t, y, fitted2.(*ml.KNN).TrainY)
}

func TestTrainer_RefreshOverwritesCache(t *testing.T) {
	store := gobstore.NewStore()
	path := filepath.Join(t.TempDir(), "knn.gob")

	x := [][]float64{{1, 1}, {2, 2}}
	y := []int{0, 1}

	trainer, err := NewTrainer(ml.NewKNN(1, "euclidean"), store, path, false)
	require.NoError(t, err)
	_, err = trainer.Fit(x, y)
	require.NoError(t, err)

	x2 := [][]float64{{7, 7}, {8, 8}}
	trainer2, err := NewTrainer(ml.NewKNN(1, "euclidean"), store, path, true)
	require.NoError(t, err)
	fitted, err := trainer2.Fit(x2, y)
	require.NoError(t, err)
	assert.Equal(t, x2, fitted.(*ml.KNN).TrainX)

	// and the blob now holds the refreshed fit
	reread := ml.NewKNN(1, "euclidean")
	trainer3, err := NewTrainer(reread, store, path, false)
	require.NoError(t, err)
	fitted3, err := trainer3.Fit([][]float64{{0, 0}}, []int{0})
	require.NoError(t, err)
	assert.Equal(t, x2, fitted3.(*ml.KNN).TrainX)
}

func TestTrainer_CorruptBlob(t *testing.T) {
	store := gobstore.NewStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "knn.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob blob"), 0644))

	trainer, err := NewTrainer(ml.NewKNN(1, "euclidean"), store, path, false)
	require.NoError(t, err)
	_, err = trainer.Fit([][]float64{{1, 1}}, []int{0})
	assert.Error(t, err)
}
