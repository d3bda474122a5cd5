package pitch

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
)

// Dataset binds the encoded feature matrix to a deterministic train/test partition.
type Dataset struct {
	// Schema is the ordered feature column list the model is bound to.
	Schema []string
	// Labels maps a class code back to its pitch name, codes are assigned alphabetically.
	Labels []string

	X [][]float64
	Y []int

	TrainX [][]float64
	TrainY []int
	TestX  [][]float64
	TestY  []int
}

// NewDataset encodes the cleaned rows, applies the optional experiment to the
// full feature matrix and splits it with the given seed and test fraction.
func NewDataset(rows []Row, columns []string, experiment Experiment, fraction float64, seed int64) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to encode")
	}
	if fraction <= 0 || fraction >= 1 {
		return nil, fmt.Errorf("invalid test fraction: %f", fraction)
	}

	labels := encodeLabels(rows)
	codes := make(map[string]int, len(labels))
	for code, label := range labels {
		codes[label] = code
	}

	schema := FeatureColumns(columns)
	x := make([][]float64, len(rows))
	y := make([]int, len(rows))
	for i, row := range rows {
		features := make([]float64, len(schema))
		for j, col := range schema {
			v, err := row.feature(col)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			features[j] = v
		}
		x[i] = features
		y[i] = codes[row.PitchName]
	}

	x, schema, err := experiment.Apply(x, schema, seed)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Schema: schema,
		Labels: labels,
		X:      x,
		Y:      y,
	}
	ds.split(fraction, seed)
	log.Info().
		Int("samples", len(ds.X)).
		Int("features", len(ds.Schema)).
		Int("train", len(ds.TrainY)).
		Int("test", len(ds.TestY)).
		Msg("dataset ready")
	return ds, nil
}

// encodeLabels assigns class codes by alphabetical order of the distinct labels,
// not by order of appearance.
func encodeLabels(rows []Row) []string {
	seen := make(map[string]struct{})
	labels := make([]string, 0)
	for _, row := range rows {
		if _, ok := seen[row.PitchName]; ok {
			continue
		}
		seen[row.PitchName] = struct{}{}
		labels = append(labels, row.PitchName)
	}
	sort.Strings(labels)
	return labels
}

// split partitions the rows with a seeded shuffle, test rows first.
func (ds *Dataset) split(fraction float64, seed int64) {
	n := len(ds.X)
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testN := int(math.Round(float64(n) * fraction))

	ds.TestX = make([][]float64, 0, testN)
	ds.TestY = make([]int, 0, testN)
	ds.TrainX = make([][]float64, 0, n-testN)
	ds.TrainY = make([]int, 0, n-testN)
	for i, idx := range perm {
		if i < testN {
			ds.TestX = append(ds.TestX, ds.X[idx])
			ds.TestY = append(ds.TestY, ds.Y[idx])
		} else {
			ds.TrainX = append(ds.TrainX, ds.X[idx])
			ds.TrainY = append(ds.TrainY, ds.Y[idx])
		}
	}
}
