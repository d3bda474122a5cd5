package ml

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
)

// Candidate is one point of a hyperparameter grid.
// New must return a freshly configured classifier for every call.
type Candidate struct {
	Name string
	New  func() Classifier
}

// GridSearch evaluates a fixed set of candidates with k-fold cross validation
// optimising micro averaged f1, and keeps only the best candidate's fit.
// It is itself a Classifier, so it can be passed anywhere a plain model can.
type GridSearch struct {
	candidates []Candidate
	folds      int
	seed       int64

	best      Classifier
	bestName  string
	bestScore float64
}

// NewGridSearch creates a grid search over the given candidates.
func NewGridSearch(folds int, seed int64, candidates ...Candidate) *GridSearch {
	return &GridSearch{
		candidates: candidates,
		folds:      folds,
		seed:       seed,
	}
}

// Fit scores every candidate concurrently and refits the winner on the full training set.
// The caller blocks until all grid points are done.
func (g *GridSearch) Fit(x [][]float64, y []int) error {
	if len(g.candidates) == 0 {
		return fmt.Errorf("no grid candidates given")
	}
	if len(x) < g.folds {
		return fmt.Errorf("not enough samples for %d folds: %d", g.folds, len(x))
	}

	folds := foldIndices(len(x), g.folds, g.seed)

	scores := make([]float64, len(g.candidates))
	errs := make([]error, len(g.candidates))

	jobs := make(chan int)
	workers := runtime.NumCPU()
	if workers > len(g.candidates) {
		workers = len(g.candidates)
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i], errs[i] = crossValidate(g.candidates[i].New, x, y, folds)
			}
		}()
	}
	for i := range g.candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	best := 0
	for i := range g.candidates {
		if errs[i] != nil {
			return fmt.Errorf("could not score candidate '%s': %w", g.candidates[i].Name, errs[i])
		}
		log.Info().Str("candidate", g.candidates[i].Name).Float64("f1", scores[i]).Msg("scored grid point")
		if scores[i] > scores[best] {
			best = i
		}
	}

	g.bestName = g.candidates[best].Name
	g.bestScore = scores[best]
	g.best = g.candidates[best].New()
	if err := g.best.Fit(x, y); err != nil {
		return fmt.Errorf("could not refit best candidate '%s': %w", g.bestName, err)
	}
	log.Info().Str("candidate", g.bestName).Float64("f1", g.bestScore).Msg("grid search done")
	return nil
}

func (g *GridSearch) Predict(x [][]float64) ([]int, error) {
	if g.best == nil {
		return nil, ErrNotFitted
	}
	return g.best.Predict(x)
}

// Best returns the name of the winning candidate.
func (g *GridSearch) Best() string {
	return g.bestName
}

// foldIndices shuffles the sample indices with the given seed
// and cuts them into near equal folds.
func foldIndices(n, folds int, seed int64) [][]int {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	out := make([][]int, folds)
	for i, idx := range perm {
		f := i % folds
		out[f] = append(out[f], idx)
	}
	return out
}

// crossValidate scores one candidate as the mean micro f1 over the folds.
func crossValidate(factory func() Classifier, x [][]float64, y []int, folds [][]int) (float64, error) {
	total := 0.0
	for f := range folds {
		trainX := make([][]float64, 0, len(x))
		trainY := make([]int, 0, len(y))
		for other := range folds {
			if other == f {
				continue
			}
			for _, idx := range folds[other] {
				trainX = append(trainX, x[idx])
				trainY = append(trainY, y[idx])
			}
		}
		testX := make([][]float64, 0, len(folds[f]))
		testY := make([]int, 0, len(folds[f]))
		for _, idx := range folds[f] {
			testX = append(testX, x[idx])
			testY = append(testY, y[idx])
		}

		model := factory()
		if err := model.Fit(trainX, trainY); err != nil {
			return 0, err
		}
		predictions, err := model.Predict(testX)
		if err != nil {
			return 0, err
		}
		total += MicroF1(testY, predictions)
	}
	return total / float64(len(folds)), nil
}

// blob is the serialised form of a finished grid search.
type blob struct {
	Name string
	Fit  []byte
}

// GobEncode persists only the winning candidate's fit.
func (g *GridSearch) GobEncode() ([]byte, error) {
	if g.best == nil {
		return nil, ErrNotFitted
	}
	var fit bytes.Buffer
	if err := gob.NewEncoder(&fit).Encode(g.best); err != nil {
		return nil, fmt.Errorf("could not encode best candidate '%s': %w", g.bestName, err)
	}
	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(blob{Name: g.bestName, Fit: fit.Bytes()}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// GobDecode restores the winning fit by matching the stored candidate name
// against the configured grid.
func (g *GridSearch) GobDecode(data []byte) error {
	var b blob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&b); err != nil {
		return err
	}
	for _, c := range g.candidates {
		if c.Name != b.Name {
			continue
		}
		model := c.New()
		if err := gob.NewDecoder(bytes.NewReader(b.Fit)).Decode(model); err != nil {
			return fmt.Errorf("could not decode candidate '%s': %w", b.Name, err)
		}
		g.best = model
		g.bestName = b.Name
		return nil
	}
	return fmt.Errorf("stored candidate '%s' is not part of the grid", b.Name)
}
