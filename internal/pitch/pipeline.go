package pitch

import (
	"fmt"

	"github.com/drakos74/pitch-guess/infra/config"
	"github.com/drakos74/pitch-guess/internal/math/ml"
	"github.com/drakos74/pitch-guess/internal/statcast"
	"github.com/drakos74/pitch-guess/internal/storage"
	"github.com/rs/zerolog/log"
)

// Source provides the raw pitch events covering a requested date range.
type Source interface {
	Get(start, end string, refresh bool) ([]statcast.Pitch, error)
}

// RunSpec is one ad hoc classifier run: a configured model, the blob file
// its fit is cached under, and the optional feature experiment.
type RunSpec struct {
	Name       string
	Model      ml.Classifier
	Blob       string
	Experiment Experiment
}

// NewForestRun configures the random forest with a grid over the tree count.
func NewForestRun(experiment Experiment, seed int64) RunSpec {
	candidates := make([]ml.Candidate, 0)
	for _, trees := range []int{100, 200, 500} {
		trees := trees
		candidates = append(candidates, ml.Candidate{
			Name: fmt.Sprintf("forest_%d", trees),
			New:  func() ml.Classifier { return ml.NewForest(trees) },
		})
	}
	return RunSpec{
		Name:       "Random Forest",
		Model:      ml.NewGridSearch(2, seed, candidates...),
		Blob:       "forest.gob",
		Experiment: experiment,
	}
}

// NewKNNRun configures the nearest neighbour model with a grid over
// the neighbour count and the distance metric.
func NewKNNRun(experiment Experiment, seed int64) RunSpec {
	candidates := make([]ml.Candidate, 0)
	for _, k := range []int{5, 10, 15} {
		for _, distance := range []string{"euclidean", "manhattan"} {
			k, distance := k, distance
			candidates = append(candidates, ml.Candidate{
				Name: fmt.Sprintf("knn_%d_%s", k, distance),
				New:  func() ml.Classifier { return ml.NewKNN(k, distance) },
			})
		}
	}
	return RunSpec{
		Name:       "K-Nearest Neighbour",
		Model:      ml.NewGridSearch(2, seed, candidates...),
		Blob:       "knn.gob",
		Experiment: experiment,
	}
}

// NewBoostRun configures the gradient boosting model.
// No grid here, the search takes too long to be worth it.
func NewBoostRun(experiment Experiment) RunSpec {
	return RunSpec{
		Name:       "Gradient Boosting",
		Model:      ml.NewBoost(100, 31, 0.1),
		Blob:       "boost.gob",
		Experiment: experiment,
	}
}

// Pipeline wires the full flow: source, cleaner, dataset, trainer, evaluation.
type Pipeline struct {
	cfg     config.Config
	columns []string
	source  Source
	blobs   storage.Persistence
}

// New creates a pipeline for the given run configuration.
func New(cfg config.Config, columns []string, source Source, blobs storage.Persistence) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		columns: columns,
		source:  source,
		blobs:   blobs,
	}
}

// Run executes one classifier run end to end and returns its evaluation.
func (p *Pipeline) Run(spec RunSpec) (*Evaluation, error) {
	raw, err := p.source.Get(p.cfg.Start, p.cfg.End, p.cfg.Refresh)
	if err != nil {
		return nil, fmt.Errorf("could not get raw data: %w", err)
	}

	cleaner, err := NewCleaner(p.columns, p.cfg.Start, p.cfg.End)
	if err != nil {
		return nil, err
	}
	rows, err := cleaner.Clean(raw)
	if err != nil {
		return nil, err
	}

	ds, err := NewDataset(rows, p.columns, spec.Experiment, p.cfg.TestFraction, p.cfg.Seed)
	if err != nil {
		return nil, err
	}

	blob := p.cfg.ModelPath(spec.Experiment.BlobFile(spec.Blob))
	trainer, err := NewTrainer(spec.Model, p.blobs, blob, p.cfg.Refresh)
	if err != nil {
		return nil, err
	}
	model, err := trainer.Fit(ds.TrainX, ds.TrainY)
	if err != nil {
		return nil, err
	}

	evaluation, err := Evaluate(model, ds)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("model", spec.Name).
		Str("blob", blob).
		Float64("accuracy", evaluation.Accuracy).
		Msg("run complete")
	return evaluation, nil
}
