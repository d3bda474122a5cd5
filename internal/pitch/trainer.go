package pitch

import (
	"fmt"

	"github.com/drakos74/pitch-guess/internal/math/ml"
	"github.com/drakos74/pitch-guess/internal/storage"
	"github.com/rs/zerolog/log"
)

// Trainer fits the supplied classifier against the training split,
// or reuses a previously persisted fit.
type Trainer struct {
	model   ml.Classifier
	store   storage.Persistence
	path    string
	refresh bool
}

// NewTrainer creates a trainer for the given classifier and blob path.
// Both are required, there are no defaults.
func NewTrainer(model ml.Classifier, store storage.Persistence, path string, refresh bool) (*Trainer, error) {
	if model == nil {
		return nil, fmt.Errorf("a model must be passed")
	}
	if path == "" {
		return nil, fmt.Errorf("a model blob path must be passed")
	}
	return &Trainer{
		model:   model,
		store:   store,
		path:    path,
		refresh: refresh,
	}, nil
}

// Fit produces the fitted model. With a usable cached blob and refresh off,
// the blob wins and the supplied training data is ignored.
func (t *Trainer) Fit(x [][]float64, y []int) (ml.Classifier, error) {
	if !storage.Exists(t.path) || t.refresh {
		if err := t.model.Fit(x, y); err != nil {
			return nil, fmt.Errorf("could not fit model: %w", err)
		}
		if err := t.store.Store(t.path, t.model); err != nil {
			return nil, fmt.Errorf("could not persist model: %w", err)
		}
		log.Info().Str("path", t.path).Int("samples", len(y)).Msg("fitted and persisted model")
		return t.model, nil
	}

	if err := t.store.Load(t.path, t.model); err != nil {
		return nil, fmt.Errorf("could not load cached model: %w", err)
	}
	log.Info().Str("path", t.path).Msg("loaded cached model")
	return t.model, nil
}
