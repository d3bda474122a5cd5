package statcast

import (
	"fmt"
	"time"

	"github.com/drakos74/pitch-guess/internal/storage"
	"github.com/rs/zerolog/log"
)

// Feed provides raw pitch events for an inclusive date range.
type Feed interface {
	Pitches(start, end string) ([]Pitch, error)
}

// Source wraps a feed with an on disk snapshot,
// extending the cached range only where the request falls outside of it.
type Source struct {
	feed  Feed
	store storage.Persistence
	path  string
}

// NewSource creates a cached source on top of the given feed.
func NewSource(feed Feed, store storage.Persistence, path string) *Source {
	return &Source{
		feed:  feed,
		store: store,
		path:  path,
	}
}

// Get assembles the base set of pitch events covering [start, end].
// The assembled base is persisted back to the snapshot before it is returned,
// date filtering is left to the cleaning step.
func (s *Source) Get(start, end string, refresh bool) ([]Pitch, error) {
	startTS, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	endTS, err := ParseDate(end)
	if err != nil {
		return nil, err
	}

	base := make([]Pitch, 0)
	if storage.Exists(s.path) && !refresh {
		if err := s.store.Load(s.path, &base); err != nil {
			return nil, fmt.Errorf("could not load snapshot: %w", err)
		}
		log.Info().Str("path", s.path).Int("pitches", len(base)).Msg("loaded snapshot")
	}
	if len(base) == 0 {
		base, err = s.feed.Pitches(start, end)
		if err != nil {
			return nil, err
		}
	}

	// an empty base has no date range to extend,
	// the requested span was already fetched in full
	if len(base) > 0 {
		base, err = s.fromDate(base, startTS)
		if err != nil {
			return nil, err
		}
		base, err = s.toDate(base, endTS, end)
		if err != nil {
			return nil, err
		}
	}

	if err := s.store.Store(s.path, base); err != nil {
		return nil, fmt.Errorf("could not store snapshot: %w", err)
	}
	return base, nil
}

// fromDate prepends the missing earlier span when the base starts too late.
func (s *Source) fromDate(base []Pitch, startTS time.Time) ([]Pitch, error) {
	min, _ := Range(base)
	if !startTS.Before(min) {
		return base, nil
	}
	head, err := s.feed.Pitches(startTS.Format(DateFormat), min.Format(DateFormat))
	if err != nil {
		return nil, err
	}
	return append(base, head...), nil
}

// toDate appends the missing later span when the base ends more than a day early.
func (s *Source) toDate(base []Pitch, endTS time.Time, end string) ([]Pitch, error) {
	_, max := Range(base)
	if !endTS.After(max.AddDate(0, 0, 1)) {
		return base, nil
	}
	tail, err := s.feed.Pitches(max.Format(DateFormat), end)
	if err != nil {
		return nil, err
	}
	return append(base, tail...), nil
}
