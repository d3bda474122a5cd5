package statcast

import (
	"fmt"
	"path/filepath"
	"testing"

	jsonstore "github.com/drakos74/pitch-guess/internal/storage/file/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFeed records the ranges it was asked for.
type fakeFeed struct {
	pitches map[string][]Pitch
	calls   []string
}

func (f *fakeFeed) Pitches(start, end string) ([]Pitch, error) {
	key := fmt.Sprintf("%s_%s", start, end)
	f.calls = append(f.calls, key)
	return f.pitches[key], nil
}

func pitchOn(date string) Pitch {
	d, _ := ParseDate(date)
	speed := 90.0
	return Pitch{
		GameDate:     d,
		PitchName:    "Slider",
		ReleaseSpeed: &speed,
	}
}

func TestSource_FetchesWholeRangeWithoutSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch_data.json")
	feed := &fakeFeed{pitches: map[string][]Pitch{
		"2022-04-01_2022-04-03": {pitchOn("2022-04-01"), pitchOn("2022-04-03")},
	}}

	source := NewSource(feed, jsonstore.NewStore(), path)
	pitches, err := source.Get("2022-04-01", "2022-04-03", false)
	require.NoError(t, err)

	assert.Equal(t, 2, len(pitches))
	assert.Equal(t, []string{"2022-04-01_2022-04-03"}, feed.calls)
	assert.FileExists(t, path)
}

func TestSource_ReusesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch_data.json")
	feed := &fakeFeed{pitches: map[string][]Pitch{
		"2022-04-01_2022-04-03": {pitchOn("2022-04-01"), pitchOn("2022-04-03")},
	}}
	store := jsonstore.NewStore()

	source := NewSource(feed, store, path)
	_, err := source.Get("2022-04-01", "2022-04-03", false)
	require.NoError(t, err)

	// same range again, the snapshot covers it
	pitches, err := source.Get("2022-04-01", "2022-04-03", false)
	require.NoError(t, err)
	assert.Equal(t, 2, len(pitches))
	assert.Equal(t, []string{"2022-04-01_2022-04-03"}, feed.calls)
}

func TestSource_ExtendsRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch_data.json")
	store := jsonstore.NewStore()
	require.NoError(t, store.Store(path, []Pitch{pitchOn("2022-04-05"), pitchOn("2022-04-06")}))

	feed := &fakeFeed{pitches: map[string][]Pitch{
		"2022-04-01_2022-04-05": {pitchOn("2022-04-01"), pitchOn("2022-04-04")},
		"2022-04-06_2022-04-09": {pitchOn("2022-04-08")},
	}}

	source := NewSource(feed, store, path)
	pitches, err := source.Get("2022-04-01", "2022-04-09", false)
	require.NoError(t, err)

	// earlier span prepended, later span appended
	assert.Equal(t, []string{"2022-04-01_2022-04-05", "2022-04-06_2022-04-09"}, feed.calls)
	assert.Equal(t, 5, len(pitches))

	// the assembled base is persisted back
	persisted := make([]Pitch, 0)
	require.NoError(t, store.Load(path, &persisted))
	assert.Equal(t, 5, len(persisted))
}

func TestSource_EndWithinOneDayIsCovered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch_data.json")
	store := jsonstore.NewStore()
	require.NoError(t, store.Store(path, []Pitch{pitchOn("2022-04-01"), pitchOn("2022-04-05")}))

	feed := &fakeFeed{pitches: map[string][]Pitch{}}
	source := NewSource(feed, store, path)

	// requested end is only one day past the snapshot max, no fetch happens
	pitches, err := source.Get("2022-04-01", "2022-04-06", false)
	require.NoError(t, err)
	assert.Empty(t, feed.calls)
	assert.Equal(t, 2, len(pitches))
}

func TestSource_EmptyFeedResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch_data.json")
	store := jsonstore.NewStore()

	// an off season window, the feed has nothing for it
	feed := &fakeFeed{pitches: map[string][]Pitch{}}
	source := NewSource(feed, store, path)

	pitches, err := source.Get("2022-12-01", "2022-12-05", false)
	require.NoError(t, err)
	assert.Empty(t, pitches)

	// the empty base has no range to extend, one fetch only
	assert.Equal(t, []string{"2022-12-01_2022-12-05"}, feed.calls)

	// the empty base is still persisted
	persisted := make([]Pitch, 0)
	require.NoError(t, store.Load(path, &persisted))
	assert.Empty(t, persisted)
}

func TestSource_RefreshIgnoresSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitch_data.json")
	store := jsonstore.NewStore()
	require.NoError(t, store.Store(path, []Pitch{pitchOn("2022-04-01")}))

	feed := &fakeFeed{pitches: map[string][]Pitch{
		"2022-04-01_2022-04-02": {pitchOn("2022-04-01"), pitchOn("2022-04-02")},
	}}
	source := NewSource(feed, store, path)

	pitches, err := source.Get("2022-04-01", "2022-04-02", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2022-04-01_2022-04-02"}, feed.calls)
	assert.Equal(t, 2, len(pitches))
}
