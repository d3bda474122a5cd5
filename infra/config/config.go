package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const path = "infra/config"

// Config carries the run setup for one pipeline execution.
// It is passed explicitly, there is no global cache state.
type Config struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Refresh      bool    `json:"refresh"`
	CacheDir     string  `json:"cache_dir"`
	Snapshot     string  `json:"snapshot"`
	TestFraction float64 `json:"test_fraction"`
	Seed         int64   `json:"seed"`
}

// New creates a config for the given date range with the usual defaults.
func New(start, end string) Config {
	return Config{
		Start:        start,
		End:          end,
		CacheDir:     filepath.Join(os.TempDir(), "pitch-guess"),
		Snapshot:     "pitch_data.json",
		TestFraction: 0.3,
		Seed:         42,
	}
}

// SnapshotPath is the location of the raw feed snapshot.
func (c Config) SnapshotPath() string {
	return filepath.Join(c.CacheDir, c.Snapshot)
}

// ModelPath is the location of the fitted model blob for the given file name.
func (c Config) ModelPath(file string) string {
	return filepath.Join(c.CacheDir, file)
}

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) []byte {

	b, err := os.ReadFile(fmt.Sprintf("%s/%s.json", path, key))
	if err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		panic(fmt.Sprintf("could not unmarshal the config for %s: %s", key, err.Error()))
	}

	log.Info().Str("config", key).Msg("loaded default config")

	return b
}

// Columns loads the ordered column whitelist from the given flat file,
// one column name per line.
func Columns(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open columns file '%s': %w", file, err)
	}
	defer f.Close()

	cols := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		col := strings.TrimSpace(scanner.Text())
		if col == "" {
			continue
		}
		cols = append(cols, col)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read columns file '%s': %w", file, err)
	}
	return cols, nil
}
