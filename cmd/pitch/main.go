package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/drakos74/pitch-guess/infra/config"
	gobstore "github.com/drakos74/pitch-guess/internal/storage/file/gob"
	jsonstore "github.com/drakos74/pitch-guess/internal/storage/file/json"

	"github.com/drakos74/pitch-guess/internal/pitch"
	"github.com/drakos74/pitch-guess/internal/statcast"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	_ = godotenv.Load()

	cfg := config.New("2022-03-17", "")
	config.MustLoad("pitch", &cfg)
	if cfg.End == "" {
		cfg.End = time.Now().Format(statcast.DateFormat)
	}
	if dir := os.Getenv("PITCH_CACHE_DIR"); dir != "" {
		cfg.CacheDir = dir
	}

	columns, err := config.Columns("infra/config/columns.txt")
	if err != nil {
		panic(fmt.Sprintf("could not load column whitelist : %+v", err))
	}

	url := statcast.DefaultURL
	if u := os.Getenv("STATCAST_URL"); u != "" {
		url = u
	}
	experiment := pitch.ExperimentNone
	if e := os.Getenv("PITCH_EXPERIMENT"); e != "" {
		i, err := strconv.Atoi(e)
		if err != nil {
			panic(fmt.Sprintf("invalid experiment flag : %+v", err))
		}
		experiment = pitch.Experiment(i)
	}

	source := statcast.NewSource(statcast.NewClient(url, 0), jsonstore.NewStore(), cfg.SnapshotPath())
	pipeline := pitch.New(cfg, columns, source, gobstore.NewStore())

	run := uuid.New().String()
	log.Info().
		Str("run", run).
		Str("start", cfg.Start).
		Str("end", cfg.End).
		Int("experiment", int(experiment)).
		Msg("starting runs")

	for _, spec := range []pitch.RunSpec{
		pitch.NewForestRun(experiment, cfg.Seed),
		pitch.NewKNNRun(experiment, cfg.Seed),
		pitch.NewBoostRun(experiment),
	} {
		evaluation, err := pipeline.Run(spec)
		if err != nil {
			panic(fmt.Sprintf("could not run %s : %+v", spec.Name, err))
		}
		fmt.Printf("%s\n%s\n", spec.Name, evaluation.Report())
	}
}
