package pitch

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	pmath "github.com/drakos74/pitch-guess/internal/math"
	"github.com/rs/zerolog/log"
)

// Experiment selects an optional, mutually exclusive transform of the feature matrix.
// Experiments are only used for ad hoc comparison runs, none applies by default.
type Experiment int

const (
	ExperimentNone    Experiment = 0
	ExperimentScale   Experiment = 1
	ExperimentDerived Experiment = 2
	ExperimentNoise   Experiment = 5
)

// Suffix marks the model blob of an experiment run,
// so differently transformed fits never collide.
func (e Experiment) Suffix() string {
	switch e {
	case ExperimentScale:
		return "_scaled"
	case ExperimentDerived:
		return "_add_feature"
	case ExperimentNoise:
		return "_random"
	}
	return ""
}

// BlobFile redirects the model blob file name for this experiment.
func (e Experiment) BlobFile(file string) string {
	suffix := e.Suffix()
	if suffix == "" {
		return file
	}
	if i := strings.LastIndex(file, "."); i > 0 {
		return file[:i] + suffix + file[i:]
	}
	return file + suffix
}

// Apply transforms the full feature matrix in place and returns the new schema.
func (e Experiment) Apply(x [][]float64, schema []string, seed int64) ([][]float64, []string, error) {
	switch e {
	case ExperimentNone:
		return x, schema, nil
	case ExperimentScale:
		return applyScale(x, schema)
	case ExperimentDerived:
		return applyDerived(x, schema)
	case ExperimentNoise:
		nx, ns := applyNoise(x, schema, seed)
		return nx, ns, nil
	}
	return nil, nil, fmt.Errorf("unknown experiment: %d", int(e))
}

// scaleStep distorts one group of three columns with the same integer step:
// the first is shifted, the second scaled, the third raised to the step's power.
type scaleStep struct {
	Step  int
	Shift string
	Scale string
	Power string
}

// newScalePlan materializes the scaling assignment as an explicit, named plan
// instead of leaving it implicit in the column ordering.
func newScalePlan(schema []string) []scaleStep {
	plan := make([]scaleStep, 0, len(schema)/3+1)
	step := 1
	for j, col := range schema {
		switch j % 3 {
		case 0:
			step++
			plan = append(plan, scaleStep{Step: step, Shift: col})
		case 1:
			plan[len(plan)-1].Scale = col
		case 2:
			plan[len(plan)-1].Power = col
		}
	}
	return plan
}

func applyScale(x [][]float64, schema []string) ([][]float64, []string, error) {
	index := make(map[string]int, len(schema))
	for j, col := range schema {
		index[col] = j
	}
	plan := newScalePlan(schema)
	for _, s := range plan {
		log.Debug().
			Int("step", s.Step).
			Str("shift", s.Shift).
			Str("scale", s.Scale).
			Str("power", s.Power).
			Msg("scale group")
		for i := range x {
			x[i][index[s.Shift]] += float64(s.Step)
			if s.Scale != "" {
				x[i][index[s.Scale]] *= float64(s.Step)
			}
			if s.Power != "" {
				x[i][index[s.Power]] = math.Pow(x[i][index[s.Power]], float64(s.Step))
			}
		}
	}
	return x, schema, nil
}

// derivedGroups are the named column groups whose euclidean norm
// is appended as a new feature.
var derivedGroups = []struct {
	Name       string
	Components []string
}{
	{Name: "plate_mag", Components: []string{"plate_x", "plate_z"}},
	{Name: "release_pos_mag", Components: []string{"release_pos_x", "release_pos_z"}},
	{Name: "pfx_mag", Components: []string{"pfx_x", "pfx_z"}},
	{Name: "a_mag", Components: []string{"ax", "ay", "az"}},
	{Name: "v0_mag", Components: []string{"vx0", "vy0", "vz0"}},
}

func applyDerived(x [][]float64, schema []string) ([][]float64, []string, error) {
	index := make(map[string]int, len(schema))
	for j, col := range schema {
		index[col] = j
	}
	for _, group := range derivedGroups {
		cols := make([]int, len(group.Components))
		for k, component := range group.Components {
			j, ok := index[component]
			if !ok {
				return nil, nil, fmt.Errorf("column '%s' for derived feature '%s' is not part of the schema", component, group.Name)
			}
			cols[k] = j
		}
		for i := range x {
			components := make([]float64, len(cols))
			for k, j := range cols {
				components[k] = x[i][j]
			}
			x[i] = append(x[i], pmath.Magnitude(components...))
		}
		schema = append(schema, group.Name)
	}
	return x, schema, nil
}

// applyNoise appends one continuous and one discrete column of pure noise,
// used to verify that a model learns to ignore them.
func applyNoise(x [][]float64, schema []string, seed int64) ([][]float64, []string) {
	r := rand.New(rand.NewSource(seed))
	for i := range x {
		cont := 100 + 200*r.Float64()
		desc := float64(1 + r.Intn(5))
		x[i] = append(x[i], cont, desc)
	}
	return x, append(schema, "random_cont", "random_desc")
}
