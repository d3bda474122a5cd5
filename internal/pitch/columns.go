package pitch

import (
	"fmt"
	"time"

	"github.com/drakos74/pitch-guess/internal/statcast"
)

// Pitches are the recognized pitch type labels.
// The order doubles as the axes of the confusion matrix.
var Pitches = []string{"4-Seam Fastball", "Changeup", "Curveball", "Cutter", "Sinker", "Slider"}

// skipColumns are projected through the cleaning step for bookkeeping
// but never enter the feature matrix.
var skipColumns = map[string]struct{}{
	"game_date":   {},
	"pitcher":     {},
	"player_name": {},
	"pitch_name":  {},
	"p_throws":    {},
	"type":        {},
}

// booleanColumns are the indicator columns derived from the categorical fields.
var booleanColumns = map[string]struct{}{
	"lefty":       {},
	"righty":      {},
	"ball":        {},
	"strike":      {},
	"hit_in_play": {},
}

// numericColumns maps a column name to its field on the raw record.
var numericColumns = map[string]func(p *statcast.Pitch) *float64{
	"zone":              func(p *statcast.Pitch) *float64 { return p.Zone },
	"release_speed":     func(p *statcast.Pitch) *float64 { return p.ReleaseSpeed },
	"release_pos_x":     func(p *statcast.Pitch) *float64 { return p.ReleasePosX },
	"release_pos_y":     func(p *statcast.Pitch) *float64 { return p.ReleasePosY },
	"release_pos_z":     func(p *statcast.Pitch) *float64 { return p.ReleasePosZ },
	"pfx_x":             func(p *statcast.Pitch) *float64 { return p.PfxX },
	"pfx_z":             func(p *statcast.Pitch) *float64 { return p.PfxZ },
	"plate_x":           func(p *statcast.Pitch) *float64 { return p.PlateX },
	"plate_z":           func(p *statcast.Pitch) *float64 { return p.PlateZ },
	"vx0":               func(p *statcast.Pitch) *float64 { return p.VX0 },
	"vy0":               func(p *statcast.Pitch) *float64 { return p.VY0 },
	"vz0":               func(p *statcast.Pitch) *float64 { return p.VZ0 },
	"ax":                func(p *statcast.Pitch) *float64 { return p.AX },
	"ay":                func(p *statcast.Pitch) *float64 { return p.AY },
	"az":                func(p *statcast.Pitch) *float64 { return p.AZ },
	"sz_top":            func(p *statcast.Pitch) *float64 { return p.SzTop },
	"sz_bot":            func(p *statcast.Pitch) *float64 { return p.SzBot },
	"release_spin_rate": func(p *statcast.Pitch) *float64 { return p.ReleaseSpinRate },
	"release_extension": func(p *statcast.Pitch) *float64 { return p.ReleaseExtension },
	"spin_axis":         func(p *statcast.Pitch) *float64 { return p.SpinAxis },
}

// Row is one cleaned pitch event, projected onto the configured columns.
type Row struct {
	GameDate   time.Time
	Pitcher    int
	PlayerName string
	PitchName  string
	PThrows    string
	Type       string

	Lefty     bool
	Righty    bool
	Ball      bool
	Strike    bool
	HitInPlay bool

	Values map[string]*float64
}

// feature resolves the numeric value of a feature column, booleans map to 0/1.
func (r Row) feature(col string) (float64, error) {
	if _, ok := booleanColumns[col]; ok {
		var b bool
		switch col {
		case "lefty":
			b = r.Lefty
		case "righty":
			b = r.Righty
		case "ball":
			b = r.Ball
		case "strike":
			b = r.Strike
		case "hit_in_play":
			b = r.HitInPlay
		}
		if b {
			return 1, nil
		}
		return 0, nil
	}
	v, ok := r.Values[col]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing value for column '%s'", col)
	}
	return *v, nil
}

// FeatureColumns filters the configured column list down to the feature schema.
func FeatureColumns(columns []string) []string {
	features := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, ok := skipColumns[col]; ok {
			continue
		}
		features = append(features, col)
	}
	return features
}
