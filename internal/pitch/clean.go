package pitch

import (
	"fmt"
	"sort"
	"time"

	"github.com/drakos74/pitch-guess/internal/statcast"
	"github.com/rs/zerolog/log"
)

// Cleaner turns raw feed records into feature complete rows.
type Cleaner struct {
	columns []string
	start   time.Time
	end     time.Time
}

// NewCleaner creates a cleaner for the given ordered column whitelist and date range.
func NewCleaner(columns []string, start, end string) (*Cleaner, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns given")
	}
	startTS, err := statcast.ParseDate(start)
	if err != nil {
		return nil, err
	}
	endTS, err := statcast.ParseDate(end)
	if err != nil {
		return nil, err
	}
	return &Cleaner{
		columns: columns,
		start:   startTS,
		end:     endTS,
	}, nil
}

// Clean runs the cleaning steps in their fixed order:
// drop incomplete, derive indicators, project, forward fill,
// filter to the recognized pitches and sort, clamp to the requested range.
// NOTE : the fill runs before the label filter, so values can leak across
// pitch type boundaries. This mirrors the established behaviour.
func (c *Cleaner) Clean(raw []statcast.Pitch) ([]Row, error) {
	rows := make([]Row, 0, len(raw))
	for i := range raw {
		p := &raw[i]
		if p.ReleaseSpeed == nil || p.ReleasePosX == nil || p.ReleasePosZ == nil {
			continue
		}
		rows = append(rows, c.project(p))
	}

	c.fill(rows)

	rows = c.filter(rows)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PitchName != rows[j].PitchName {
			return rows[i].PitchName < rows[j].PitchName
		}
		if !rows[i].GameDate.Equal(rows[j].GameDate) {
			return rows[i].GameDate.Before(rows[j].GameDate)
		}
		return rows[i].Pitcher < rows[j].Pitcher
	})

	rows = c.clamp(rows)
	log.Info().Int("raw", len(raw)).Int("cleaned", len(rows)).Msg("cleaned records")
	return rows, nil
}

// project derives the indicator columns and keeps only whitelisted values.
func (c *Cleaner) project(p *statcast.Pitch) Row {
	row := Row{
		GameDate:   p.GameDate,
		Pitcher:    p.Pitcher,
		PlayerName: p.PlayerName,
		PitchName:  p.PitchName,
		PThrows:    p.PThrows,
		Type:       p.Type,
		Lefty:      p.PThrows == "L",
		Righty:     p.PThrows == "R",
		Ball:       p.Type == "B",
		Strike:     p.Type == "S",
		HitInPlay:  p.Type == "X",
		Values:     make(map[string]*float64),
	}
	for _, col := range c.columns {
		get, ok := numericColumns[col]
		if !ok {
			continue
		}
		if v := get(p); v != nil {
			f := *v
			row.Values[col] = &f
		} else {
			row.Values[col] = nil
		}
	}
	return row
}

// fill forward fills missing values per column, walking the rows in their current order.
func (c *Cleaner) fill(rows []Row) {
	for _, col := range c.columns {
		if _, ok := numericColumns[col]; !ok {
			continue
		}
		var last *float64
		for i := range rows {
			if v, ok := rows[i].Values[col]; ok && v != nil {
				last = v
				continue
			}
			if last != nil {
				f := *last
				rows[i].Values[col] = &f
			}
		}
	}
}

func (c *Cleaner) filter(rows []Row) []Row {
	recognized := make(map[string]struct{}, len(Pitches))
	for _, p := range Pitches {
		recognized[p] = struct{}{}
	}
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if _, ok := recognized[row.PitchName]; ok {
			out = append(out, row)
		}
	}
	return out
}

func (c *Cleaner) clamp(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.GameDate.Before(c.start) || row.GameDate.After(c.end) {
			continue
		}
		out = append(out, row)
	}
	return out
}
