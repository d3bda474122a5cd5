package statcast

import (
	"fmt"
	"strconv"
	"time"
)

// DateFormat is the date layout the feed is queried with.
const DateFormat = "2006-01-02"

// Pitch is one pitch event as reported by the feed.
// Optional measurements are pointers, missing values stay nil until the cleaning step.
type Pitch struct {
	GameDate   time.Time `json:"game_date"`
	Pitcher    int       `json:"pitcher"`
	PlayerName string    `json:"player_name"`
	PitchName  string    `json:"pitch_name"`
	PThrows    string    `json:"p_throws"`
	Type       string    `json:"type"`

	Zone             *float64 `json:"zone"`
	ReleaseSpeed     *float64 `json:"release_speed"`
	ReleasePosX      *float64 `json:"release_pos_x"`
	ReleasePosY      *float64 `json:"release_pos_y"`
	ReleasePosZ      *float64 `json:"release_pos_z"`
	PfxX             *float64 `json:"pfx_x"`
	PfxZ             *float64 `json:"pfx_z"`
	PlateX           *float64 `json:"plate_x"`
	PlateZ           *float64 `json:"plate_z"`
	VX0              *float64 `json:"vx0"`
	VY0              *float64 `json:"vy0"`
	VZ0              *float64 `json:"vz0"`
	AX               *float64 `json:"ax"`
	AY               *float64 `json:"ay"`
	AZ               *float64 `json:"az"`
	SzTop            *float64 `json:"sz_top"`
	SzBot            *float64 `json:"sz_bot"`
	ReleaseSpinRate  *float64 `json:"release_spin_rate"`
	ReleaseExtension *float64 `json:"release_extension"`
	SpinAxis         *float64 `json:"spin_axis"`
}

// ParseDate parses a feed date string, ignoring any trailing timestamp.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateFormat) {
		s = s[:len(DateFormat)]
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse date '%s': %w", s, err)
	}
	return t, nil
}

// Range returns the min and max game date over the given pitches.
func Range(pitches []Pitch) (time.Time, time.Time) {
	var min, max time.Time
	for _, p := range pitches {
		if min.IsZero() || p.GameDate.Before(min) {
			min = p.GameDate
		}
		if max.IsZero() || p.GameDate.After(max) {
			max = p.GameDate
		}
	}
	return min, max
}

func parseFloat(s string) *float64 {
	if s == "" || s == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
