package statcast

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// DefaultURL is the csv search export of the statcast feed.
const DefaultURL = "https://baseballsavant.mlb.com/statcast_search/csv"

// Client fetches raw pitch events from the feed for an inclusive date range.
type Client struct {
	base string
	rest *resty.Client
}

// NewClient creates a feed client against the given base url.
func NewClient(base string, timeout time.Duration) *Client {
	r := resty.New()
	if timeout > 0 {
		r.SetTimeout(timeout)
	} else {
		r.SetTimeout(2 * time.Minute)
	}
	return &Client{
		base: base,
		rest: r,
	}
}

// Pitches queries the feed for all pitch events in [start, end].
func (c *Client) Pitches(start, end string) ([]Pitch, error) {
	resp, err := c.rest.R().
		SetQueryParams(map[string]string{
			"all":          "true",
			"type":         "details",
			"game_date_gt": start,
			"game_date_lt": end,
		}).
		Get(c.base)
	if err != nil {
		return nil, fmt.Errorf("could not query feed for [%s, %s]: %w", start, end, err)
	}
	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("feed returned %d for [%s, %s]", resp.StatusCode(), start, end)
	}

	pitches, err := ParseCSV(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("start", start).
		Str("end", end).
		Int("pitches", len(pitches)).
		Msg("fetched from feed")
	return pitches, nil
}

// ParseCSV decodes the feed csv export into pitch events.
func ParseCSV(r io.Reader) ([]Pitch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	pitches := make([]Pitch, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read csv row: %w", err)
		}

		date, err := ParseDate(field(row, "game_date"))
		if err != nil {
			return nil, err
		}

		pitches = append(pitches, Pitch{
			GameDate:         date,
			Pitcher:          parseInt(field(row, "pitcher")),
			PlayerName:       field(row, "player_name"),
			PitchName:        field(row, "pitch_name"),
			PThrows:          field(row, "p_throws"),
			Type:             field(row, "type"),
			Zone:             parseFloat(field(row, "zone")),
			ReleaseSpeed:     parseFloat(field(row, "release_speed")),
			ReleasePosX:      parseFloat(field(row, "release_pos_x")),
			ReleasePosY:      parseFloat(field(row, "release_pos_y")),
			ReleasePosZ:      parseFloat(field(row, "release_pos_z")),
			PfxX:             parseFloat(field(row, "pfx_x")),
			PfxZ:             parseFloat(field(row, "pfx_z")),
			PlateX:           parseFloat(field(row, "plate_x")),
			PlateZ:           parseFloat(field(row, "plate_z")),
			VX0:              parseFloat(field(row, "vx0")),
			VY0:              parseFloat(field(row, "vy0")),
			VZ0:              parseFloat(field(row, "vz0")),
			AX:               parseFloat(field(row, "ax")),
			AY:               parseFloat(field(row, "ay")),
			AZ:               parseFloat(field(row, "az")),
			SzTop:            parseFloat(field(row, "sz_top")),
			SzBot:            parseFloat(field(row, "sz_bot")),
			ReleaseSpinRate:  parseFloat(field(row, "release_spin_rate")),
			ReleaseExtension: parseFloat(field(row, "release_extension")),
			SpinAxis:         parseFloat(field(row, "spin_axis")),
		})
	}
	return pitches, nil
}
