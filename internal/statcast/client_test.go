package statcast

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "game_date,pitcher,player_name,pitch_name,p_throws,type,zone,release_speed,release_pos_x,release_pos_z,release_spin_rate"

func TestClient_Pitches(t *testing.T) {
	var gotStart, gotEnd string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotStart = r.URL.Query().Get("game_date_gt")
		gotEnd = r.URL.Query().Get("game_date_lt")
		_, _ = w.Write([]byte(csvHeader + "\n" +
			"2022-04-01,607192,\"Cole, Gerrit\",4-Seam Fastball,R,S,5,97.8,-1.93,5.89,2450\n" +
			"2022-04-01,607192,\"Cole, Gerrit\",Slider,R,B,13,88.1,-2.01,5.74,\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	pitches, err := client.Pitches("2022-04-01", "2022-04-02")
	require.NoError(t, err)

	assert.Equal(t, "2022-04-01", gotStart)
	assert.Equal(t, "2022-04-02", gotEnd)
	require.Equal(t, 2, len(pitches))

	first := pitches[0]
	assert.Equal(t, "4-Seam Fastball", first.PitchName)
	assert.Equal(t, 607192, first.Pitcher)
	assert.Equal(t, "R", first.PThrows)
	assert.Equal(t, "S", first.Type)
	require.NotNil(t, first.ReleaseSpeed)
	assert.InDelta(t, 97.8, *first.ReleaseSpeed, 1e-9)
	assert.Equal(t, "2022-04-01", first.GameDate.Format(DateFormat))

	// empty cells stay nil
	assert.Nil(t, pitches[1].ReleaseSpinRate)
}

func TestClient_FeedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	_, err := client.Pitches("2022-04-01", "2022-04-02")
	assert.Error(t, err)
}

func TestParseCSV_UnknownColumnsIgnored(t *testing.T) {
	in := "game_date,pitch_name,release_speed,some_new_field\n" +
		"2022-04-01,Sinker,93.2,whatever\n"
	pitches, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, len(pitches))
	assert.Equal(t, "Sinker", pitches[0].PitchName)
	assert.Nil(t, pitches[0].ReleasePosX)
}

func TestParseCSV_BadDate(t *testing.T) {
	in := "game_date,pitch_name\nnot-a-date,Sinker\n"
	_, err := ParseCSV(strings.NewReader(in))
	assert.Error(t, err)
}
