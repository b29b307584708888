package members

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"aeroclub/pkg/client"
	"aeroclub/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *client.MembersClient {
	t.Helper()

	serverURL := os.Getenv("TEST_MEMBERS_URL")
	if serverURL == "" {
		serverURL = os.Getenv("TEST_SERVER_URL")
	}
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration tests")
	}

	c := client.NewMembersClient(serverURL)
	require.NoError(t, c.WaitForHealthy(30*time.Second))
	return c.AsMember("it-" + uuid.NewString())
}

func TestAircraftRegistrationIsUnique(t *testing.T) {
	c := setup(t)
	registration := "IT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	body := map[string]any{"registration": strings.ToLower(registration), "model": "Piper PA-28", "active": true}

	resp, err := c.CreateAircraft(body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())
	aircraft, err := c.DecodeAircraft(resp)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = c.DeleteAircraft(aircraft.ID) })
	assert.Equal(t, registration, aircraft.Registration)

	resp, err = c.CreateAircraft(body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, resp.String())
}

func TestLogbookTotals(t *testing.T) {
	c := setup(t)
	offBlock := time.Now().UTC().Truncate(time.Hour).Add(-48 * time.Hour)

	for i := 0; i < 2; i++ {
		start := offBlock.Add(time.Duration(i) * 3 * time.Hour)
		resp, err := c.CreateLogEntry(map[string]any{
			"aircraft":        "OH-ITG",
			"date":            start.Format(time.RFC3339),
			"pic":             "Integration Pilot",
			"people_on_board": 1,
			"departure":       "EFHK",
			"arrival":         "EFTU",
			"off_block":       start.Format(time.RFC3339),
			"takeoff":         start.Add(10 * time.Minute).Format(time.RFC3339),
			"landing":         start.Add(55 * time.Minute).Format(time.RFC3339),
			"on_block":        start.Add(75 * time.Minute).Format(time.RFC3339),
			"landings":        1,
			"flight_rules":    "VFR",
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.String())
	}

	resp, err := c.Totals()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.String())

	totals, err := client.DecodeData[[]model.FlightTotals](resp)
	require.NoError(t, err)
	require.Len(t, *totals, 1)
	assert.Equal(t, int64(150), (*totals)[0].BlockMinutes)
	assert.Equal(t, "2h 30m", (*totals)[0].Formatted)
}

func TestProfile(t *testing.T) {
	c := setup(t)

	resp, err := c.GetProfile()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.String())
	profile, err := c.DecodeProfile(resp)
	require.NoError(t, err)
	assert.Equal(t, model.RoleMember, profile.Role)

	resp, err = c.UpdateProfile(map[string]any{"phone": "+46 70 123 45 67", "nf": true})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.String())

	resp, err = c.GetProfile()
	require.NoError(t, err)
	profile, err = c.DecodeProfile(resp)
	require.NoError(t, err)
	assert.Equal(t, "+46701234567", profile.Phone)
	assert.Equal(t, "Sweden", profile.Country)
	assert.True(t, profile.Newsletter)
}
