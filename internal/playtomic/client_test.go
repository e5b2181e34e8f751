package playtomic

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSpecificMatch(t *testing.T) {
	// Sample JSON response from the Playtomic API
	mockJSONResponse := `{
		"match_id": "match-abc",
		"owner_id": "user-123",
		"start_date": "2026-07-09T18:00:00",
		"end_date": "2026-07-09T19:30:00",
		"teams": [{
			"team_id": "1",
			"players": [
				{ "user_id": "user-123", "name": "Player A", "level_value": 2.5 },
				{ "user_id": "user-456", "name": "Player B" }
			]
		}, {
			"team_id": "2",
			"players": [
				{ "user_id": "user-789", "name": "Player C", "level_value": 3.1 }
			]
		}]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	c := APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(), // Dummy client, not used in this specific test
		BaseURL:    server.URL,
	}

	match, err := c.GetSpecificMatch("match-abc")
	require.NoError(t, err)

	assert.Equal(t, "match-abc", match.MatchID)
	require.Len(t, match.Teams, 2)
	require.Len(t, match.Teams[0].Players, 2)
	assert.Equal(t, "Player A", match.Teams[0].Players[0].Name)
	assert.Equal(t, 2.5, match.Teams[0].Players[0].Level)
	assert.Equal(t, float64(0), match.Teams[0].Players[1].Level, "missing level defaults to zero")
	assert.Equal(t, "Player C", match.Teams[1].Players[0].Name)
	assert.NotZero(t, match.Start)
}

func TestGetSpecificMatchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(),
		BaseURL:    server.URL,
	}

	_, err := c.GetSpecificMatch("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-OK HTTP status")
}
