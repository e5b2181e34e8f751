package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/padelnueve/tracker/internal/metrics"
	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records PostMessageContext calls.
type fakeAPI struct {
	calls int
	err   error
}

func (f *fakeAPI) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	f.calls++
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "123.456", nil
}

func testState(t *testing.T) *tournament.State {
	t.Helper()
	pairs := []tournament.Pair{
		tournament.NewPair(tournament.Player{ID: "1", Name: "Ana"}, tournament.Player{ID: "2", Name: "Bea"}),
		tournament.NewPair(tournament.Player{ID: "3", Name: "Carla"}, tournament.Player{ID: "4", Name: "Diego"}),
		tournament.NewPair(tournament.Player{ID: "5", Name: "Eva"}, tournament.Player{ID: "6", Name: "Fran"}),
	}
	state, err := tournament.NewState(pairs)
	require.NoError(t, err)
	return state
}

func TestSendTournamentStarted(t *testing.T) {
	api := &fakeAPI{}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendTournamentStarted(testState(t), false)
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, 1, m.SlackNotifSent())
}

func TestSendDryRunSkipsAPI(t *testing.T) {
	api := &fakeAPI{}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendTournamentStarted(testState(t), true)
	require.NoError(t, err)
	assert.Equal(t, 0, api.calls, "dry run must not hit the Slack API")
	assert.Equal(t, 0, m.SlackNotifSent())
}

func TestSendFailureIncrementsFailedMetric(t *testing.T) {
	api := &fakeAPI{err: errors.New("channel_not_found")}
	m := metrics.NewMock()
	n := NewNotifierWithAPI(api, "C123", m)

	err := n.SendTournamentStarted(testState(t), false)
	require.Error(t, err)
	assert.Equal(t, 1, m.SlackNotifFailed())
}

func TestFormatTournamentStartedListsPairs(t *testing.T) {
	n := NewNotifierWithAPI(&fakeAPI{}, "C123", metrics.NewMock())
	msg := n.formatTournamentStarted(testState(t))

	require.NotEmpty(t, msg.Blocks.BlockSet)
	var all string
	for _, block := range msg.Blocks.BlockSet {
		if section, ok := block.(*slack.SectionBlock); ok && section.Text != nil {
			all += section.Text.Text + "\n"
		}
	}
	assert.Contains(t, all, "Ana & Bea")
	assert.Contains(t, all, "Carla & Diego")
	assert.Contains(t, all, "Eva & Fran")
}

func TestFormatFinalStandingsShowsWinnerAndBoard(t *testing.T) {
	n := NewNotifierWithAPI(&fakeAPI{}, "C123", metrics.NewMock())
	state := testState(t)
	entry := &tournament.HistoryEntry{
		ID:   "h1",
		Date: state.StartTime,
		Winner: tournament.RankingStat{
			ID: state.Pairs[0].ID, Name: state.Pairs[0].Name, PG: 9, MatchesWon: 3,
		},
		Ranking: []tournament.RankingStat{
			{Name: state.Pairs[0].Name, PG: 9, PP: 3, MatchesWon: 3},
			{Name: state.Pairs[1].Name, PG: 5, PP: 6, MatchesWon: 1},
			{Name: state.Pairs[2].Name, PG: 2, PP: 7, MatchesWon: 0},
		},
		Matches: state.Matches,
		Pairs:   state.Pairs,
	}

	msg := n.formatFinalStandings(entry)
	require.NotEmpty(t, msg.Blocks.BlockSet)

	var all string
	for _, block := range msg.Blocks.BlockSet {
		if section, ok := block.(*slack.SectionBlock); ok && section.Text != nil {
			all += section.Text.Text + "\n"
		}
	}
	assert.Contains(t, all, "Ana & Bea")
	assert.Contains(t, all, "🥇")
	assert.Contains(t, all, "🥉")
}
