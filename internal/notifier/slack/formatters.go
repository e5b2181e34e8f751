package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/padelnueve/tracker/internal/tournament"
	"github.com/slack-go/slack"
)

// formatTournamentStarted creates the Slack message for a new tournament using Block Kit.
func (s *Notifier) formatTournamentStarted(state *tournament.State) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🎾 Tournament started! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Time
	var timeStr string
	if t, err := time.Parse(time.RFC3339, state.StartTime); err == nil {
		timeStr = t.Format("Monday 02 Jan, 15:04")
	} else {
		timeStr = state.StartTime
	}
	detailsText := fmt.Sprintf("Format: 3 pairs, 9 matches\nStarted: %s", timeStr)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Pairs
	var pairNames []string
	for _, pair := range state.Pairs {
		pairNames = append(pairNames, fmt.Sprintf("• %s", pair.Name))
	}
	if len(pairNames) > 0 {
		pairsText := "Pairs:\n" + strings.Join(pairNames, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", pairsText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatFinalStandings creates the Slack message for an archived tournament using Block Kit.
func (s *Notifier) formatFinalStandings(entry *tournament.HistoryEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 Tournament finished! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Winner
	if entry.Winner.Name != "" {
		winnerText := slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("Champions: *%s*", entry.Winner.Name), false, false)
		blocks = append(blocks, slack.NewSectionBlock(winnerText, nil, nil))
	}

	// Final board
	var lines []string
	for i, stat := range entry.Ranking {
		medal := medalForPosition(i)
		lines = append(lines, fmt.Sprintf("%s %s — %d games for, %d against, %d matches won",
			medal, stat.Name, stat.PG, stat.PP, stat.MatchesWon))
	}
	if len(lines) > 0 {
		boardText := slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false)
		blocks = append(blocks, slack.NewSectionBlock(boardText, nil, nil))
	}

	// Context - played match count.
	played := 0
	for _, m := range entry.Matches {
		if m.Played {
			played++
		}
	}
	contextText := slack.NewTextBlockObject("plain_text",
		fmt.Sprintf("%d of %d matches played", played, len(entry.Matches)), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

func medalForPosition(i int) string {
	switch i {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	}
	return fmt.Sprintf("%d.", i+1)
}
