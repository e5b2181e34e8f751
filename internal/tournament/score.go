package tournament

import "errors"

var (
	// ErrMatchIndex is returned for a score update outside the schedule.
	ErrMatchIndex = errors.New("match index out of range")
	// ErrSide is returned when the score targets neither side 1 nor side 2.
	ErrSide = errors.New("side must be 1 or 2")
)

// ApplyScore sets one side's score on the match at matchIndex and recomputes
// the derived played flag. Re-applying the same score is a no-op rewrite; no
// edit history is kept, the last write wins.
func ApplyScore(state *State, matchIndex int, side Side, score int) error {
	if state == nil || matchIndex < 0 || matchIndex >= len(state.Matches) {
		return ErrMatchIndex
	}

	m := &state.Matches[matchIndex]
	s := score
	switch side {
	case Side1:
		m.Score1 = &s
	case Side2:
		m.Score2 = &s
	default:
		return ErrSide
	}

	m.Played = scoredAndDecided(m.Score1, m.Score2)
	return nil
}

// scoredAndDecided reports whether a scoreline counts toward statistics: both
// scores present and not equal. Any equal pair (0-0, 3-3, 1-1, ...) is an
// invalid scoreline and keeps the match out of the stats until corrected.
func scoredAndDecided(s1, s2 *int) bool {
	return s1 != nil && s2 != nil && *s1 != *s2
}
