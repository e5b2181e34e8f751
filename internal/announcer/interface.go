package announcer

import "context"

// Announcer turns tournament results into natural-language output: a short
// written summary of the standings and a spoken winner announcement.
type Announcer interface {
	// Summarize returns a short commentary for the given standings text.
	Summarize(ctx context.Context, standings string) (string, error)
	// AnnounceWinner synthesizes a spoken announcement for the winning pair
	// and returns the raw audio bytes (PCM as produced by the model).
	AnnounceWinner(ctx context.Context, winnerName string) ([]byte, error)
}
