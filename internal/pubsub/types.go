package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	// EventTournamentFinished is published after a tournament was archived;
	// the push consumer fans it out to Slack and the announcer.
	EventTournamentFinished EventType = "tournament-finished"
)

// TournamentFinishedPayload is the message body for EventTournamentFinished.
// Consumers load the full entry from the store by its archive id.
type TournamentFinishedPayload struct {
	EntryID string `msgpack:"entry_id"`
	Winner  string `msgpack:"winner"`
}
