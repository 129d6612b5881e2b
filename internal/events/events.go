package events

import "context"

// Event types published on the content channel
const (
	EventContentCreated  = "content_created"
	EventContentUpdated  = "content_updated"
	EventContentDeleted  = "content_deleted"
	EventContentRestored = "content_restored"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, channel string, handler func(Event)) error
}
