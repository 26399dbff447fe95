package events

import "context"

// Event types
const (
	EventCampaignDecided     = "campaign_decided"
	EventCampaignDeleted     = "campaign_deleted"
	EventNotificationCreated = "notification_created"
)

// Streams
const (
	StreamCampaign     = "events:campaign"
	StreamNotification = "events:notification"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
