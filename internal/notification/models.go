package notification

import "context"

// Problem is one entry of the deduplicated active-problem feed.
type Problem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Floor       string `json:"floor"`
	ToiletType  string `json:"toiletType"`
	Timestamp   string `json:"timestamp"`
	Solved      bool   `json:"solved"`
}

// Notification is one undeduplicated entry of the notification list.
type Notification struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Floor       string `json:"floor"`
	ToiletType  string `json:"toiletType"`
	Timestamp   string `json:"timestamp"`
	Read        bool   `json:"read"`
}

// MarkReadRequest is the body of POST /mark-notifications-read.
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

// ActionMessageRequest is the body of POST /send-action-message.
type ActionMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// Notifier delivers a text message to the maintenance contact and returns the provider's message id.
type Notifier interface {
	Channel() string
	Send(ctx context.Context, text string) (string, error)
}
