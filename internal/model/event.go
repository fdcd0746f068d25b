package model

import "time"

type EventType string

const (
	EventUserSignedUp      EventType = "user.signed_up"
	EventBlogCreated       EventType = "blog.created"
	EventBlogUpdated       EventType = "blog.updated"
	EventBlogStatusChanged EventType = "blog.status_changed"
	EventBlogDeleted       EventType = "blog.deleted"
)

// Event describes a committed change, published to the broker when event
// publishing is enabled.
type Event struct {
	Type       EventType  `json:"type"`
	UserID     uint       `json:"user_id"`
	BlogID     uint       `json:"blog_id,omitempty"`
	Status     BlogStatus `json:"status,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
