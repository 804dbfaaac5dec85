package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a security-relevant action. The stream is internal
// telemetry; nothing in the request path depends on it.
type EventType string

const (
	EventLoginSuccess   EventType = "auth.login.success"
	EventLoginFailure   EventType = "auth.login.failure"
	EventTokenRefreshed EventType = "auth.token.refreshed"
	EventRefreshDenied  EventType = "auth.refresh.denied"
	EventLogout         EventType = "auth.logout"
	EventAdmission      EventType = "admin.admission"
	EventAdminBootstrap EventType = "admin.bootstrap"
)

// Event is one audit record published to Kafka.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ActorID   string    `json:"actor_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	IP        string    `json:"ip,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent builds an event with a fresh id and timestamp.
func NewEvent(eventType EventType) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		CreatedAt: time.Now().UTC(),
	}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes events for one actor to one partition so per-user
// history stays ordered. Anonymous events fall back to the event id.
func (e *Event) PartitionKey() string {
	if e.ActorID != "" {
		return e.ActorID
	}
	if e.Email != "" {
		return e.Email
	}
	return e.ID
}
