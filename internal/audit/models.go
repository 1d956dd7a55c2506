package audit

import "time"

// Event is emitted from the services to capture registry changes. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject"`
	RequestID string    `json:"request_id,omitempty"`
}

// Action names a registry change.
type Action string

const (
	ActionCountryAdded  Action = "country_added"
	ActionPersonAdded   Action = "person_added"
	ActionPersonUpdated Action = "person_updated"
	ActionPersonDeleted Action = "person_deleted"
)
