package worker

// NotifyMessage is the uniform WebSocket message protocol, forwarded to the
// client through Redis Pub/Sub. Field names must stay in sync with the
// frontend parser.
type NotifyMessage struct {
	Type          string `json:"type"`
	Status        string `json:"status"`
	ApplicationID uint   `json:"application_id"`
	University    string `json:"university,omitempty"`
	Program       string `json:"program,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message,omitempty"`
}

// Notification types pushed to students.
const (
	NotifySubmissionReceived = "application_submitted"
	NotifyStatusChanged      = "application_status_changed"
)
