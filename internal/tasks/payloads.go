package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants keep the queue producer and consumer in sync.
const (
	TypeApplicationSubmitted = "application:submitted"
)

// ApplicationSubmittedPayload carries the minimum needed to notify about a
// freshly submitted application.
type ApplicationSubmittedPayload struct {
	ApplicationID uint   `json:"application_id"`
	UserID        uint   `json:"user_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewApplicationSubmittedTask builds a submission-received notification task.
func NewApplicationSubmittedTask(applicationID, userID uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ApplicationSubmittedPayload{
		ApplicationID: applicationID,
		UserID:        userID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeApplicationSubmitted, payload), nil
}
