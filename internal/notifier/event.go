package notifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is the application-submitted message published by the API service.
type Event struct {
	ApplicationID  string    `json:"application_id"`
	JobID          string    `json:"job_id"`
	JobSeekerEmail string    `json:"job_seeker_email"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// decodeEvent parses and validates an event body. Any failure is
// ErrBadEvent: the message can never succeed and must not be requeued.
func decodeEvent(body []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrBadEvent, err)
	}

	if _, err := uuid.Parse(event.ApplicationID); err != nil {
		return Event{}, fmt.Errorf("%w: invalid application_id %q", ErrBadEvent, event.ApplicationID)
	}

	return event, nil
}
