package domain

import (
	"time"

	"github.com/google/uuid"

	leaddomain "quotedesk_backend/internal/leads/domain"
)

// Session is one in-progress intake conversation. Answers accumulate under
// the step keys of the flow; StepIndex points at the next unanswered step.
type Session struct {
	ID          uuid.UUID
	FlowID      string
	StepIndex   int
	Answers     map[string]string
	Attachments []leaddomain.Attachment
	Completed   bool
	LeadID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession opens an empty session for the given flow.
func NewSession(flowID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		FlowID:    flowID,
		Answers:   make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
