package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ClaimSubmitted = "claim.submitted"
	ClaimDecided   = "claim.decided"
)

func NewClaimSubmitted(docID string, userID int64, usdEquivalent float64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      ClaimSubmitted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"doc_id":         docID,
			"user_id":        userID,
			"usd_equivalent": usdEquivalent,
		},
	}
}

func NewClaimDecided(docID, status string, approverID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      ClaimDecided,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"doc_id":      docID,
			"status":      status,
			"approver_id": approverID,
		},
	}
}
