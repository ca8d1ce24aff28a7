package audit

import (
	"context"
	"time"

	id "rankbridge/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so stores can
// apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers changes to persisted identity state: registration,
	// activation and deletion of a user's record.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers routine activity useful for debugging: connection
	// decisions and rank synchronization.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	GlobalID  id.GlobalID
	// Subject is the voice identity when one is known.
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	EventIdentityRegistered AuditEvent = "identity_registered"
	EventIdentityActivated  AuditEvent = "identity_activated"
	EventIdentityRemoved    AuditEvent = "identity_removed"
	EventConnectionAccepted AuditEvent = "connection_accepted"
	EventConnectionRejected AuditEvent = "connection_rejected"
	EventRankSynced         AuditEvent = "rank_synced"
	EventRankSyncFailed     AuditEvent = "rank_sync_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventIdentityRegistered: CategoryCompliance,
	EventIdentityActivated:  CategoryCompliance,
	EventIdentityRemoved:    CategoryCompliance,

	EventConnectionAccepted: CategoryOperations,
	EventConnectionRejected: CategoryOperations,
	EventRankSynced:         CategoryOperations,
	EventRankSyncFailed:     CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByGlobalID(ctx context.Context, globalID id.GlobalID) ([]Event, error)
}
