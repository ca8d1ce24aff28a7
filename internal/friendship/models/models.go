// Package models holds the relationship lifecycle state machine. Decide is pure:
// it reads a snapshot of the user's registration and names the effects the
// manager must apply, without touching any store or client.
package models

import (
	"rankbridge/internal/upstream"
	id "rankbridge/pkg/domain"
)

// State is the lifecycle position of a single user's connection with the bot.
type State string

const (
	StateUnknown State = "unknown"
	// StatePendingIncoming: a friend request arrived and is being decided.
	StatePendingIncoming State = "pending_incoming"
	StateActive          State = "active"
	StateRemoved         State = "removed"
)

// Effect is a side effect a decision requires. Effects combine as a bit set.
type Effect uint8

const (
	EffectMarkActive Effect = 1 << iota
	EffectDeleteRecord
	EffectAccept
	EffectRemove
	EffectSyncRank
)

var effectNames = []struct {
	effect Effect
	name   string
}{
	{EffectMarkActive, "mark_active"},
	{EffectDeleteRecord, "delete_record"},
	{EffectAccept, "accept"},
	{EffectRemove, "remove"},
	{EffectSyncRank, "sync_rank"},
}

// Names lists the effects in application order.
func (e Effect) Names() []string {
	var names []string
	for _, en := range effectNames {
		if e&en.effect != 0 {
			names = append(names, en.name)
		}
	}
	return names
}

// Decision reasons, used as metric labels and audit reasons.
const (
	ReasonRegistered     = "registered"
	ReasonAlreadyActive  = "already_active"
	ReasonNotRegistered  = "not_registered"
	ReasonCleared        = "relationship_cleared"
	ReasonClearedUnknown = "relationship_cleared_unregistered"
	ReasonIgnoredStatus  = "ignored_status"
)

// Decision is the outcome of one relationship event.
type Decision struct {
	Next    State
	Effects Effect
	Reason  string
}

// Has reports whether the decision requires effect e.
func (d Decision) Has(e Effect) bool {
	return d.Effects&e != 0
}

// NeedsRegistration reports whether Decide branches on the registration
// snapshot for status. Callers skip the store read otherwise.
func NeedsRegistration(status upstream.RelationshipStatus) bool {
	return status == upstream.StatusRequestRecipient || status == upstream.StatusNone
}

// Decide computes the transition for (current, status) given the user's
// registration.
//
// A request from an already active user is accepted again and resynced. The
// upstream only reports RequestRecipient when no friendship exists, so the
// earlier one was lost. Matching only inactive registrations here would remove
// a registered user who re-adds the bot; that path is deliberately not taken.
func Decide(current State, status upstream.RelationshipStatus, reg id.Registration) Decision {
	switch status {
	case upstream.StatusRequestRecipient:
		switch {
		case !reg.Registered:
			return Decision{Next: StateRemoved, Effects: EffectRemove, Reason: ReasonNotRegistered}
		case reg.Active:
			return Decision{Next: StateActive, Effects: EffectAccept | EffectSyncRank, Reason: ReasonAlreadyActive}
		default:
			return Decision{Next: StateActive, Effects: EffectMarkActive | EffectAccept | EffectSyncRank, Reason: ReasonRegistered}
		}
	case upstream.StatusNone:
		if reg.Registered {
			return Decision{Next: StateRemoved, Effects: EffectDeleteRecord | EffectRemove, Reason: ReasonCleared}
		}
		return Decision{Next: StateRemoved, Reason: ReasonClearedUnknown}
	default:
		return Decision{Next: current, Reason: ReasonIgnoredStatus}
	}
}
