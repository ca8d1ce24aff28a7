package models

import (
	"time"

	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
)

// Identity links a user's platform account to their voice identity. A
// registered identity becomes active once the user befriends the bot.
type Identity struct {
	GlobalID      id.GlobalID
	VoiceIdentity id.VoiceIdentity
	Active        bool
	CreatedAt     time.Time
	ActivatedAt   *time.Time
}

// NewIdentity builds an inactive identity.
func NewIdentity(globalID id.GlobalID, voice id.VoiceIdentity, now time.Time) (*Identity, error) {
	if globalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "global id is required")
	}
	if voice.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "voice identity is required")
	}
	return &Identity{
		GlobalID:      globalID,
		VoiceIdentity: voice,
		CreatedAt:     now,
	}, nil
}

// Activate marks the identity active. Activating twice keeps the first timestamp.
func (i *Identity) Activate(now time.Time) {
	if i.Active {
		return
	}
	i.Active = true
	i.ActivatedAt = &now
}

// Registration returns the snapshot relationship handling reads.
func (i *Identity) Registration() id.Registration {
	if i == nil {
		return id.Registration{}
	}
	return id.Registration{Registered: true, Active: i.Active}
}
