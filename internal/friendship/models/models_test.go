package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rankbridge/internal/upstream"
	id "rankbridge/pkg/domain"
)

func TestDecide(t *testing.T) {
	registeredInactive := id.Registration{Registered: true}
	registeredActive := id.Registration{Registered: true, Active: true}
	unregistered := id.Registration{}

	tests := []struct {
		name    string
		current State
		status  upstream.RelationshipStatus
		reg     id.Registration
		want    Decision
	}{
		{
			name:    "request from registered inactive user is accepted and activated",
			current: StateUnknown,
			status:  upstream.StatusRequestRecipient,
			reg:     registeredInactive,
			want:    Decision{Next: StateActive, Effects: EffectMarkActive | EffectAccept | EffectSyncRank, Reason: ReasonRegistered},
		},
		{
			name:    "duplicate request from active user re-accepts without re-activating",
			current: StateActive,
			status:  upstream.StatusRequestRecipient,
			reg:     registeredActive,
			want:    Decision{Next: StateActive, Effects: EffectAccept | EffectSyncRank, Reason: ReasonAlreadyActive},
		},
		{
			name:    "request from unregistered user is removed",
			current: StateUnknown,
			status:  upstream.StatusRequestRecipient,
			reg:     unregistered,
			want:    Decision{Next: StateRemoved, Effects: EffectRemove, Reason: ReasonNotRegistered},
		},
		{
			name:    "cleared relationship of registered user deletes the record",
			current: StateActive,
			status:  upstream.StatusNone,
			reg:     registeredActive,
			want:    Decision{Next: StateRemoved, Effects: EffectDeleteRecord | EffectRemove, Reason: ReasonCleared},
		},
		{
			name:    "cleared relationship of unregistered user has no effects",
			current: StateUnknown,
			status:  upstream.StatusNone,
			reg:     unregistered,
			want:    Decision{Next: StateRemoved, Reason: ReasonClearedUnknown},
		},
		{
			name:    "friend status leaves state unchanged",
			current: StateActive,
			status:  upstream.StatusActive,
			reg:     registeredActive,
			want:    Decision{Next: StateActive, Reason: ReasonIgnoredStatus},
		},
		{
			name:    "other status leaves state unchanged",
			current: StateRemoved,
			status:  upstream.StatusOther,
			reg:     unregistered,
			want:    Decision{Next: StateRemoved, Reason: ReasonIgnoredStatus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.current, tt.status, tt.reg))
		})
	}
}

func TestNeedsRegistration(t *testing.T) {
	assert.True(t, NeedsRegistration(upstream.StatusRequestRecipient))
	assert.True(t, NeedsRegistration(upstream.StatusNone))
	assert.False(t, NeedsRegistration(upstream.StatusActive))
	assert.False(t, NeedsRegistration(upstream.StatusOther))
}

func TestEffectNames(t *testing.T) {
	d := Decision{Effects: EffectMarkActive | EffectAccept | EffectSyncRank}
	assert.Equal(t, []string{"mark_active", "accept", "sync_rank"}, d.Effects.Names())
	assert.True(t, d.Has(EffectAccept))
	assert.False(t, d.Has(EffectRemove))
	assert.Nil(t, Effect(0).Names())
}
