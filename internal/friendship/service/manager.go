// Package service applies relationship decisions: it reads registration state,
// commits the decision to the identity store and the upstream friend list, and
// then pushes the user's rank to the voice platform.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"rankbridge/internal/friendship/metrics"
	"rankbridge/internal/friendship/models"
	"rankbridge/internal/friendship/ports"
	"rankbridge/internal/upstream"
	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
	"rankbridge/pkg/platform/audit"
	"rankbridge/pkg/platform/sentinel"
	"rankbridge/pkg/requestcontext"
)

// Rank sync outcomes.
const (
	syncOutcomeSynced     = "synced"
	syncOutcomeNoVoice    = "no_voice_identity"
	syncOutcomeLookupFail = "lookup_failed"
	syncOutcomePublishErr = "publish_failed"
)

// Manager drives the relationship lifecycle of every user.
type Manager struct {
	identities  ports.IdentityStore
	connections ports.ConnectionPort
	ranks       ports.RankPort
	publisher   ports.RankPublisher
	auditor     ports.AuditPort
	logger      *slog.Logger
	metrics     *metrics.Metrics

	locks *keyedLock

	mu     sync.RWMutex
	states map[id.GlobalID]models.State
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithAuditPublisher(auditor ports.AuditPort) Option {
	return func(m *Manager) {
		m.auditor = auditor
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// New constructs a Manager.
func New(identities ports.IdentityStore, connections ports.ConnectionPort, ranks ports.RankPort, publisher ports.RankPublisher, opts ...Option) (*Manager, error) {
	if identities == nil {
		return nil, errors.New("identity store is required")
	}
	if connections == nil {
		return nil, errors.New("connection port is required")
	}
	if ranks == nil {
		return nil, errors.New("rank port is required")
	}
	if publisher == nil {
		return nil, errors.New("rank publisher is required")
	}
	m := &Manager{
		identities:  identities,
		connections: connections,
		ranks:       ranks,
		publisher:   publisher,
		logger:      slog.Default(),
		locks:       newKeyedLock(),
		states:      make(map[id.GlobalID]models.State),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// State returns the lifecycle state of globalID. Only live edges
// (PendingIncoming, Active) are retained; a removed or never-seen id reads as
// Unknown.
func (m *Manager) State(globalID id.GlobalID) models.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.states[globalID]; ok {
		return s
	}
	return models.StateUnknown
}

func (m *Manager) setState(globalID id.GlobalID, s models.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch s {
	case models.StatePendingIncoming, models.StateActive:
		m.states[globalID] = s
	default:
		delete(m.states, globalID)
	}
}

func (m *Manager) tracked() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}

// HandleRelationship applies the decision for one relationship event. Store
// and upstream failures are returned; rank sync failures are only logged,
// since the connection decision is already committed by then.
func (m *Manager) HandleRelationship(ctx context.Context, event upstream.RelationshipEvent) error {
	if event.GlobalID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "relationship event without global id")
	}

	decision, err := m.apply(ctx, event)
	if err != nil {
		m.metrics.IncFailure()
		return err
	}
	if decision.Has(models.EffectSyncRank) {
		m.syncRank(ctx, event.GlobalID)
	}
	return nil
}

func (m *Manager) apply(ctx context.Context, event upstream.RelationshipEvent) (models.Decision, error) {
	unlock := m.locks.lock(event.GlobalID)
	defer unlock()

	start := time.Now()
	defer func() { m.metrics.ObserveHandle(time.Since(start)) }()

	gid := event.GlobalID
	current := m.State(gid)

	var reg id.Registration
	if models.NeedsRegistration(event.Status) {
		if event.Status == upstream.StatusRequestRecipient {
			m.setState(gid, models.StatePendingIncoming)
		}
		var err error
		reg, err = m.identities.Registration(ctx, gid)
		if err != nil {
			return models.Decision{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read registration")
		}
	}

	decision := models.Decide(current, event.Status, reg)
	m.metrics.IncDecision(decision.Reason)
	m.logger.InfoContext(ctx, "relationship decision",
		"global_id", gid.String(),
		"status", string(event.Status),
		"from", string(current),
		"to", string(decision.Next),
		"reason", decision.Reason,
		"effects", decision.Effects.Names(),
	)

	if decision.Has(models.EffectMarkActive) {
		if err := m.identities.MarkActive(ctx, gid); err != nil {
			return decision, dErrors.Wrap(err, dErrors.CodeInternal, "failed to activate identity")
		}
		m.emit(ctx, audit.EventIdentityActivated, gid, decision)
	}
	if decision.Has(models.EffectDeleteRecord) {
		if err := m.identities.DeleteIdentity(ctx, gid); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return decision, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete identity")
		}
		m.emit(ctx, audit.EventIdentityRemoved, gid, decision)
	}
	m.setState(gid, decision.Next)

	if decision.Has(models.EffectAccept) {
		if err := m.connections.AddConnection(ctx, gid); err != nil {
			return decision, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to accept connection")
		}
		m.emit(ctx, audit.EventConnectionAccepted, gid, decision)
	}
	if decision.Has(models.EffectRemove) {
		if err := m.connections.RemoveConnection(ctx, gid); err != nil {
			return decision, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to remove connection")
		}
		if !decision.Has(models.EffectDeleteRecord) {
			m.emit(ctx, audit.EventConnectionRejected, gid, decision)
		}
	}
	return decision, nil
}

// syncRank pushes the user's current rank to the voice platform.
func (m *Manager) syncRank(ctx context.Context, gid id.GlobalID) {
	voice, err := m.identities.VoiceIdentityOf(ctx, gid)
	if err != nil {
		outcome := syncOutcomeLookupFail
		if errors.Is(err, sentinel.ErrNotFound) {
			outcome = syncOutcomeNoVoice
		}
		m.syncFailed(ctx, gid, "", outcome, err)
		return
	}

	rank, err := m.ranks.RequestRank(ctx, gid)
	if err != nil {
		m.syncFailed(ctx, gid, voice, syncOutcomeLookupFail, err)
		return
	}

	if err := m.publisher.PublishRankUpdate(ctx, voice, rank); err != nil {
		m.syncFailed(ctx, gid, voice, syncOutcomePublishErr, err)
		return
	}

	m.metrics.IncRankSync(syncOutcomeSynced)
	m.logger.InfoContext(ctx, "rank synced",
		"global_id", gid.String(),
		"voice_identity", voice.String(),
		"rank", rank.String(),
	)
	m.emitEvent(ctx, audit.Event{
		Action:   string(audit.EventRankSynced),
		GlobalID: gid,
		Subject:  voice.String(),
		Decision: rank.String(),
	})
}

func (m *Manager) syncFailed(ctx context.Context, gid id.GlobalID, voice id.VoiceIdentity, outcome string, err error) {
	m.metrics.IncRankSync(outcome)
	m.logger.WarnContext(ctx, "rank sync failed",
		"global_id", gid.String(),
		"voice_identity", voice.String(),
		"outcome", outcome,
		"error", err,
	)
	m.emitEvent(ctx, audit.Event{
		Action:   string(audit.EventRankSyncFailed),
		GlobalID: gid,
		Subject:  voice.String(),
		Reason:   outcome,
	})
}

func (m *Manager) emit(ctx context.Context, event audit.AuditEvent, gid id.GlobalID, decision models.Decision) {
	m.emitEvent(ctx, audit.Event{
		Action:   string(event),
		GlobalID: gid,
		Decision: string(decision.Next),
		Reason:   decision.Reason,
	})
}

func (m *Manager) emitEvent(ctx context.Context, event audit.Event) {
	if m.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := m.auditor.Emit(ctx, event); err != nil {
		m.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"global_id", event.GlobalID.String(),
			"error", err,
		)
	}
}
