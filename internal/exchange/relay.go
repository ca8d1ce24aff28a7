// Package exchange answers rank queries from the voice-platform service over a
// shared message bus and publishes rank updates to it.
package exchange

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rankbridge/internal/exchange/bus"
	"rankbridge/internal/exchange/metrics"
	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
	"rankbridge/pkg/platform/sentinel"
)

// DefaultChannel is the bus channel shared with the voice-platform service.
const DefaultChannel = "exchange"

const (
	outcomeReplied  = "replied"
	outcomeIgnored  = "ignored"
	outcomeUnmapped = "unmapped"
	outcomeFailed   = "failed"
)

// IdentityLookup maps a voice identity back to its global id.
type IdentityLookup interface {
	// GlobalIDOf returns sentinel.ErrNotFound when voice is not registered.
	GlobalIDOf(ctx context.Context, voice id.VoiceIdentity) (id.GlobalID, error)
}

// RankPort looks up a user's current rank.
type RankPort interface {
	RequestRank(ctx context.Context, globalID id.GlobalID) (id.Rank, error)
}

// Relay subscribes to the exchange channel and answers rank requests.
type Relay struct {
	bus        bus.Bus
	channel    string
	identities IdentityLookup
	ranks      RankPort
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer

	wg sync.WaitGroup
}

type Option func(*Relay)

func WithChannel(channel string) Option {
	return func(r *Relay) {
		if channel != "" {
			r.channel = channel
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Relay) {
		r.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(r *Relay) {
		r.tracer = tracer
	}
}

// New constructs a Relay.
func New(b bus.Bus, identities IdentityLookup, ranks RankPort, opts ...Option) (*Relay, error) {
	if b == nil {
		return nil, errors.New("bus is required")
	}
	if identities == nil {
		return nil, errors.New("identity lookup is required")
	}
	if ranks == nil {
		return nil, errors.New("rank port is required")
	}
	r := &Relay{
		bus:        b,
		channel:    DefaultChannel,
		identities: identities,
		ranks:      ranks,
		logger:     slog.Default(),
		tracer:     otel.Tracer("rankbridge/internal/exchange"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run subscribes to the exchange channel and handles each message on its own
// goroutine until ctx ends. It waits for in-flight handlers before returning.
func (r *Relay) Run(ctx context.Context) error {
	defer r.wg.Wait()
	r.logger.InfoContext(ctx, "exchange relay subscribed", "channel", r.channel)
	return r.bus.Subscribe(ctx, r.channel, func(ctx context.Context, text string) {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			if err := r.Handle(ctx, text); err != nil {
				r.logger.WarnContext(ctx, "exchange command failed",
					"message", text,
					"error", err,
				)
			}
		}()
	})
}

// Handle processes one exchange message. Unknown verbs, malformed arguments
// and unregistered voice identities are dropped without a reply and without
// an error. Lookup and publish failures are returned and nothing is published
// for the message.
func (r *Relay) Handle(ctx context.Context, text string) error {
	cmd, ok := ParseCommand(text)
	if !ok {
		return nil
	}
	replyVerb, ok := cmd.ReplyVerb()
	if !ok {
		r.metrics.IncCommand("other", outcomeIgnored)
		return nil
	}
	verb := string(cmd.Verb)

	arg, ok := cmd.Arg(0)
	if !ok {
		r.metrics.IncCommand(verb, outcomeIgnored)
		r.logger.DebugContext(ctx, "exchange command without voice identity", "verb", verb)
		return nil
	}
	voice, err := id.ParseVoiceIdentity(arg)
	if err != nil {
		r.metrics.IncCommand(verb, outcomeIgnored)
		r.logger.DebugContext(ctx, "exchange command with invalid voice identity", "verb", verb, "error", err)
		return nil
	}

	ctx, span := r.tracer.Start(ctx, "exchange.Handle", trace.WithAttributes(
		attribute.String("verb", verb),
		attribute.String("voice_identity", voice.String()),
	))
	defer span.End()
	start := time.Now()
	defer func() { r.metrics.ObserveHandle(verb, time.Since(start)) }()

	gid, err := r.identities.GlobalIDOf(ctx, voice)
	if errors.Is(err, sentinel.ErrNotFound) {
		r.metrics.IncCommand(verb, outcomeUnmapped)
		r.logger.DebugContext(ctx, "exchange request for unregistered voice identity",
			"verb", verb,
			"voice_identity", voice.String(),
		)
		return nil
	}
	if err != nil {
		return r.fail(span, verb, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve voice identity"))
	}

	rank, err := r.ranks.RequestRank(ctx, gid)
	if err != nil {
		return r.fail(span, verb, err)
	}

	if err := r.publish(ctx, FormatRankUpdate(replyVerb, voice, rank)); err != nil {
		return r.fail(span, verb, err)
	}
	r.metrics.IncCommand(verb, outcomeReplied)
	r.logger.DebugContext(ctx, "exchange reply published",
		"verb", string(replyVerb),
		"voice_identity", voice.String(),
		"rank", rank.String(),
	)
	return nil
}

// PublishRankUpdate announces rank for voice as an on-demand update.
func (r *Relay) PublishRankUpdate(ctx context.Context, voice id.VoiceIdentity, rank id.Rank) error {
	return r.publish(ctx, FormatRankUpdate(VerbUpdateRank, voice, rank))
}

func (r *Relay) publish(ctx context.Context, text string) error {
	if err := r.bus.Publish(ctx, r.channel, text); err != nil {
		r.metrics.IncPublishFailure()
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to publish exchange message")
	}
	return nil
}

func (r *Relay) fail(span trace.Span, verb string, err error) error {
	r.metrics.IncCommand(verb, outcomeFailed)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
