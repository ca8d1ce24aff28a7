package upstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ProfileResolver completes in-flight profile requests.
type ProfileResolver interface {
	Resolve(resp ProfileResponse) int
}

// RelationshipHandler reacts to friend-list changes.
type RelationshipHandler interface {
	HandleRelationship(ctx context.Context, event RelationshipEvent) error
}

// Dispatcher routes upstream events to the core. Profile responses are resolved
// inline; each relationship event is handled on its own goroutine so a slow
// store or upstream call never delays rank correlation.
type Dispatcher struct {
	profiles      ProfileResolver
	relationships RelationshipHandler
	logger        *slog.Logger

	wg sync.WaitGroup
}

type DispatcherOption func(*Dispatcher)

func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(profiles ProfileResolver, relationships RelationshipHandler, opts ...DispatcherOption) (*Dispatcher, error) {
	if profiles == nil {
		return nil, errors.New("profile resolver is required")
	}
	if relationships == nil {
		return nil, errors.New("relationship handler is required")
	}
	d := &Dispatcher{
		profiles:      profiles,
		relationships: relationships,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Run consumes events until ctx ends or the channel closes, then waits for
// in-flight relationship handlers to return.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) error {
	defer d.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.Dispatch(ctx, ev)
		}
	}
}

// Dispatch routes a single event.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case ProfileResponse:
		d.profiles.Resolve(e)
	case RelationshipEvent:
		if e.GlobalID.IsNil() {
			d.logger.WarnContext(ctx, "dropping relationship event without global id")
			return
		}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := d.relationships.HandleRelationship(ctx, e); err != nil {
				d.logger.ErrorContext(ctx, "relationship handling failed",
					"global_id", e.GlobalID.String(),
					"status", string(e.Status),
					"error", err,
				)
			}
		}()
	default:
		d.logger.WarnContext(ctx, "ignoring unknown upstream event", "type", fmt.Sprintf("%T", ev))
	}
}

// Wait blocks until every relationship handler started by Dispatch returns.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
