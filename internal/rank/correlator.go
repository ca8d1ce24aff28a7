// Package rank correlates player-profile requests with the asynchronous profile
// responses that answer them.
//
// Requests for the same account coalesce: only the first lookup is sent upstream,
// and every waiter registered before the response (or the timeout) receives the
// same outcome, in registration order.
package rank

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

	"rankbridge/internal/rank/metrics"
	"rankbridge/internal/upstream"
	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
)

// DefaultTimeout bounds how long an in-flight profile request waits for its response.
const DefaultTimeout = 10 * time.Second

// ErrUpstreamTimeout is delivered to waiters whose request was never answered.
var ErrUpstreamTimeout = errors.New("upstream profile response timed out")

// ProfileRequester is the slice of upstream.Client the correlator needs.
type ProfileRequester interface {
	ToAccountID(globalID id.GlobalID) id.AccountID
	RequestProfile(ctx context.Context, accountID id.AccountID) error
}

// Waiter receives the outcome of a lookup. It runs on the goroutine that resolves
// the request and must not block.
type Waiter func(rank id.Rank, err error)

type pendingRequest struct {
	accountID id.AccountID
	waiters   []Waiter
	timer     *time.Timer
	startedAt time.Time
}

// Correlator owns the table of in-flight profile requests.
type Correlator struct {
	upstream ProfileRequester
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer

	mu      sync.Mutex
	pending map[id.AccountID]*pendingRequest
	sends   sync.WaitGroup
}

type Option func(*Correlator)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Correlator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Correlator) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Correlator) {
		c.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Correlator) {
		c.tracer = tracer
	}
}

// New constructs a Correlator.
func New(requester ProfileRequester, opts ...Option) (*Correlator, error) {
	if requester == nil {
		return nil, errors.New("profile requester is required")
	}
	c := &Correlator{
		upstream: requester,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
		tracer:   otel.Tracer("rankbridge/internal/rank"),
		pending:  make(map[id.AccountID]*pendingRequest),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Subscribe registers waiter for the rank of globalID. If no request for the
// account is in flight, one is sent upstream; otherwise the waiter joins it.
//
// Subscribe never waits on the upstream send. The send runs on its own
// goroutine, detached from ctx because it is shared by every waiter that joins
// it, and bounded by the lookup timeout.
func (c *Correlator) Subscribe(ctx context.Context, globalID id.GlobalID, waiter Waiter) {
	accountID := c.upstream.ToAccountID(globalID)

	c.mu.Lock()
	if p, ok := c.pending[accountID]; ok {
		p.waiters = append(p.waiters, waiter)
		c.mu.Unlock()
		c.metrics.IncCoalesced()
		return
	}
	p := &pendingRequest{
		accountID: accountID,
		waiters:   []Waiter{waiter},
		startedAt: time.Now(),
	}
	p.timer = time.AfterFunc(c.timeout, func() { c.expire(p) })
	c.pending[accountID] = p
	n := len(c.pending)
	c.sends.Add(1)
	c.mu.Unlock()

	c.metrics.SetPending(n)
	c.metrics.IncUpstreamRequests()

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	go func() {
		defer c.sends.Done()
		defer cancel()
		c.send(sendCtx, p)
	}()
}

func (c *Correlator) send(ctx context.Context, p *pendingRequest) {
	if err := c.upstream.RequestProfile(ctx, p.accountID); err != nil {
		c.metrics.IncUpstreamFailures()
		c.logger.WarnContext(ctx, "player profile request failed",
			"account_id", p.accountID.String(),
			"error", err,
		)
		c.finish(p, id.NoRank, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to request player profile"))
	}
}

// Wait blocks until every upstream send started by Subscribe has returned.
func (c *Correlator) Wait() {
	c.sends.Wait()
}

// RequestRank looks up the rank of globalID and blocks until the profile
// response arrives, the request times out, or ctx ends. A caller that gives up
// early does not affect other waiters on the same account.
func (c *Correlator) RequestRank(ctx context.Context, globalID id.GlobalID) (id.Rank, error) {
	ctx, span := c.tracer.Start(ctx, "rank.RequestRank",
		trace.WithAttributes(attribute.String("global_id", globalID.String())))
	defer span.End()

	type result struct {
		rank id.Rank
		err  error
	}
	done := make(chan result, 1)
	c.Subscribe(ctx, globalID, func(rank id.Rank, err error) {
		done <- result{rank: rank, err: err}
	})

	select {
	case r := <-done:
		if r.err != nil {
			span.RecordError(r.err)
			span.SetStatus(codes.Error, r.err.Error())
			return id.NoRank, r.err
		}
		span.SetAttributes(attribute.String("rank", r.rank.String()))
		return r.rank, nil
	case <-ctx.Done():
		span.SetStatus(codes.Error, "caller gave up")
		return id.NoRank, ctx.Err()
	}
}

// Resolve completes the in-flight request of every account in resp and returns
// how many requests it completed. Records with no matching request are ignored.
func (c *Correlator) Resolve(resp upstream.ProfileResponse) int {
	resolved := 0
	for _, account := range resp.Accounts {
		c.mu.Lock()
		p, ok := c.pending[account.AccountID]
		c.mu.Unlock()
		if !ok {
			c.metrics.IncUnsolicited()
			c.logger.Debug("profile response with no pending request",
				"account_id", account.AccountID.String())
			continue
		}
		if c.finish(p, account.Rank, nil) {
			c.metrics.ObserveResolution(time.Since(p.startedAt))
			resolved++
		}
	}
	return resolved
}

// Pending reports the number of accounts with a request in flight.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Correlator) expire(p *pendingRequest) {
	if c.finish(p, id.NoRank, dErrors.Wrap(ErrUpstreamTimeout, dErrors.CodeTimeout, "rank lookup timed out")) {
		c.metrics.IncTimeouts()
		c.logger.Warn("player profile request timed out",
			"account_id", p.accountID.String(),
			"waiters", len(p.waiters),
			"timeout", c.timeout,
		)
	}
}

// finish removes p from the table and delivers the outcome to its waiters in
// registration order. It reports false if p was already completed; a stale
// timer or a late duplicate never touches a newer entry for the same account.
func (c *Correlator) finish(p *pendingRequest, rank id.Rank, err error) bool {
	c.mu.Lock()
	if current, ok := c.pending[p.accountID]; !ok || current != p {
		c.mu.Unlock()
		return false
	}
	delete(c.pending, p.accountID)
	p.timer.Stop()
	waiters := p.waiters
	n := len(c.pending)
	c.mu.Unlock()

	c.metrics.SetPending(n)
	for _, w := range waiters {
		w(rank, err)
	}
	return true
}
