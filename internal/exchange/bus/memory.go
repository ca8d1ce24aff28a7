package bus

import (
	"context"
	"sync"
)

const defaultMemoryBuffer = 64

// Memory is an in-process Bus.
type Memory struct {
	buffer int

	mu     sync.RWMutex
	subs   map[string]map[*memorySub]struct{}
	closed bool
	done   chan struct{}
}

type memorySub struct {
	ch   chan string
	done chan struct{}
}

type MemoryOption func(*Memory)

// WithBuffer sets the per-subscriber queue length. Publishers block once a
// subscriber's queue is full.
func WithBuffer(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.buffer = n
		}
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		buffer: defaultMemoryBuffer,
		subs:   make(map[string]map[*memorySub]struct{}),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Publish(ctx context.Context, channel, text string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	for sub := range m.subs[channel] {
		select {
		case sub.ch <- text:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Memory) Subscribe(ctx context.Context, channel string, handler Handler) error {
	sub := &memorySub{ch: make(chan string, m.buffer), done: make(chan struct{})}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.subs[channel] == nil {
		m.subs[channel] = make(map[*memorySub]struct{})
	}
	m.subs[channel][sub] = struct{}{}
	m.mu.Unlock()

	defer func() {
		close(sub.done)
		m.mu.Lock()
		delete(m.subs[channel], sub)
		if len(m.subs[channel]) == 0 {
			delete(m.subs, channel)
		}
		m.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.done:
			return ErrClosed
		case text := <-sub.ch:
			handler(ctx, text)
		}
	}
}

// Subscribers reports how many subscriptions channel currently has.
func (m *Memory) Subscribers(channel string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs[channel])
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}
