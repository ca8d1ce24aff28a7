// Package bus carries text messages between this service and its siblings over
// named channels. Every subscriber of a channel sees every message published to
// it, including messages the same process published.
package bus

import (
	"context"
	"errors"
)

// ErrClosed is returned by a bus that has been shut down.
var ErrClosed = errors.New("bus closed")

// Handler processes one message. It runs on the subscription's goroutine.
type Handler func(ctx context.Context, text string)

// Bus is a publish/subscribe transport.
type Bus interface {
	Publish(ctx context.Context, channel, text string) error
	// Subscribe delivers messages on channel to handler until ctx ends, which
	// returns nil. Transport failures are returned.
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}
