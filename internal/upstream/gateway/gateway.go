// Package gateway implements upstream.Client against a sidecar process that
// owns the platform session. Commands and events are JSON documents carried on
// two bus channels.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"rankbridge/internal/exchange/bus"
	"rankbridge/internal/upstream"
	id "rankbridge/pkg/domain"
)

const (
	DefaultCommandChannel = "upstream.commands"
	DefaultEventChannel   = "upstream.events"

	eventBuffer = 256
)

// Command types published to the sidecar.
const (
	commandProfileRequest = "profile_request"
	commandAddFriend      = "add_friend"
	commandRemoveFriend   = "remove_friend"
)

// Event types read from the sidecar. "friend" is the single-edge form the
// platform emits for live changes; "relationship" is the bulk form sent after
// logon. Both describe one edge here.
const (
	eventPlayerProfile = "player_profile"
	eventRelationship  = "relationship"
	eventFriend        = "friend"
)

type command struct {
	Type      string `json:"type"`
	AccountID uint32 `json:"account_id,omitempty"`
	GlobalID  string `json:"global_id,omitempty"`
}

type wireAccount struct {
	AccountID uint32 `json:"account_id"`
	RankID    *int   `json:"rank_id"`
}

type wireEvent struct {
	Type         string        `json:"type"`
	Accounts     []wireAccount `json:"accounts"`
	GlobalID     string        `json:"global_id"`
	Relationship *int          `json:"relationship"`
}

// Client talks to the sidecar over a bus.
type Client struct {
	bus            bus.Bus
	commandChannel string
	eventChannel   string
	logger         *slog.Logger

	events  chan upstream.Event
	runOnce sync.Once
}

type Option func(*Client)

func WithChannels(commands, events string) Option {
	return func(c *Client) {
		if commands != "" {
			c.commandChannel = commands
		}
		if events != "" {
			c.eventChannel = events
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(b bus.Bus, opts ...Option) (*Client, error) {
	if b == nil {
		return nil, errors.New("bus is required")
	}
	c := &Client{
		bus:            b,
		commandChannel: DefaultCommandChannel,
		eventChannel:   DefaultEventChannel,
		logger:         slog.Default(),
		events:         make(chan upstream.Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ToAccountID returns the low 32 bits of the global id.
func (c *Client) ToAccountID(globalID id.GlobalID) id.AccountID {
	return globalID.AccountID()
}

func (c *Client) RequestProfile(ctx context.Context, accountID id.AccountID) error {
	return c.send(ctx, command{Type: commandProfileRequest, AccountID: uint32(accountID)})
}

func (c *Client) AddConnection(ctx context.Context, globalID id.GlobalID) error {
	return c.send(ctx, command{Type: commandAddFriend, GlobalID: globalID.String()})
}

func (c *Client) RemoveConnection(ctx context.Context, globalID id.GlobalID) error {
	return c.send(ctx, command{Type: commandRemoveFriend, GlobalID: globalID.String()})
}

// Events streams decoded sidecar events. The channel closes when Run returns.
func (c *Client) Events() <-chan upstream.Event {
	return c.events
}

// Run subscribes to the event channel until ctx ends. It must be called once.
func (c *Client) Run(ctx context.Context) error {
	err := errors.New("gateway client already running")
	c.runOnce.Do(func() {
		defer close(c.events)
		err = c.bus.Subscribe(ctx, c.eventChannel, func(ctx context.Context, text string) {
			ev, decodeErr := decodeEvent([]byte(text))
			if decodeErr != nil {
				c.logger.WarnContext(ctx, "skipping malformed upstream event", "error", decodeErr)
				return
			}
			if ev == nil {
				return
			}
			select {
			case c.events <- ev:
			case <-ctx.Done():
			}
		})
	})
	return err
}

func (c *Client) send(ctx context.Context, cmd command) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encode %s command: %w", cmd.Type, err)
	}
	if err := c.bus.Publish(ctx, c.commandChannel, string(payload)); err != nil {
		return fmt.Errorf("send %s command: %w", cmd.Type, err)
	}
	return nil
}

// decodeEvent returns nil, nil for event types the core does not consume.
func decodeEvent(data []byte) (upstream.Event, error) {
	var raw wireEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	switch raw.Type {
	case eventPlayerProfile:
		resp := upstream.ProfileResponse{Accounts: make([]upstream.AccountProfile, 0, len(raw.Accounts))}
		for _, a := range raw.Accounts {
			rank := id.NoRank
			if a.RankID != nil {
				rank = id.RankOf(*a.RankID)
			}
			resp.Accounts = append(resp.Accounts, upstream.AccountProfile{AccountID: id.AccountID(a.AccountID), Rank: rank})
		}
		return resp, nil
	case eventRelationship, eventFriend:
		if raw.Relationship == nil {
			return nil, errors.New("relationship event without relationship")
		}
		var gid id.GlobalID
		if raw.GlobalID != "" {
			v, err := strconv.ParseUint(raw.GlobalID, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("relationship event global id %q: %w", raw.GlobalID, err)
			}
			gid = id.GlobalID(v)
		}
		return upstream.RelationshipEvent{
			GlobalID: gid,
			Status:   upstream.StatusFromFriendRelationship(*raw.Relationship),
		}, nil
	default:
		return nil, nil
	}
}
