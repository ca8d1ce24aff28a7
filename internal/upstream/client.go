// Package upstream defines the capability set the core consumes from the social
// platform client, and the events that client emits.
//
// The session handshake, server directory and game-coordinator wire protocol live
// behind Client; this package only names the boundary.
package upstream

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Client

import (
	"context"

	id "rankbridge/pkg/domain"
)

// Client is the upstream platform client.
type Client interface {
	// ToAccountID derives the game-coordinator account id of a user.
	ToAccountID(globalID id.GlobalID) id.AccountID
	// RequestProfile asks the game coordinator for a player profile. The answer
	// arrives later as a ProfileResponse event.
	RequestProfile(ctx context.Context, accountID id.AccountID) error
	// AddConnection accepts a pending friend request (or sends one).
	AddConnection(ctx context.Context, globalID id.GlobalID) error
	// RemoveConnection declines a pending request or removes an existing friend.
	RemoveConnection(ctx context.Context, globalID id.GlobalID) error
	// Events streams profile responses and relationship changes until the client stops.
	Events() <-chan Event
}

// Event is either a ProfileResponse or a RelationshipEvent.
type Event interface {
	upstreamEvent()
}

// AccountProfile is one record of a profile response.
type AccountProfile struct {
	AccountID id.AccountID
	// Rank is null when the profile carries no ranking.
	Rank id.Rank
}

// ProfileResponse answers one or more RequestProfile calls.
type ProfileResponse struct {
	Accounts []AccountProfile
}

// RelationshipEvent reports the friend-list state between the bot and a user.
type RelationshipEvent struct {
	GlobalID id.GlobalID
	Status   RelationshipStatus
}

func (ProfileResponse) upstreamEvent()   {}
func (RelationshipEvent) upstreamEvent() {}
