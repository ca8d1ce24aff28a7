package upstream

// RelationshipStatus is the friend-list edge state as observed from upstream events.
type RelationshipStatus string

const (
	// StatusRequestRecipient: the user sent the bot a friend request.
	StatusRequestRecipient RelationshipStatus = "request_recipient"
	// StatusActive: the user and the bot are friends.
	StatusActive RelationshipStatus = "active"
	// StatusNone: the relationship was cleared by the user.
	StatusNone RelationshipStatus = "none"
	// StatusOther covers blocked, ignored and outgoing-request states.
	StatusOther RelationshipStatus = "other"
)

// Steam EFriendRelationship values the core distinguishes.
const (
	friendRelationshipNone             = 0
	friendRelationshipRequestRecipient = 2
	friendRelationshipFriend           = 3
)

// StatusFromFriendRelationship maps the platform's numeric relationship to a status.
func StatusFromFriendRelationship(v int) RelationshipStatus {
	switch v {
	case friendRelationshipNone:
		return StatusNone
	case friendRelationshipRequestRecipient:
		return StatusRequestRecipient
	case friendRelationshipFriend:
		return StatusActive
	default:
		return StatusOther
	}
}
