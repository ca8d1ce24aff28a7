package exchange

import (
	"strings"

	id "rankbridge/pkg/domain"
)

// Verb is the first token of an exchange message.
type Verb string

const (
	// VerbRequestUpdate asks for a user's rank on demand.
	VerbRequestUpdate Verb = "request_update"
	// VerbUpdateRank answers VerbRequestUpdate and announces accepted users.
	VerbUpdateRank Verb = "update_rank"
	// VerbTickGetRank asks for a user's rank during the periodic refresh.
	VerbTickGetRank Verb = "update_tick_get_rank"
	// VerbTickUpdateRank answers VerbTickGetRank.
	VerbTickUpdateRank Verb = "update_tick_update_rank"
)

// replies maps each request verb this service answers to its reply verb. Reply
// verbs are never request verbs, so the relay ignores its own messages when the
// bus echoes them back.
var replies = map[Verb]Verb{
	VerbRequestUpdate: VerbUpdateRank,
	VerbTickGetRank:   VerbTickUpdateRank,
}

// Command is one parsed exchange message.
type Command struct {
	Verb Verb
	Args []string
}

// ParseCommand splits text on whitespace. The verb is case-insensitive and
// returned lower-cased. It reports false for blank input.
func ParseCommand(text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{}, false
	}
	return Command{Verb: Verb(strings.ToLower(fields[0])), Args: fields[1:]}, true
}

// Arg returns the i-th argument.
func (c Command) Arg(i int) (string, bool) {
	if i < 0 || i >= len(c.Args) {
		return "", false
	}
	return c.Args[i], true
}

// ReplyVerb returns the verb answering c, or false if c is not a request.
func (c Command) ReplyVerb() (Verb, bool) {
	v, ok := replies[c.Verb]
	return v, ok
}

// FormatRankUpdate renders "<verb> <voice> <rank|null>".
func FormatRankUpdate(verb Verb, voice id.VoiceIdentity, rank id.Rank) string {
	return string(verb) + " " + voice.String() + " " + rank.String()
}
