package domain

import (
	"strconv"
	"strings"

	dErrors "rankbridge/pkg/domain-errors"
)

// GlobalID is the durable 64-bit identity of a user on the social platform (a steam64 id).
// It is the primary key of the identity store and never changes once assigned.
type GlobalID uint64

// AccountID addresses a user on the game-coordinator protocol. It is derived from a
// GlobalID and never persisted.
type AccountID uint32

// VoiceIdentity is the user's unique id on the voice platform.
type VoiceIdentity string

// maxGlobalIDLength bounds the decimal form of a uint64.
const maxGlobalIDLength = 20

// ParseGlobalID parses the decimal form of a GlobalID.
// Rejects empty, signed, non-decimal and zero values.
func ParseGlobalID(s string) (GlobalID, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "global id is required")
	}
	if len(s) > maxGlobalIDLength {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "global id is too long")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, dErrors.New(dErrors.CodeInvalidInput, "global id must be decimal digits")
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid global id")
	}
	if v == 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "global id must be non-zero")
	}
	return GlobalID(v), nil
}

func (g GlobalID) String() string {
	return strconv.FormatUint(uint64(g), 10)
}

func (g GlobalID) IsNil() bool {
	return g == 0
}

// AccountID returns the low 32 bits of a steam64 id, which is how the game
// coordinator addresses individual accounts.
func (g GlobalID) AccountID() AccountID {
	return AccountID(uint64(g) & 0xFFFFFFFF)
}

func (a AccountID) String() string {
	return strconv.FormatUint(uint64(a), 10)
}

// maxVoiceIdentityLength is the longest unique id the voice platform hands out, with headroom.
const maxVoiceIdentityLength = 64

// ParseVoiceIdentity validates a voice identity read from a trust boundary.
// Voice identities travel inside a space-delimited protocol, so whitespace is rejected.
func ParseVoiceIdentity(s string) (VoiceIdentity, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "voice identity is required")
	}
	if len(s) > maxVoiceIdentityLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "voice identity is too long")
	}
	if strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == 0x7f }) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "voice identity must not contain whitespace or control characters")
	}
	return VoiceIdentity(s), nil
}

func (v VoiceIdentity) String() string {
	return string(v)
}

func (v VoiceIdentity) IsNil() bool {
	return v == ""
}
