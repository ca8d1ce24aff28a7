package domain

import "strconv"

// rankNull is the wire form of an absent rank.
const rankNull = "null"

// Rank is a nullable competitive rank id. The zero value is "no rank".
type Rank struct {
	ID    int
	Valid bool
}

// NoRank is returned when the upstream profile carries no ranking.
var NoRank = Rank{}

// RankOf wraps a known rank id.
func RankOf(id int) Rank {
	return Rank{ID: id, Valid: true}
}

// String renders the rank the way the exchange protocol expects: the decimal id or "null".
func (r Rank) String() string {
	if !r.Valid {
		return rankNull
	}
	return strconv.Itoa(r.ID)
}

// ParseRank is the inverse of String.
func ParseRank(s string) (Rank, error) {
	if s == rankNull {
		return NoRank, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return NoRank, err
	}
	return RankOf(v), nil
}

// Registration is the snapshot of an identity's persisted state that relationship
// handling branches on.
type Registration struct {
	Registered bool
	Active     bool
}
