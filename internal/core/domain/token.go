package domain

import "time"

// TokenEntry is the server-side record of an issued access token.
type TokenEntry struct {
	Username string `json:"username"`
	UID      int    `json:"uid"`
	Expires  int64  `json:"expires"` // unix seconds
}

// Expired reports whether the token is no longer valid at now.
func (t TokenEntry) Expired(now time.Time) bool {
	return now.Unix() >= t.Expires
}

// IssuedToken is returned to a client that authenticated successfully.
type IssuedToken struct {
	Token   string
	UID     int
	Expires int64
}

// Snapshot is the whole mutable state as persisted between restarts.
type Snapshot struct {
	Participants map[string]*Participant `json:"participants"`
	Tokens       map[string]TokenEntry   `json:"tokens"`
}
