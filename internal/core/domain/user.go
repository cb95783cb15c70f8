package domain

import (
	"strings"
	"time"
)

// MaxParticipantUID is the boundary between the participant and staff uid spaces.
const MaxParticipantUID = 500

// AccessTokenLifetime is the fixed validity window of an issued token.
const AccessTokenLifetime = 900 * time.Second

const adminPosition = "admin"

// Attribute names.
const (
	AttrUID        = "uid"
	AttrUsername   = "username"
	AttrName       = "name"
	AttrPhone      = "phone"
	AttrLocation   = "location"
	AttrDepartment = "department"
	AttrPosition   = "position"
	AttrNotes      = "notes"
)

// ownAttributes are returned for the caller's own record.
var ownAttributes = []string{AttrName, AttrLocation, AttrDepartment, AttrPosition, AttrNotes}

// Staff is a read-only employee record loaded at startup.
type Staff struct {
	UID        int
	Name       string
	Username   string
	Phone      string
	Location   string
	Department string
	Position   string
	Notes      string
}

// Entry is a single directory listing item as returned to clients.
type Entry map[string]any

// View renders the public subset of the record, adding notes when privileged.
func (s *Staff) View(privileged bool) Entry {
	e := Entry{
		AttrUID:        s.UID,
		AttrUsername:   s.Username,
		AttrName:       s.Name,
		AttrLocation:   s.Location,
		AttrDepartment: s.Department,
		AttrPosition:   s.Position,
	}
	if privileged {
		e[AttrNotes] = s.Notes
	}
	return e
}

// Principal is the caller resolved from a valid access token.
type Principal struct {
	UID        int
	Username   string
	Privileged bool
}

// IsPrivileged reports whether a position value grants elevated visibility.
// Anything that is not a string matching "admin" case-insensitively does not.
func IsPrivileged(position any) bool {
	s, ok := position.(string)
	return ok && strings.ToLower(s) == adminPosition
}

// NormalizeUsername lower-cases and trims a login name.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
