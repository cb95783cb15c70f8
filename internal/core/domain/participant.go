package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
)

// Placeholder attributes for freshly provisioned participants.
const (
	DefaultName       = "John J. Random"
	DefaultPhone      = "55590210"
	DefaultLocation   = "Building 3, Floor 10, Office 1A"
	DefaultDepartment = "Mergers and Acquisitions"
	DefaultPosition   = "Intern"
	DefaultNotes      = "Still hasn't signed the corporate security policy."
)

// Attributes holds the free-form part of a participant record. Keys may be
// missing and values may be any JSON value.
type Attributes map[string]any

// Participant is a dynamically provisioned account.
type Participant struct {
	UID        int
	Username   string
	Password   string // one-way hash
	Token      *string
	Attributes Attributes
}

// NewParticipant builds a participant with the default placeholder attributes.
func NewParticipant(uid int, username, passwordHash string) *Participant {
	return &Participant{
		UID:      uid,
		Username: NormalizeUsername(username),
		Password: passwordHash,
		Attributes: Attributes{
			AttrName:       DefaultName,
			AttrPhone:      DefaultPhone,
			AttrLocation:   DefaultLocation,
			AttrDepartment: DefaultDepartment,
			AttrPosition:   DefaultPosition,
			AttrNotes:      DefaultNotes,
		},
	}
}

// Clone returns a copy that shares no mutable state with p.
func (p *Participant) Clone() *Participant {
	c := *p
	if p.Token != nil {
		tok := *p.Token
		c.Token = &tok
	}
	c.Attributes = maps.Clone(p.Attributes)
	if c.Attributes == nil {
		c.Attributes = Attributes{}
	}
	return &c
}

// Privileged derives the privilege flag from the current position.
func (p *Participant) Privileged() bool {
	return IsPrivileged(p.Attributes[AttrPosition])
}

// View renders the full own-record entry. Missing attributes are omitted.
func (p *Participant) View() Entry {
	e := Entry{
		AttrUID:      p.UID,
		AttrUsername: p.Username,
	}
	for _, k := range ownAttributes {
		if v, ok := p.Attributes[k]; ok {
			e[k] = v
		}
	}
	return e
}

// Merge applies changes to a copy of p. The returned flag is false when the
// copy is attribute-for-attribute equal to p.
func (p *Participant) Merge(changes Changes) (*Participant, bool) {
	next := p.Clone()
	for k, c := range changes {
		if c.Remove {
			delete(next.Attributes, k)
			continue
		}
		next.Attributes[k] = c.Value
	}
	return next, !p.Equal(next)
}

// Equal compares every field of both records.
func (p *Participant) Equal(o *Participant) bool {
	if p.UID != o.UID || p.Username != o.Username || p.Password != o.Password {
		return false
	}
	if (p.Token == nil) != (o.Token == nil) || (p.Token != nil && *p.Token != *o.Token) {
		return false
	}
	return reflect.DeepEqual(map[string]any(p.Attributes), map[string]any(o.Attributes))
}

// MarshalJSON emits the flat snapshot form: attributes plus uid, username,
// password and token at the top level.
func (p *Participant) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Attributes)+4)
	for k, v := range p.Attributes {
		m[k] = v
	}
	m[AttrUID] = p.UID
	m[AttrUsername] = p.Username
	m["password"] = p.Password
	if p.Token != nil {
		m["token"] = *p.Token
	} else {
		m["token"] = nil
	}
	return json.Marshal(m)
}

// UnmarshalJSON reads the flat snapshot form.
func (p *Participant) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Participant
	out.Attributes = Attributes{}
	for k, v := range raw {
		var err error
		switch k {
		case AttrUID:
			err = json.Unmarshal(v, &out.UID)
		case AttrUsername:
			err = json.Unmarshal(v, &out.Username)
		case "password":
			err = json.Unmarshal(v, &out.Password)
		case "token":
			err = json.Unmarshal(v, &out.Token)
		default:
			var val any
			err = json.Unmarshal(v, &val)
			out.Attributes[k] = val
		}
		if err != nil {
			return fmt.Errorf("participant field %q: %w", k, err)
		}
	}

	*p = out
	return nil
}
