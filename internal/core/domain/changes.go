package domain

import (
	"bytes"
	"encoding/json"
)

// writableAttributes is the fixed set of keys an owner may change.
var writableAttributes = map[string]struct{}{
	AttrName:       {},
	AttrLocation:   {},
	AttrDepartment: {},
	AttrPosition:   {},
	AttrNotes:      {},
}

// Change is a single submitted attribute edit. Remove marks an explicit null.
type Change struct {
	Value  any
	Remove bool
}

// Set returns a change that assigns v.
func Set(v any) Change { return Change{Value: v} }

// Remove returns a change that deletes the attribute.
func Remove() Change { return Change{Remove: true} }

// Changes maps attribute names to edits.
type Changes map[string]Change

// Validate rejects any key outside the writable set.
func (c Changes) Validate() error {
	for k := range c {
		if _, ok := writableAttributes[k]; !ok {
			return ErrBadAttributes
		}
	}
	return nil
}

// ParseChanges decodes a JSON object body. A null value becomes a removal.
func ParseChanges(body []byte) (Changes, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, ErrInvalidJSON
	}

	changes := make(Changes, len(raw))
	for k, v := range raw {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			changes[k] = Remove()
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, ErrInvalidJSON
		}
		changes[k] = Set(val)
	}
	return changes, nil
}
