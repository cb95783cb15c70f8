package domain

import (
	"encoding/json"
	"testing"
)

func TestIsPrivileged(t *testing.T) {
	cases := []struct {
		position any
		want     bool
	}{
		{"admin", true},
		{"Admin", true},
		{"aDmIn", true},
		{" admin", false},
		{"administrator", false},
		{"Intern", false},
		{nil, false},
		{42.0, false},
	}
	for _, tc := range cases {
		if got := IsPrivileged(tc.position); got != tc.want {
			t.Errorf("IsPrivileged(%#v) = %v, want %v", tc.position, got, tc.want)
		}
	}
}

func TestParticipant_MergeDoesNotTouchOriginal(t *testing.T) {
	p := NewParticipant(501, "alice", "hash")

	next, changed := p.Merge(Changes{AttrPosition: Set("admin"), AttrNotes: Remove()})
	if !changed {
		t.Fatal("expected a change")
	}
	if p.Attributes[AttrPosition] != DefaultPosition {
		t.Fatalf("original mutated: %v", p.Attributes[AttrPosition])
	}
	if _, ok := next.Attributes[AttrNotes]; ok {
		t.Fatal("notes should be removed from the copy")
	}
	if !next.Privileged() {
		t.Fatal("copy should be privileged")
	}
}

func TestParticipant_MergeRemoveMissingIsNoop(t *testing.T) {
	p := NewParticipant(501, "alice", "hash")
	delete(p.Attributes, AttrNotes)

	if _, changed := p.Merge(Changes{AttrNotes: Remove()}); changed {
		t.Fatal("removing a missing attribute must not count as a change")
	}
}

func TestParticipant_SnapshotJSON(t *testing.T) {
	tok := "abc123"
	p := NewParticipant(501, " Alice ", "0123abcd")
	p.Token = &tok
	delete(p.Attributes, AttrName)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if flat["username"] != "alice" || flat["password"] != "0123abcd" || flat["token"] != "abc123" || flat["uid"] != 501.0 {
		t.Fatalf("unexpected flat record: %v", flat)
	}
	if _, ok := flat["name"]; ok {
		t.Fatal("removed attribute was serialized")
	}

	var back Participant
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(p) {
		t.Fatalf("snapshot record changed on reload: %+v vs %+v", back, p)
	}
}

func TestParticipant_NullToken(t *testing.T) {
	var p Participant
	if err := json.Unmarshal([]byte(`{"uid":600,"username":"bob","password":"x","token":null,"position":"Admin"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Token != nil {
		t.Fatalf("expected nil token, got %q", *p.Token)
	}
	if p.UID != 600 || !p.Privileged() {
		t.Fatalf("unexpected record: %+v", p)
	}
}

func TestParseChanges(t *testing.T) {
	changes, err := ParseChanges([]byte(`{"name":"Bob","notes":null,"position":  null }`))
	if err != nil {
		t.Fatalf("ParseChanges: %v", err)
	}
	if c := changes[AttrName]; c.Remove || c.Value != "Bob" {
		t.Fatalf("name: %+v", c)
	}
	if !changes[AttrNotes].Remove || !changes[AttrPosition].Remove {
		t.Fatalf("nulls should be removals: %+v", changes)
	}
	if err := changes.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if _, err := ParseChanges([]byte(``)); err != ErrInvalidJSON {
		t.Fatalf("empty body: expected ErrInvalidJSON, got %v", err)
	}
	if err := (Changes{AttrPhone: Set("1")}).Validate(); err != ErrBadAttributes {
		t.Fatalf("expected ErrBadAttributes, got %v", err)
	}
}
