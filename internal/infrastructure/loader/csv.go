// Package loader reads the pristine staff and participant rosters from CSV.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

const staffColumns = 8

var validate = validator.New()

// staffUIDRule rejects staff identifiers inside the participant range.
var staffUIDRule = fmt.Sprintf("gt=%d", domain.MaxParticipantUID)

// LoadStaff reads uid,name,username,phone,location,department,position,notes rows.
func LoadStaff(path string) ([]domain.Staff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open staff file: %w", err)
	}
	defer f.Close()
	return ReadStaff(f)
}

// ReadStaff parses staff rows from r.
func ReadStaff(r io.Reader) ([]domain.Staff, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = staffColumns

	var staff []domain.Staff
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return staff, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read staff: %w", err)
		}

		uid, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("staff line %d: bad uid %q: %w", line, row[0], err)
		}
		if err := validate.Var(uid, staffUIDRule); err != nil {
			return nil, fmt.Errorf("staff line %d: employee ID <= %d", line, domain.MaxParticipantUID)
		}

		staff = append(staff, domain.Staff{
			UID:        uid,
			Name:       row[1],
			Username:   row[2],
			Phone:      row[3],
			Location:   row[4],
			Department: row[5],
			Position:   row[6],
			Notes:      row[7],
		})
	}
}

// LoadParticipants reads username,password-hash rows into a fresh snapshot.
func LoadParticipants(path string) (*domain.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open participants file: %w", err)
	}
	defer f.Close()
	return ReadParticipants(f)
}

// ReadParticipants parses participant rows from r. Uids are handed out in
// file order starting right above MaxParticipantUID. Extra columns are
// ignored.
func ReadParticipants(r io.Reader) (*domain.Snapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	snap := &domain.Snapshot{
		Participants: make(map[string]*domain.Participant),
		Tokens:       make(map[string]domain.TokenEntry),
	}
	uid := domain.MaxParticipantUID + 1
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return snap, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read participants: %w", err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("participants line %d: expected username and password hash", line)
		}

		p := domain.NewParticipant(uid, row[0], row[1])
		snap.Participants[p.Username] = p
		uid++
	}
}
