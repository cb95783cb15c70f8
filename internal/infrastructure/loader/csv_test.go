package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brightpixel/rolodex/internal/core/domain"
)

const staffCSV = `1001,Ada Boss,aboss,555-1,HQ,Board,CEO,"Knows the ""vault"" code"
1002,Bob Ops,bops,555-2,DC,IT,Sysadmin,
`

func TestReadStaff(t *testing.T) {
	staff, err := ReadStaff(strings.NewReader(staffCSV))
	if err != nil {
		t.Fatalf("ReadStaff: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("expected 2 staff, got %d", len(staff))
	}
	if staff[0].UID != 1001 || staff[0].Username != "aboss" || staff[0].Notes != `Knows the "vault" code` {
		t.Fatalf("unexpected record: %+v", staff[0])
	}
	if staff[1].Notes != "" || staff[1].Position != "Sysadmin" {
		t.Fatalf("unexpected record: %+v", staff[1])
	}
}

func TestReadStaff_RejectsParticipantRange(t *testing.T) {
	for _, uid := range []string{"500", "12", "-1"} {
		_, err := ReadStaff(strings.NewReader(uid + ",n,u,p,l,d,pos,notes\n"))
		if err == nil || !strings.Contains(err.Error(), "employee ID <= 500") {
			t.Fatalf("uid %s: expected rejection, got %v", uid, err)
		}
	}
	if _, err := ReadStaff(strings.NewReader("501,n,u,p,l,d,pos,notes\n")); err != nil {
		t.Fatalf("uid 501 should load: %v", err)
	}
}

func TestReadStaff_Malformed(t *testing.T) {
	if _, err := ReadStaff(strings.NewReader("abc,n,u,p,l,d,pos,notes\n")); err == nil {
		t.Fatal("expected bad uid error")
	}
	if _, err := ReadStaff(strings.NewReader("1001,n,u\n")); err == nil {
		t.Fatal("expected column count error")
	}
}

func TestReadParticipants(t *testing.T) {
	snap, err := ReadParticipants(strings.NewReader(" Alice ,5ba1\nBOB,7c4a,extra\n"))
	if err != nil {
		t.Fatalf("ReadParticipants: %v", err)
	}

	alice, ok := snap.Participants["alice"]
	if !ok || alice.UID != 501 || alice.Password != "5ba1" || alice.Token != nil {
		t.Fatalf("unexpected alice: %+v", alice)
	}
	bob, ok := snap.Participants["bob"]
	if !ok || bob.UID != 502 {
		t.Fatalf("unexpected bob: %+v", bob)
	}
	if bob.Attributes[domain.AttrPosition] != domain.DefaultPosition || bob.Attributes[domain.AttrPhone] != domain.DefaultPhone {
		t.Fatalf("placeholders missing: %+v", bob.Attributes)
	}
	if len(snap.Tokens) != 0 {
		t.Fatal("pristine load must have no tokens")
	}
}

func TestReadParticipants_ShortRow(t *testing.T) {
	if _, err := ReadParticipants(strings.NewReader("alice\n")); err == nil {
		t.Fatal("expected error for missing password column")
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	staffPath := filepath.Join(dir, "staff.csv")
	teamsPath := filepath.Join(dir, "teams.csv")
	if err := os.WriteFile(staffPath, []byte(staffCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(teamsPath, []byte("alice,5ba1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if staff, err := LoadStaff(staffPath); err != nil || len(staff) != 2 {
		t.Fatalf("LoadStaff: %v (%d)", err, len(staff))
	}
	if snap, err := LoadParticipants(teamsPath); err != nil || len(snap.Participants) != 1 {
		t.Fatalf("LoadParticipants: %v", err)
	}
	if _, err := LoadStaff(filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
