package export

import (
	"testing"
	"time"

	"github.com/FleetGate/FleetGate/internal/employee"
	"github.com/FleetGate/FleetGate/internal/permit"
)

func samplePermit() *permit.Permit {
	created := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	actionAt := time.Date(2025, 1, 16, 14, 0, 5, 0, time.UTC)
	return &permit.Permit{
		ID:         42,
		EmployeeID: 7,
		Employee: &employee.Employee{
			ID:         7,
			EmployeeID: "EMP001",
			Name:       "John Smith",
			Department: "IT",
			Grade:      "Senior",
		},
		VehicleType:  "Sedan",
		LicensePlate: "ABC-1234",
		UsageStart:   time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
		UsageEnd:     time.Date(2025, 1, 20, 17, 0, 0, 0, time.UTC),
		Purpose:      "Client visit",
		Status:       permit.StatusApproved,
		HRComments:   "Approved for client visit",
		HRActionAt:   &actionAt,
		HRActionBy:   "Jane HR",
		CreatedAt:    created,
	}
}

func TestRowFormatting(t *testing.T) {
	row := Row(samplePermit())
	if len(row) != len(Header) {
		t.Fatalf("expected %d cells, got %d", len(Header), len(row))
	}

	want := []string{
		"42",
		"EMP001",
		"John Smith",
		"IT",
		"Senior",
		"Sedan",
		"ABC-1234",
		"2025-01-20 09:00:00",
		"2025-01-20 17:00:00",
		"Client visit",
		"Approved",
		"Approved for client visit",
		"2025-01-15 09:30:00",
		"2025-01-16 14:00:05",
	}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("cell %d (%s): expected %q, got %q", i, Header[i], want[i], row[i])
		}
	}
}

func TestRowPendingHasNAActionAt(t *testing.T) {
	p := samplePermit()
	p.Status = permit.StatusPending
	p.HRComments = ""
	p.HRActionAt = nil
	p.HRActionBy = ""

	row := Row(p)
	if row[10] != "Pending" {
		t.Fatalf("expected capitalized status, got %q", row[10])
	}
	if row[13] != "N/A" {
		t.Fatalf("expected N/A for null hr_action_at, got %q", row[13])
	}
	if row[11] != "" {
		t.Fatalf("expected empty hr_comments, got %q", row[11])
	}
}

func TestRowsIncludesHeaderFirst(t *testing.T) {
	rows := Rows([]permit.Permit{*samplePermit()})
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	for i, col := range Header {
		if rows[0][i] != col {
			t.Fatalf("header column %d: expected %q, got %q", i, col, rows[0][i])
		}
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 1, 18, 4, 9, 0, time.UTC)
	if got := Filename(now); got != "vehicle-permits-2025-03-01-18-04-09.csv" {
		t.Fatalf("unexpected filename: %s", got)
	}
}
