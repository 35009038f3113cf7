package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/FleetGate/FleetGate/internal/employee"
	"github.com/FleetGate/FleetGate/internal/permit"
)

func samplePermit() *permit.Permit {
	return &permit.Permit{
		ID: 1,
		Employee: &employee.Employee{
			EmployeeID: "EMP001",
			Name:       "John Smith",
		},
		VehicleType:  "Sedan",
		LicensePlate: "ABC-1234",
		UsageStart:   time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC),
		UsageEnd:     time.Date(2025, 1, 20, 17, 0, 0, 0, time.UTC),
		Purpose:      "Client visit",
		Status:       permit.StatusPending,
	}
}

func TestSubmittedMessage(t *testing.T) {
	msg := SubmittedMessage(samplePermit())

	for _, want := range []string{
		"New Vehicle Permit Request",
		"Employee: John Smith (EMP001)",
		"Vehicle: Sedan - ABC-1234",
		"Duration: Jan 20, 2025 09:00 - Jan 20, 2025 17:00",
		"Purpose: Client visit",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestDecidedMessageWithComments(t *testing.T) {
	p := samplePermit()
	p.Status = permit.StatusApproved
	p.HRComments = "Approved for client visit"

	msg := DecidedMessage(p)
	for _, want := range []string{
		"Hello John Smith,",
		"has been approved.",
		"HR Comments: Approved for client visit",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestDecidedMessageOmitsEmptyComments(t *testing.T) {
	p := samplePermit()
	p.Status = permit.StatusRejected

	msg := DecidedMessage(p)
	if !strings.Contains(msg, "has been rejected.") {
		t.Fatalf("message missing status line:\n%s", msg)
	}
	if strings.Contains(msg, "HR Comments:") {
		t.Fatalf("expected no comments line:\n%s", msg)
	}
}
