package employee

import (
	"testing"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/validate"
)

func TestFieldRulesValidInput(t *testing.T) {
	in := Input{EmployeeID: "EMP001", Name: "John Smith", Department: "IT", Grade: "Senior"}
	fields := validate.Apply(fieldRules, in.values(), time.Now())
	if len(fields) != 0 {
		t.Fatalf("expected no violations, got %v", fields)
	}
}

func TestFieldRulesRequiredMessages(t *testing.T) {
	fields := validate.Apply(fieldRules, Input{}.values(), time.Now())

	want := map[string]string{
		"employee_id": "Employee ID is required.",
		"name":        "Employee name is required.",
		"department":  "Department is required.",
		"grade":       "Grade is required.",
	}
	for field, msg := range want {
		if got := fields[field]; got != msg {
			t.Fatalf("field %s: got %q, want %q", field, got, msg)
		}
	}
}

func TestFieldRulesMaxLen(t *testing.T) {
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	in := Input{EmployeeID: "EMP001", Name: string(long), Department: "IT", Grade: "Senior"}

	fields := validate.Apply(fieldRules, in.values(), time.Now())
	if _, ok := fields["name"]; !ok {
		t.Fatalf("expected max length violation for name, got %v", fields)
	}
	if len(fields) != 1 {
		t.Fatalf("expected only name to fail, got %v", fields)
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		page, size    int
		offset, limit int
	}{
		{0, 0, 0, 15},
		{1, 15, 0, 15},
		{3, 10, 20, 10},
		{-1, 5, 0, 5},
	}
	for _, c := range cases {
		offset, limit := pageWindow(c.page, c.size, 15)
		if offset != c.offset || limit != c.limit {
			t.Fatalf("pageWindow(%d, %d): got (%d, %d), want (%d, %d)",
				c.page, c.size, offset, limit, c.offset, c.limit)
		}
	}
}
