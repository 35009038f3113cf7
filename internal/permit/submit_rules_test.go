package permit

import (
	"testing"
	"time"

	"github.com/FleetGate/FleetGate/internal/common/validate"
)

func validSubmitInput(now time.Time) SubmitInput {
	return SubmitInput{
		EmployeeCode: "EMP001",
		VehicleType:  "Sedan",
		LicensePlate: "ABC-1234",
		UsageStart:   now.Add(24 * time.Hour),
		UsageEnd:     now.Add(32 * time.Hour),
		Purpose:      "Client visit",
	}
}

func TestSubmitRulesValidInput(t *testing.T) {
	now := time.Now()
	fields := validate.Apply(submitRules, validSubmitInput(now).values(), now)
	if len(fields) != 0 {
		t.Fatalf("expected no violations, got %v", fields)
	}
}

func TestSubmitRulesPastStart(t *testing.T) {
	now := time.Now()
	in := validSubmitInput(now)
	in.UsageStart = now.Add(-time.Hour)

	fields := validate.Apply(submitRules, in.values(), now)
	if fields["usage_start"] != "Usage start must be in the future." {
		t.Fatalf("expected future violation, got %v", fields)
	}
}

func TestSubmitRulesEndBeforeStart(t *testing.T) {
	now := time.Now()
	in := validSubmitInput(now)
	in.UsageEnd = in.UsageStart.Add(-time.Hour)

	fields := validate.Apply(submitRules, in.values(), now)
	if fields["usage_end"] != "Usage end must be after the start time." {
		t.Fatalf("expected after violation, got %v", fields)
	}
}

func TestSubmitRulesMissingRequiredFields(t *testing.T) {
	fields := validate.Apply(submitRules, SubmitInput{}.values(), time.Now())

	for field, want := range map[string]string{
		"employee_id":   "Employee ID is required.",
		"vehicle_type":  "Vehicle type is required.",
		"license_plate": "License plate is required.",
		"usage_start":   "Usage start date and time is required.",
		"usage_end":     "Usage end date and time is required.",
	} {
		if fields[field] != want {
			t.Fatalf("field %s: expected %q, got %q", field, want, fields[field])
		}
	}
	// purpose 可选，缺省不报错
	if _, ok := fields["purpose"]; ok {
		t.Fatalf("purpose should be optional")
	}
}
