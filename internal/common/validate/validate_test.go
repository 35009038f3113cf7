package validate

import (
	"strings"
	"testing"
	"time"
)

func TestApplyRequiredAndMax(t *testing.T) {
	rules := []Rule{
		{Field: "name", Kind: KindString, Required: true, MaxLen: 5},
		{Field: "note", Kind: KindString, MaxLen: 3},
	}

	fields := Apply(rules, map[string]Input{
		"name": String("   "),
	}, time.Now())
	if fields["name"] != "name is required." {
		t.Fatalf("expected required violation, got %v", fields)
	}
	if _, ok := fields["note"]; ok {
		t.Fatalf("optional missing field should pass")
	}

	fields = Apply(rules, map[string]Input{
		"name": String("toolong"),
		"note": String("abcd"),
	}, time.Now())
	if !strings.Contains(fields["name"], "may not be greater than 5") {
		t.Fatalf("expected max violation, got %v", fields)
	}
	if !strings.Contains(fields["note"], "may not be greater than 3") {
		t.Fatalf("expected max violation for note, got %v", fields)
	}
}

func TestApplyCustomMessage(t *testing.T) {
	rules := []Rule{
		{
			Field: "employee_id", Kind: KindString, Required: true,
			Messages: map[string]string{"required": "Employee ID is required."},
		},
	}
	fields := Apply(rules, nil, time.Now())
	if fields["employee_id"] != "Employee ID is required." {
		t.Fatalf("expected custom message, got %v", fields)
	}
}

func TestApplyFutureAndAfter(t *testing.T) {
	now := time.Now()
	rules := []Rule{
		{Field: "start", Kind: KindTime, Required: true, Future: true},
		{Field: "end", Kind: KindTime, Required: true, After: "start"},
	}

	// start 不在未来
	fields := Apply(rules, map[string]Input{
		"start": TimeVal(now.Add(-time.Minute)),
		"end":   TimeVal(now.Add(time.Hour)),
	}, now)
	if !strings.Contains(fields["start"], "must be in the future") {
		t.Fatalf("expected future violation, got %v", fields)
	}

	// end 不晚于 start
	start := now.Add(time.Hour)
	fields = Apply(rules, map[string]Input{
		"start": TimeVal(start),
		"end":   TimeVal(start),
	}, now)
	if !strings.Contains(fields["end"], "must be after start") {
		t.Fatalf("expected after violation, got %v", fields)
	}

	// 合法输入
	fields = Apply(rules, map[string]Input{
		"start": TimeVal(now.Add(time.Hour)),
		"end":   TimeVal(now.Add(2 * time.Hour)),
	}, now)
	if len(fields) != 0 {
		t.Fatalf("expected no violations, got %v", fields)
	}
}

func TestApplyReportsFirstViolationPerField(t *testing.T) {
	now := time.Now()
	rules := []Rule{
		{Field: "start", Kind: KindTime, Required: true, Future: true, After: "other"},
	}
	fields := Apply(rules, map[string]Input{
		"start": TimeVal(now.Add(-time.Hour)),
		"other": TimeVal(now.Add(time.Hour)),
	}, now)
	if !strings.Contains(fields["start"], "future") {
		t.Fatalf("expected the future violation to win, got %v", fields)
	}
}
