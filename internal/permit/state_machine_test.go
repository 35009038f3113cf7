package permit

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	if !CanTransition(StatusPending, StatusApproved) {
		t.Fatalf("expected pending -> approved allowed")
	}
	if !CanTransition(StatusPending, StatusRejected) {
		t.Fatalf("expected pending -> rejected allowed")
	}
	if CanTransition(StatusApproved, StatusRejected) {
		t.Fatalf("expected approved -> rejected not allowed")
	}
	if CanTransition(StatusApproved, StatusApproved) {
		t.Fatalf("expected re-deciding an approved permit not allowed")
	}
	if CanTransition(StatusRejected, StatusPending) {
		t.Fatalf("expected rejected -> pending not allowed")
	}
}

func TestApplyDecisionStampsHRFields(t *testing.T) {
	p := &Permit{Status: StatusPending}
	now := time.Now()

	if err := ApplyDecision(p, StatusApproved, "Approved for client visit", "Jane HR", now); err != nil {
		t.Fatalf("ApplyDecision: %v", err)
	}
	if p.Status != StatusApproved {
		t.Fatalf("expected status approved, got %s", p.Status)
	}
	if p.HRComments != "Approved for client visit" {
		t.Fatalf("comments mismatch: %q", p.HRComments)
	}
	if p.HRActionBy != "Jane HR" {
		t.Fatalf("actor mismatch: %q", p.HRActionBy)
	}
	if p.HRActionAt == nil || !p.HRActionAt.Equal(now) {
		t.Fatalf("expected hr_action_at stamped with now")
	}
}

func TestApplyDecisionDefaultActor(t *testing.T) {
	p := &Permit{Status: StatusPending}
	if err := ApplyDecision(p, StatusRejected, "", "", time.Now()); err != nil {
		t.Fatalf("ApplyDecision: %v", err)
	}
	if p.HRActionBy != DefaultActor {
		t.Fatalf("expected default actor %q, got %q", DefaultActor, p.HRActionBy)
	}
}

func TestApplyDecisionRejectsSecondDecision(t *testing.T) {
	p := &Permit{Status: StatusPending}
	now := time.Now()
	if err := ApplyDecision(p, StatusApproved, "ok", "Jane HR", now); err != nil {
		t.Fatalf("first decision: %v", err)
	}
	if err := ApplyDecision(p, StatusRejected, "changed my mind", "John HR", now.Add(time.Minute)); err == nil {
		t.Fatalf("expected second decision to fail")
	}
	// 第一次裁决的字段不能被覆盖
	if p.Status != StatusApproved || p.HRActionBy != "Jane HR" || p.HRComments != "ok" {
		t.Fatalf("first decision was overwritten: %+v", p)
	}
}

func TestStatusDisplay(t *testing.T) {
	if got := StatusPending.Display(); got != "Pending" {
		t.Fatalf("expected Pending, got %s", got)
	}
	if got := StatusApproved.Display(); got != "Approved" {
		t.Fatalf("expected Approved, got %s", got)
	}
	if got := Status("").Display(); got != "" {
		t.Fatalf("expected empty display, got %s", got)
	}
}
