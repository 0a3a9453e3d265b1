package services

import (
	"fmt"
	"testing"
)

func TestSecurityEvents(t *testing.T) {
	se := NewSecurityEvents()

	total, recent := se.Snapshot()
	if total != 0 || len(recent) != 0 {
		t.Fatalf("Fresh tracker should be empty, got total=%d recent=%d", total, len(recent))
	}

	se.RecordFailedLogin("alice", "10.0.0.1")
	se.RecordFailedLogin("bob", "10.0.0.2")

	total, recent = se.Snapshot()
	if total != 2 {
		t.Errorf("Expected 2 failures, got %d", total)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 recent records, got %d", len(recent))
	}
	if recent[0].Username != "bob" {
		t.Errorf("Most recent failure should be first, got %s", recent[0].Username)
	}
}

func TestSecurityEventsRingLimit(t *testing.T) {
	se := NewSecurityEvents()

	for i := 0; i < maxRecentFailures+20; i++ {
		se.RecordFailedLogin(fmt.Sprintf("user-%d", i), "10.0.0.1")
	}

	total, recent := se.Snapshot()
	if total != int64(maxRecentFailures+20) {
		t.Errorf("Total should count every failure, got %d", total)
	}
	if len(recent) != maxRecentFailures {
		t.Errorf("Recent list should be capped at %d, got %d", maxRecentFailures, len(recent))
	}
	if recent[0].Username != fmt.Sprintf("user-%d", maxRecentFailures+19) {
		t.Errorf("Newest failure should be first, got %s", recent[0].Username)
	}
}
