package services

import (
	"fmt"
	"testing"
	"time"

	"main/model"
	"main/utils"
)

func newTestSession(adminID string) *model.Session {
	now := time.Now()
	return &model.Session{
		SessionID:      utils.GenerateSessionID(),
		AdminID:        adminID,
		DisplayName:    "Chrome on Windows",
		DeviceInfo:     "Chrome on Windows (Desktop)",
		IPAddress:      "192.168.1.10",
		CreatedAt:      now,
		ExpiresAt:      now.Add(2 * time.Hour),
		LastActivityAt: now,
	}
}

func TestCreateSession(t *testing.T) {
	registry := NewSessionRegistry()

	t.Run("Valid Session", func(t *testing.T) {
		session := newTestSession("admin-1")
		if err := registry.CreateSession(session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if !registry.IsActive(session.SessionID) {
			t.Error("Session should be active right after creation")
		}
	})

	t.Run("Nil Session", func(t *testing.T) {
		if err := registry.CreateSession(nil); err == nil {
			t.Error("Expected error for nil session")
		}
	})

	t.Run("Missing Fields", func(t *testing.T) {
		if err := registry.CreateSession(&model.Session{SessionID: "abc"}); err == nil {
			t.Error("Expected error for session without admin ID")
		}
	})

	t.Run("Duplicate Session ID", func(t *testing.T) {
		session := newTestSession("admin-1")
		if err := registry.CreateSession(session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		dup := *session
		if err := registry.CreateSession(&dup); err == nil {
			t.Error("Expected error for duplicate session ID")
		}
	})
}

func TestSessionIDUniqueness(t *testing.T) {
	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		id := utils.GenerateSessionID()
		if seen[id] {
			t.Fatalf("Duplicate session ID after %d generations: %s", i, id)
		}
		seen[id] = true
	}
}

func TestRevocationIsTerminal(t *testing.T) {
	registry := NewSessionRegistry()
	session := newTestSession("admin-1")
	if err := registry.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if !registry.RevokeByTokenID(session.SessionID) {
		t.Fatal("Revocation should succeed for an active session")
	}
	if registry.IsActive(session.SessionID) {
		t.Error("Revoked session must not be active")
	}

	// Touching a revoked session must not resurrect it
	registry.Touch(session.SessionID)
	if registry.IsActive(session.SessionID) {
		t.Error("Touch must not reactivate a revoked session")
	}

	if registry.RevokeByTokenID(session.SessionID) {
		t.Error("Second revocation should report nothing revoked")
	}
}

func TestRevokeBySessionIDOwnership(t *testing.T) {
	registry := NewSessionRegistry()
	session := newTestSession("admin-1")
	if err := registry.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	t.Run("Other Admin Cannot Revoke", func(t *testing.T) {
		if registry.RevokeBySessionID("admin-2", session.SessionID) {
			t.Error("Admin must not revoke a session they do not own")
		}
		if !registry.IsActive(session.SessionID) {
			t.Error("Session should still be active after failed revocation")
		}
	})

	t.Run("Owner Can Revoke", func(t *testing.T) {
		if !registry.RevokeBySessionID("admin-1", session.SessionID) {
			t.Error("Owner should be able to revoke their session")
		}
		if registry.IsActive(session.SessionID) {
			t.Error("Session should be inactive after revocation")
		}
	})

	t.Run("Unknown Session", func(t *testing.T) {
		if registry.RevokeBySessionID("admin-1", "no-such-session") {
			t.Error("Revoking an unknown session should report false")
		}
	})
}

func TestRevokeAllForAdmin(t *testing.T) {
	registry := NewSessionRegistry()
	var sessions []*model.Session
	for i := 0; i < 3; i++ {
		s := newTestSession("admin-1")
		if err := registry.CreateSession(s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		sessions = append(sessions, s)
	}
	other := newTestSession("admin-2")
	if err := registry.CreateSession(other); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if count := registry.RevokeAllForAdmin("admin-1"); count != 3 {
		t.Errorf("Expected 3 sessions revoked, got %d", count)
	}
	for _, s := range sessions {
		if registry.IsActive(s.SessionID) {
			t.Errorf("Session %s should be inactive after logout-all", s.SessionID)
		}
	}
	if !registry.IsActive(other.SessionID) {
		t.Error("Another admin's session must survive logout-all")
	}
	if count := registry.RevokeAllForAdmin("admin-1"); count != 0 {
		t.Errorf("Second logout-all should revoke 0 sessions, got %d", count)
	}
}

func TestTouchIsSilent(t *testing.T) {
	registry := NewSessionRegistry()

	// Absent session: must not panic or create anything
	registry.Touch("ghost-session")
	if registry.IsActive("ghost-session") {
		t.Error("Touch must not create a session")
	}

	session := newTestSession("admin-1")
	session.LastActivityAt = time.Now().Add(-time.Hour)
	if err := registry.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	before := session.LastActivityAt
	registry.Touch(session.SessionID)
	if !session.LastActivityAt.After(before) {
		t.Error("Touch should advance LastActivityAt for an active session")
	}
}

func TestActiveSessionsOrdering(t *testing.T) {
	registry := NewSessionRegistry()
	base := time.Now()

	var ids []string
	for i := 0; i < 4; i++ {
		s := newTestSession("admin-1")
		s.LastActivityAt = base.Add(time.Duration(i) * time.Minute)
		if err := registry.CreateSession(s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		ids = append(ids, s.SessionID)
	}

	sessions := registry.ActiveSessions("admin-1")
	if len(sessions) != 4 {
		t.Fatalf("Expected 4 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].LastActivityAt.After(sessions[i-1].LastActivityAt) {
			t.Error("Sessions must be ordered most recently active first")
		}
	}
	if sessions[0].SessionID != ids[3] {
		t.Error("Most recently active session should be listed first")
	}

	// Touching the oldest session moves it to the front
	registry.Touch(ids[0])
	sessions = registry.ActiveSessions("admin-1")
	if sessions[0].SessionID != ids[0] {
		t.Error("Touched session should move to the front of the listing")
	}
}

func TestActiveSessionsReturnsSnapshots(t *testing.T) {
	registry := NewSessionRegistry()
	session := newTestSession("admin-1")
	session.LastActivityAt = time.Now().Add(-time.Hour)
	if err := registry.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	listed := registry.ActiveSessions("admin-1")
	if len(listed) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(listed))
	}
	before := listed[0].LastActivityAt

	// A touch after the listing must not reach into the caller's copy
	registry.Touch(session.SessionID)
	if !listed[0].LastActivityAt.Equal(before) {
		t.Error("Listing must return value snapshots, not live records")
	}

	refreshed := registry.ActiveSessions("admin-1")
	if !refreshed[0].LastActivityAt.After(before) {
		t.Error("A fresh listing should observe the touch")
	}
}

func TestActiveSessionsConcurrentWithTouch(t *testing.T) {
	registry := NewSessionRegistry()
	var ids []string
	for i := 0; i < 5; i++ {
		s := newTestSession("admin-1")
		if err := registry.CreateSession(s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		ids = append(ids, s.SessionID)
	}

	done := make(chan bool)
	go func() {
		for i := 0; i < 2000; i++ {
			registry.Touch(ids[i%len(ids)])
		}
		done <- true
	}()

	for i := 0; i < 2000; i++ {
		sessions := registry.ActiveSessions("admin-1")
		if len(sessions) != 5 {
			t.Fatalf("Expected 5 sessions, got %d", len(sessions))
		}
		for j := 1; j < len(sessions); j++ {
			if sessions[j].LastActivityAt.After(sessions[j-1].LastActivityAt) {
				t.Fatal("Listing order must hold while touches run concurrently")
			}
		}
	}
	<-done
}

func TestEndLeastActiveSession(t *testing.T) {
	registry := NewSessionRegistry()
	base := time.Now()

	var oldest string
	for i := 0; i < 3; i++ {
		s := newTestSession("admin-1")
		s.LastActivityAt = base.Add(time.Duration(i) * time.Minute)
		if err := registry.CreateSession(s); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if i == 0 {
			oldest = s.SessionID
		}
	}

	if !registry.EndLeastActiveSession("admin-1") {
		t.Fatal("Expected a session to be evicted")
	}
	if registry.IsActive(oldest) {
		t.Error("Least recently active session should have been evicted")
	}
	if got := registry.CountActiveSessions("admin-1"); got != 2 {
		t.Errorf("Expected 2 sessions after eviction, got %d", got)
	}

	if registry.EndLeastActiveSession("admin-with-no-sessions") {
		t.Error("Eviction for an unknown admin should report false")
	}
}

func TestExpiredSessions(t *testing.T) {
	registry := NewSessionRegistry()

	t.Run("Lazy Expiry On IsActive", func(t *testing.T) {
		session := newTestSession("admin-1")
		session.ExpiresAt = time.Now().Add(-time.Minute)
		if err := registry.CreateSession(session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if registry.IsActive(session.SessionID) {
			t.Error("Expired session must not be active")
		}
		if got := registry.CountActiveSessions("admin-1"); got != 0 {
			t.Errorf("Expired session should be evicted from the index, got %d", got)
		}
	})

	t.Run("Sweep", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			s := newTestSession(fmt.Sprintf("admin-%d", i))
			s.ExpiresAt = time.Now().Add(-time.Second)
			if err := registry.CreateSession(s); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
		}
		live := newTestSession("admin-live")
		if err := registry.CreateSession(live); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		if swept := registry.SweepExpired(); swept != 3 {
			t.Errorf("Expected 3 sessions swept, got %d", swept)
		}
		if !registry.IsActive(live.SessionID) {
			t.Error("Live session must survive the sweep")
		}
	})
}

func TestConcurrentRegistryAccess(t *testing.T) {
	registry := NewSessionRegistry()
	done := make(chan bool)

	for i := 0; i < 8; i++ {
		go func(n int) {
			adminID := fmt.Sprintf("admin-%d", n%2)
			for j := 0; j < 100; j++ {
				s := newTestSession(adminID)
				if err := registry.CreateSession(s); err != nil {
					t.Errorf("CreateSession failed: %v", err)
				}
				registry.Touch(s.SessionID)
				registry.IsActive(s.SessionID)
				registry.ActiveSessions(adminID)
				registry.RevokeByTokenID(s.SessionID)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 8; i++ {
		<-done
	}

	if got := registry.CountActiveSessions("admin-0"); got != 0 {
		t.Errorf("All sessions were revoked, expected 0 remaining, got %d", got)
	}
}
