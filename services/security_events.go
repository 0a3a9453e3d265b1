package services

import (
	"sync"
	"time"

	"main/model"
)

const maxRecentFailures = 50

// SecurityEvents records failed login attempts for the admin dashboard.
// It keeps a total counter and a bounded list of the most recent failures.
type SecurityEvents struct {
	mu     sync.Mutex
	total  int64
	recent []model.FailedLoginRecord
}

func NewSecurityEvents() *SecurityEvents {
	return &SecurityEvents{}
}

// RecordFailedLogin notes a failed login attempt. Fire-and-forget: callers
// never block on it and it cannot fail.
func (se *SecurityEvents) RecordFailedLogin(username, ip string) {
	se.mu.Lock()
	defer se.mu.Unlock()

	se.total++
	se.recent = append(se.recent, model.FailedLoginRecord{
		At:        time.Now(),
		Username:  username,
		IPAddress: ip,
	})
	if len(se.recent) > maxRecentFailures {
		se.recent = se.recent[len(se.recent)-maxRecentFailures:]
	}
}

// Snapshot returns the failure total and a copy of the recent failures,
// newest first.
func (se *SecurityEvents) Snapshot() (int64, []model.FailedLoginRecord) {
	se.mu.Lock()
	defer se.mu.Unlock()

	recent := make([]model.FailedLoginRecord, len(se.recent))
	for i, rec := range se.recent {
		recent[len(se.recent)-1-i] = rec
	}
	return se.total, recent
}
