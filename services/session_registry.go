package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"main/model"
	"main/utils"
)

// SessionRegistry is the authoritative store of active admin sessions. It is
// double-indexed: by session ID (the credential's jti claim) and by the admin
// the session belongs to. Both indexes are always updated under the same lock,
// and session records never leave the registry as shared pointers: readers get
// value snapshots taken under the lock, so Touch can keep mutating the live
// record without racing them.
//
// The registry is process-local. When a Redis cache is configured
// (GlobalSessionCache), mutations are mirrored into it and lookups fall back
// to it, so sessions survive a process restart and are visible to sibling
// processes.
type SessionRegistry struct {
	mu          sync.RWMutex
	bySessionID map[string]*model.Session
	byAdminID   map[string]map[string]*model.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		bySessionID: make(map[string]*model.Session),
		byAdminID:   make(map[string]map[string]*model.Session),
	}
}

// CreateSession inserts a new session into both indexes. A duplicate session
// ID is an error: session IDs are minted fresh per login and a collision
// means the caller is misusing the registry. The cache write-through happens
// after the lock is released; a login must not stall gate lookups on Redis.
func (r *SessionRegistry) CreateSession(session *model.Session) error {
	if session == nil {
		utils.TrackError("session", "nil_session")
		return fmt.Errorf("session cannot be nil")
	}
	if session.SessionID == "" || session.AdminID == "" {
		utils.TrackError("session", "invalid_session_data")
		return fmt.Errorf("invalid session data: missing required fields")
	}

	r.mu.Lock()
	if _, exists := r.bySessionID[session.SessionID]; exists {
		r.mu.Unlock()
		utils.TrackError("session", "duplicate_session_id")
		return fmt.Errorf("session %s already exists", session.SessionID)
	}

	r.bySessionID[session.SessionID] = session
	if r.byAdminID[session.AdminID] == nil {
		r.byAdminID[session.AdminID] = make(map[string]*model.Session)
	}
	r.byAdminID[session.AdminID][session.SessionID] = session
	utils.UpdateActiveSessions(float64(len(r.bySessionID)))
	snapshot := *session
	r.mu.Unlock()

	if GlobalSessionCache != nil {
		if err := GlobalSessionCache.SetSession(&snapshot); err != nil {
			utils.TrackError("cache", "session_cache_set_failed")
			log.Printf("Warning: Failed to cache session: %v", err)
		}
		// The cached per-admin list no longer reflects reality
		if err := GlobalSessionCache.DeleteAdminSessions(snapshot.AdminID); err != nil {
			log.Printf("Warning: Failed to invalidate cached session list: %v", err)
		}
	}

	return nil
}

// Touch updates the session's last-activity timestamp. It is called on every
// authenticated request, so it never errors: touching an absent or revoked
// session is a no-op.
func (r *SessionRegistry) Touch(sessionID string) {
	if sessionID == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.bySessionID[sessionID]
	if !ok || session.Revoked {
		return
	}
	session.LastActivityAt = time.Now()
}

// IsActive reports whether the session is still usable. Absent and revoked
// sessions are indistinguishable to callers: both are simply not active.
// Expired sessions are evicted lazily here so the registry does not grow
// without bound for logins that never log out.
func (r *SessionRegistry) IsActive(sessionID string) bool {
	if sessionID == "" {
		return false
	}

	r.mu.Lock()
	session, ok := r.bySessionID[sessionID]
	if ok && session.Revoked {
		r.removeLocked(session)
		ok = false
	}
	if ok && !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		session.Revoked = true
		r.removeLocked(session)
		utils.TrackSessionRevocation("expired")
		ok = false
	}
	r.mu.Unlock()

	if ok {
		return true
	}

	// The local index is empty after a restart; a cached copy from a previous
	// process is still authoritative if it was never revoked.
	if session == nil && GlobalSessionCache != nil {
		return r.adoptFromCache(sessionID)
	}
	return false
}

func (r *SessionRegistry) adoptFromCache(sessionID string) bool {
	cached, err := GlobalSessionCache.GetSession(sessionID)
	if err != nil || cached == nil {
		utils.TrackCacheOperation("session", false)
		return false
	}
	utils.TrackCacheOperation("session", true)

	if cached.Revoked || (!cached.ExpiresAt.IsZero() && time.Now().After(cached.ExpiresAt)) {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bySessionID[cached.SessionID]; !exists {
		r.bySessionID[cached.SessionID] = cached
		if r.byAdminID[cached.AdminID] == nil {
			r.byAdminID[cached.AdminID] = make(map[string]*model.Session)
		}
		r.byAdminID[cached.AdminID][cached.SessionID] = cached
		utils.UpdateActiveSessions(float64(len(r.bySessionID)))
	}
	return true
}

// RevokeBySessionID revokes a session if it exists and belongs to adminID.
// The ownership check stops one admin from revoking another's session.
// Returns whether a session was actually revoked.
func (r *SessionRegistry) RevokeBySessionID(adminID, sessionID string) bool {
	r.mu.Lock()
	sessions := r.byAdminID[adminID]
	session, ok := sessions[sessionID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	session.Revoked = true
	r.removeLocked(session)
	r.mu.Unlock()

	r.invalidateCache(sessionID, adminID)
	utils.TrackSessionRevocation("admin_revoke")
	return true
}

// RevokeByTokenID revokes the session named by a credential's own session_id
// claim. No ownership check: holding the credential proves ownership.
func (r *SessionRegistry) RevokeByTokenID(sessionID string) bool {
	r.mu.Lock()
	session, ok := r.bySessionID[sessionID]
	if !ok {
		r.mu.Unlock()
		return false
	}
	session.Revoked = true
	adminID := session.AdminID
	r.removeLocked(session)
	r.mu.Unlock()

	r.invalidateCache(sessionID, adminID)
	utils.TrackSessionRevocation("logout")
	return true
}

// RevokeAllForAdmin revokes every session belonging to adminID and returns
// how many were revoked.
func (r *SessionRegistry) RevokeAllForAdmin(adminID string) int {
	r.mu.Lock()
	sessions := r.byAdminID[adminID]
	revoked := make([]*model.Session, 0, len(sessions))
	sessionIDs := make([]string, 0, len(sessions))
	for _, session := range sessions {
		session.Revoked = true
		revoked = append(revoked, session)
		sessionIDs = append(sessionIDs, session.SessionID)
	}
	for _, session := range revoked {
		r.removeLocked(session)
	}
	r.mu.Unlock()

	for _, sessionID := range sessionIDs {
		r.invalidateCache(sessionID, adminID)
		utils.TrackSessionRevocation("logout_all")
	}
	return len(sessionIDs)
}

// ActiveSessions returns value snapshots of the admin's sessions ordered by
// last activity, most recent first. Snapshots are taken and sorted under the
// lock so concurrent Touch calls cannot race the sort or the caller's reads.
func (r *SessionRegistry) ActiveSessions(adminID string) []model.Session {
	r.mu.RLock()
	sessions := make([]model.Session, 0, len(r.byAdminID[adminID]))
	for _, session := range r.byAdminID[adminID] {
		sessions = append(sessions, *session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastActivityAt.After(sessions[j].LastActivityAt)
	})
	r.mu.RUnlock()

	return sessions
}

// CountActiveSessions returns the number of live sessions for an admin.
func (r *SessionRegistry) CountActiveSessions(adminID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byAdminID[adminID])
}

// EndLeastActiveSession revokes the admin's least recently used session.
// Called from login when the per-admin session limit is reached.
func (r *SessionRegistry) EndLeastActiveSession(adminID string) bool {
	r.mu.Lock()
	var oldest *model.Session
	for _, session := range r.byAdminID[adminID] {
		if oldest == nil || session.LastActivityAt.Before(oldest.LastActivityAt) {
			oldest = session
		}
	}
	if oldest == nil {
		r.mu.Unlock()
		return false
	}
	oldest.Revoked = true
	oldestID := oldest.SessionID
	r.removeLocked(oldest)
	r.mu.Unlock()

	r.invalidateCache(oldestID, adminID)
	utils.TrackSessionRevocation("limit_evicted")
	return true
}

// SweepExpired removes every session past its expiry and returns the count.
func (r *SessionRegistry) SweepExpired() int {
	now := time.Now()

	type evicted struct {
		sessionID string
		adminID   string
	}

	r.mu.Lock()
	expired := make([]*model.Session, 0)
	swept := make([]evicted, 0)
	for _, session := range r.bySessionID {
		if !session.ExpiresAt.IsZero() && now.After(session.ExpiresAt) {
			session.Revoked = true
			expired = append(expired, session)
			swept = append(swept, evicted{session.SessionID, session.AdminID})
		}
	}
	for _, session := range expired {
		r.removeLocked(session)
	}
	r.mu.Unlock()

	for _, e := range swept {
		r.invalidateCache(e.sessionID, e.adminID)
		utils.TrackSessionRevocation("expired")
	}
	return len(swept)
}

// StartCleanupTask starts a background sweep of expired sessions.
func (r *SessionRegistry) StartCleanupTask(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		for range ticker.C {
			if n := r.SweepExpired(); n > 0 {
				log.Printf("Swept %d expired sessions", n)
			}
		}
	}()
}

// removeLocked drops the session from both indexes. Caller holds r.mu.
func (r *SessionRegistry) removeLocked(session *model.Session) {
	delete(r.bySessionID, session.SessionID)
	if sessions := r.byAdminID[session.AdminID]; sessions != nil {
		delete(sessions, session.SessionID)
		if len(sessions) == 0 {
			delete(r.byAdminID, session.AdminID)
		}
	}
	utils.UpdateActiveSessions(float64(len(r.bySessionID)))
}

// invalidateCache drops both the session key and the admin's cached session
// list. Deleting the list is what keeps a revoked session from being served
// by the very next listing while the old entry would still count as fresh.
func (r *SessionRegistry) invalidateCache(sessionID, adminID string) {
	if GlobalSessionCache == nil {
		return
	}
	if err := GlobalSessionCache.DeleteSession(sessionID); err != nil {
		utils.TrackError("cache", "session_cache_delete_failed")
		log.Printf("Warning: Failed to delete session from cache: %v", err)
	}
	if err := GlobalSessionCache.DeleteAdminSessions(adminID); err != nil {
		utils.TrackError("cache", "session_list_invalidate_failed")
		log.Printf("Warning: Failed to invalidate cached session list: %v", err)
	}
}
