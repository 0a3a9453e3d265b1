package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache mirrors registry sessions into Redis so they outlive a process
// restart and are visible to sibling processes. The in-memory registry stays
// authoritative; the cache is written through on every mutation.
type SessionCache struct {
	client *redis.Client
}

type SessionCacheEntry struct {
	Sessions  []model.Session `json:"sessions"`
	UpdatedAt time.Time       `json:"updated_at"`
}

var GlobalSessionCache *SessionCache

// NewSessionCache creates and initializes a new session cache
func NewSessionCache(redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &SessionCache{client: client}, nil
}

// SetSession caches an individual session
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	ctx := context.Background()
	key := fmt.Sprintf("session:%s", session.SessionID)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	// TTL matches the credential expiry so Redis evicts what the registry
	// would have swept anyway
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session has already expired")
	}

	if err := sc.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %v", err)
	}

	return nil
}

// GetSession retrieves a session from cache
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	ctx := context.Background()
	key := fmt.Sprintf("session:%s", sessionID)

	data, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session from cache: %v", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %v", err)
	}

	if time.Now().After(session.ExpiresAt) {
		sc.DeleteSession(sessionID)
		return nil, nil
	}

	return &session, nil
}

// CacheAdminSessions stores all active sessions for an admin. Any registry
// mutation for the admin deletes this key, so a present entry is coherent.
func (sc *SessionCache) CacheAdminSessions(adminID string, sessions []model.Session) error {
	if adminID == "" {
		return fmt.Errorf("adminID cannot be empty")
	}

	ctx := context.Background()
	key := fmt.Sprintf("admin_sessions:%s", adminID)

	entry := SessionCacheEntry{
		Sessions:  sessions,
		UpdatedAt: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %v", err)
	}

	// Cache for 5 minutes
	if err := sc.client.Set(ctx, key, data, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to cache admin sessions: %v", err)
	}

	return nil
}

// GetAdminSessions retrieves all cached sessions for an admin. The second
// return value reports whether the entry is stale (older than 30 seconds).
func (sc *SessionCache) GetAdminSessions(adminID string) ([]model.Session, bool, error) {
	if adminID == "" {
		return nil, false, fmt.Errorf("adminID cannot be empty")
	}

	ctx := context.Background()
	key := fmt.Sprintf("admin_sessions:%s", adminID)

	data, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil // Cache miss
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get admin sessions from cache: %v", err)
	}

	var entry SessionCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal sessions: %v", err)
	}

	isStale := time.Since(entry.UpdatedAt) > 30*time.Second

	return entry.Sessions, isStale, nil
}

// DeleteSession removes a session from cache
func (sc *SessionCache) DeleteSession(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	ctx := context.Background()
	key := fmt.Sprintf("session:%s", sessionID)

	if err := sc.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session from cache: %v", err)
	}

	return nil
}

// DeleteAdminSessions drops the cached session list for an admin. Called on
// every session mutation so the next listing rebuilds from the registry.
func (sc *SessionCache) DeleteAdminSessions(adminID string) error {
	if adminID == "" {
		return fmt.Errorf("adminID cannot be empty")
	}

	ctx := context.Background()
	key := fmt.Sprintf("admin_sessions:%s", adminID)

	if err := sc.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached session list: %v", err)
	}

	return nil
}

func (sc *SessionCache) IsConnected() bool {
	if sc == nil || sc.client == nil {
		return false
	}
	ctx := context.Background()
	return sc.client.Ping(ctx).Err() == nil
}

// Close closes the Redis connection
func (sc *SessionCache) Close() error {
	return sc.client.Close()
}
