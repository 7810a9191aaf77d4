package application

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitEntry is one identifier's request count in the current window
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter implements a simple fixed-window rate limiter
type RateLimiter struct {
	limits map[string]*RateLimitEntry
	mu     sync.RWMutex
	window time.Duration
	limit  int
}

// NewRateLimiter creates a new rate limiter
// window: length of the time window (e.g. 1 minute)
// limit: maximum requests allowed per window
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		limits: make(map[string]*RateLimitEntry),
		window: window,
		limit:  limit,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow reports whether a request for the given identifier is permitted.
// identifier can be an IP, user id, conversation id, etc.
func (rl *RateLimiter) Allow(identifier string) (bool, error) {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.limits[identifier]

	// No entry yet, or the window expired: start a fresh one
	if !exists || now.After(entry.ResetTime) {
		rl.limits[identifier] = &RateLimitEntry{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return true, nil
	}

	if entry.Count >= rl.limit {
		timeUntilReset := entry.ResetTime.Sub(now)
		return false, fmt.Errorf("message limit exceeded, try again in %v", timeUntilReset.Round(time.Second))
	}

	entry.Count++
	return true, nil
}

// GetRemaining returns how many requests the identifier has left
func (rl *RateLimiter) GetRemaining(identifier string) int {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.RLock()
	defer rl.mu.RUnlock()

	entry, exists := rl.limits[identifier]
	if !exists {
		return rl.limit
	}

	now := time.Now()
	if now.After(entry.ResetTime) {
		return rl.limit
	}

	remaining := rl.limit - entry.Count
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Reset clears the counter for a single identifier
func (rl *RateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.limits, identifier)
}

// cleanupLoop removes expired entries periodically
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.limits {
		if now.After(entry.ResetTime) {
			delete(rl.limits, key)
		}
	}
}

// Size returns the number of tracked identifiers
func (rl *RateLimiter) Size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return len(rl.limits)
}
