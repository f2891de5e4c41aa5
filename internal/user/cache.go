package user

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedEntry wraps a resolved user id with version metadata for cache invalidation
type cachedEntry struct {
	Version  string
	UserID   string
	CachedAt time.Time
}

// usernameCache maps case-folded usernames to user ids with time-based
// expiration and version-based invalidation
type usernameCache struct {
	lru *expirable.LRU[string, *cachedEntry]
}

func newUsernameCache(size int, ttl time.Duration) *usernameCache {
	return &usernameCache{
		lru: expirable.NewLRU[string, *cachedEntry](size, nil, ttl),
	}
}

// Get returns the user id cached for key. Entries from an older schema
// version are dropped.
func (c *usernameCache) Get(key string) (string, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return "", false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return "", false
	}
	return entry.UserID, true
}

// Set maps key to userID
func (c *usernameCache) Set(key, userID string) {
	c.lru.Add(key, &cachedEntry{
		Version:  CacheSchemaVersion,
		UserID:   userID,
		CachedAt: time.Now(),
	})
}

// Invalidate drops key and every other key pointing at userID, so a renamed
// user is not found under the old name
func (c *usernameCache) Invalidate(key, userID string) {
	c.lru.Remove(key)
	for _, k := range c.lru.Keys() {
		if entry, ok := c.lru.Peek(k); ok && entry.UserID == userID {
			c.lru.Remove(k)
		}
	}
}

// Len reports the number of live entries
func (c *usernameCache) Len() int {
	return c.lru.Len()
}
