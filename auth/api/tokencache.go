package api

import (
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/andrebq/stagedoor/auth"
	"github.com/cespare/xxhash/v2"
)

type (
	// TokenCache remembers session tokens that already survived a full
	// cookie check, so the potentially memory-hard re-verification of
	// plain-text sessions runs once per token instead of once per
	// request. Entries expire on their own, a miss just means the next
	// request pays for the full check again.
	TokenCache struct {
		cache *bigcache.BigCache
	}
)

func NewTokenCache() *TokenCache {
	cache, _ := bigcache.NewBigCache(bigcache.DefaultConfig(10 * time.Minute))
	return &TokenCache{
		cache: cache,
	}
}

// keys are the xxhash of the token to keep lookups O(1) over arbitrary
// token sizes, values hold the full token because a 64 bit digest on
// its own must never vouch for a session
func cacheKey(token string) string {
	return strconv.FormatUint(xxhash.Sum64String(token), 16)
}

func (t *TokenCache) Remember(token string) {
	if t == nil {
		return
	}
	t.cache.Set(cacheKey(token), []byte(token))
}

func (t *TokenCache) Known(token string) bool {
	if t == nil {
		return false
	}
	buf, err := t.cache.Get(cacheKey(token))
	if err != nil {
		return false
	}
	return auth.SafeCompare(string(buf), token)
}
