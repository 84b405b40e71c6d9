package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key holding an admin session by its token.
func (r *CacheKeyStruct) AdminSessionKey(token string) string {
	return fmt.Sprintf("admin_session:%s", token)
}

// NotificationFeedChannel returns the Redis PubSub channel carrying new admin notifications.
func (r *CacheKeyStruct) NotificationFeedChannel() string {
	return "notifications:feed"
}

var CacheKey = NewCacheKeyStruct()
