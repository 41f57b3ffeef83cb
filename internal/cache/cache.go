package cache

import "time"

// Cache is a byte-oriented store with per-entry TTLs.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ReportKey builds the cache key for an analysis chain ID. The chain ID is
// already a digest, so it is namespaced rather than re-hashed.
func ReportKey(chainID string) string {
	return "axislab:report:v1:" + chainID
}
