package cache

import (
	"time"

	"github.com/raaihank/pii-shield/internal/privacy"
)

// CachedResult is a stored detection outcome for one (text, threshold,
// types) triple. The raw text is never stored; the key is a hash.
type CachedResult struct {
	Matches  []privacy.Match `json:"matches"`
	CachedAt time.Time       `json:"cached_at"`
	TTL      int64           `json:"ttl"`
}

// LookupResult represents a cache lookup outcome
type LookupResult struct {
	Result   *CachedResult `json:"result"`
	CacheHit bool          `json:"cache_hit"`
}

// Stats represents cache performance statistics
type Stats struct {
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRate     float64 `json:"hit_rate"`
	TotalKeys   int64   `json:"total_keys"`
	MemoryUsage int64   `json:"memory_usage_bytes"`
}

// Config contains cache configuration
type Config struct {
	RedisURL       string        `yaml:"redis_url" mapstructure:"redis_url"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinIdleConns   int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DefaultTTL     time.Duration `yaml:"default_ttl" mapstructure:"default_ttl"`
	KeyPrefix      string        `yaml:"key_prefix" mapstructure:"key_prefix"`
}
