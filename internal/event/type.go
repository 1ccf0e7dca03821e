package event

import "time"

const CountryCacheQueue string = "country_cache_events"

type CacheEventType string

const (
	CacheRefreshed CacheEventType = "cache.refreshed"
)

// CacheEvent announces a successful cache refresh to downstream consumers.
// Published best-effort after the refresh transaction commits.
type CacheEvent struct {
	ID              string         `json:"id"`
	EventType       CacheEventType `json:"event_type"`
	Inserted        int            `json:"inserted"`
	Updated         int            `json:"updated"`
	LastRefreshedAt string         `json:"last_refreshed_at"`
	Timestamp       time.Time      `json:"timestamp"`
}
