package models

import "time"

// SystemMetrics is a lightweight view of the service instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	GenerationsTotal         uint64    `json:"generationsTotal"`
	LastGenerationMs         float64   `json:"lastGenerationMs"`
	SessionsSeated           uint64    `json:"sessionsSeated"`
	SessionsFailed           uint64    `json:"sessionsFailed"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
