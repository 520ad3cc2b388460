package database

import (
	"context"
	"time"
)

// PoolStats is a snapshot of the gateway's sql connection pool.
type PoolStats struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
	WaitDurationMs  int64 `json:"wait_duration_ms"`
	MaxOpenConns    int   `json:"max_open_conns"`
}

// HealthStatus reports database reachability and pool pressure. The trace
// writer shares this pool, so sustained waits here show up as analyze latency.
type HealthStatus struct {
	Status         string    `json:"status"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	Pool           PoolStats `json:"pool"`
}

// Health pings the database and snapshots the pool. On failure the partial
// status is returned alongside the error so handlers can still report it.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	start := time.Now()
	db := c.DB()

	if err := db.PingContext(ctx); err != nil {
		return &HealthStatus{
			Status:         "unhealthy",
			ResponseTimeMs: time.Since(start).Milliseconds(),
		}, err
	}

	stats := db.Stats()
	return &HealthStatus{
		Status:         "healthy",
		ResponseTimeMs: time.Since(start).Milliseconds(),
		Pool: PoolStats{
			OpenConnections: stats.OpenConnections,
			InUse:           stats.InUse,
			Idle:            stats.Idle,
			WaitCount:       stats.WaitCount,
			WaitDurationMs:  stats.WaitDuration.Milliseconds(),
			MaxOpenConns:    stats.MaxOpenConnections,
		},
	}, nil
}
