package history

import (
	"time"
)

// Record is one persisted validation run.
type Record struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`

	Device     string `json:"device"`
	TaskHash   string `json:"task_hash"`
	QubitCount int    `json:"qubit_count"`

	Valid      bool           `json:"valid"`
	Violations int            `json:"violations"`
	Counts     map[string]int `json:"counts,omitempty"`
}

// SearchFilter narrows a history query. Zero values mean "no constraint".
type SearchFilter struct {
	Device   string
	TaskHash string
	Valid    *bool

	Since time.Time
	Until time.Time

	Limit  int
	Offset int
}

// Stats summarizes validation runs over a time range.
type Stats struct {
	TotalRuns   int64 `json:"total_runs"`
	ValidRuns   int64 `json:"valid_runs"`
	InvalidRuns int64 `json:"invalid_runs"`

	RunsByDevice         map[string]int64 `json:"runs_by_device"`
	ViolationsByCategory map[string]int64 `json:"violations_by_category"`
}

// Config holds history store configuration
type Config struct {
	Enabled bool

	// Driver is the database/sql driver name: "postgres" or "sqlite3"
	Driver string

	// URL is the connection string for the driver
	URL string

	MaxOpenConns int
	MaxIdleConns int

	// Retention is how long records are kept; zero disables cleanup
	Retention time.Duration

	// CleanupSchedule is a cron expression for the retention job
	CleanupSchedule string
}

// DefaultConfig returns the default history configuration
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		Driver:          "postgres",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		Retention:       90 * 24 * time.Hour,
		CleanupSchedule: "0 3 * * *",
	}
}
