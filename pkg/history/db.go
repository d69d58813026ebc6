package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DriverPostgres is the lib/pq driver name
	DriverPostgres = "postgres"
	// DriverSQLite is the mattn/go-sqlite3 driver name
	DriverSQLite = "sqlite3"
)

// DBRecorder persists validation runs to a SQL database.
type DBRecorder struct {
	db     *sql.DB
	driver string
}

// Open connects to the configured database and prepares the schema.
func Open(cfg Config) (*DBRecorder, error) {
	db, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	rec, err := NewDBRecorder(db, cfg.Driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return rec, nil
}

// NewDBRecorder wraps an existing connection and ensures the schema exists.
func NewDBRecorder(db *sql.DB, driver string) (*DBRecorder, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported history driver: %s", driver)
	}

	rec := &DBRecorder{db: db, driver: driver}
	if err := rec.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to ensure validation_runs table: %w", err)
	}
	return rec, nil
}

// DB exposes the underlying connection for health checks.
func (r *DBRecorder) DB() *sql.DB {
	return r.db
}

func (r *DBRecorder) ensureTable() error {
	var query string
	switch r.driver {
	case DriverPostgres:
		query = `
		CREATE TABLE IF NOT EXISTS validation_runs (
			id BIGSERIAL PRIMARY KEY,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			request_id VARCHAR(100),
			device VARCHAR(255) NOT NULL,
			task_hash VARCHAR(64) NOT NULL,
			qubit_count INTEGER NOT NULL,
			valid BOOLEAN NOT NULL,
			violations INTEGER NOT NULL,
			counts JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_validation_runs_timestamp ON validation_runs(timestamp DESC);
		CREATE INDEX IF NOT EXISTS idx_validation_runs_device ON validation_runs(device);
		CREATE INDEX IF NOT EXISTS idx_validation_runs_task_hash ON validation_runs(task_hash);
		`
	case DriverSQLite:
		query = `
		CREATE TABLE IF NOT EXISTS validation_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TIMESTAMP NOT NULL,
			request_id TEXT,
			device TEXT NOT NULL,
			task_hash TEXT NOT NULL,
			qubit_count INTEGER NOT NULL,
			valid BOOLEAN NOT NULL,
			violations INTEGER NOT NULL,
			counts TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_validation_runs_timestamp ON validation_runs(timestamp);
		CREATE INDEX IF NOT EXISTS idx_validation_runs_device ON validation_runs(device);
		CREATE INDEX IF NOT EXISTS idx_validation_runs_task_hash ON validation_runs(task_hash);
		`
	}

	_, err := r.db.Exec(query)
	return err
}

// rebind converts $n placeholders to the ? form SQLite expects. Every query
// in this package lists its arguments in placeholder order, so positional
// substitution is safe.
func (r *DBRecorder) rebind(query string) string {
	if r.driver != DriverSQLite {
		return query
	}

	var b strings.Builder
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Record inserts one validation run and fills in its assigned ID.
func (r *DBRecorder) Record(ctx context.Context, rec *Record) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	var countsJSON []byte
	var err error
	if rec.Counts != nil {
		countsJSON, err = json.Marshal(rec.Counts)
		if err != nil {
			return fmt.Errorf("failed to marshal violation counts: %w", err)
		}
	}

	if r.driver == DriverPostgres {
		query := `
			INSERT INTO validation_runs (
				timestamp, request_id, device, task_hash,
				qubit_count, valid, violations, counts
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
		if err := r.db.QueryRowContext(ctx, query,
			rec.Timestamp, rec.RequestID, rec.Device, rec.TaskHash,
			rec.QubitCount, rec.Valid, rec.Violations, countsJSON,
		).Scan(&rec.ID); err != nil {
			return fmt.Errorf("failed to insert validation run: %w", err)
		}
		return nil
	}

	query := r.rebind(`
		INSERT INTO validation_runs (
			timestamp, request_id, device, task_hash,
			qubit_count, valid, violations, counts
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	res, err := r.db.ExecContext(ctx, query,
		rec.Timestamp, rec.RequestID, rec.Device, rec.TaskHash,
		rec.QubitCount, rec.Valid, rec.Violations, countsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert validation run: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted ID: %w", err)
	}
	return nil
}

// Search returns validation runs matching the filter, newest first.
func (r *DBRecorder) Search(ctx context.Context, filter SearchFilter) ([]*Record, error) {
	query := `
		SELECT id, timestamp, request_id, device, task_hash,
			qubit_count, valid, violations, counts
		FROM validation_runs
		WHERE 1=1
	`

	args := []interface{}{}
	argCount := 1

	if filter.Device != "" {
		query += fmt.Sprintf(" AND device = $%d", argCount)
		args = append(args, filter.Device)
		argCount++
	}
	if filter.TaskHash != "" {
		query += fmt.Sprintf(" AND task_hash = $%d", argCount)
		args = append(args, filter.TaskHash)
		argCount++
	}
	if filter.Valid != nil {
		query += fmt.Sprintf(" AND valid = $%d", argCount)
		args = append(args, *filter.Valid)
		argCount++
	}
	if !filter.Since.IsZero() {
		query += fmt.Sprintf(" AND timestamp >= $%d", argCount)
		args = append(args, filter.Since)
		argCount++
	}
	if !filter.Until.IsZero() {
		query += fmt.Sprintf(" AND timestamp <= $%d", argCount)
		args = append(args, filter.Until)
		argCount++
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argCount)
		args = append(args, filter.Limit)
		argCount++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argCount)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search validation runs: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		rec := &Record{}
		var requestID sql.NullString
		var countsJSON []byte

		if err := rows.Scan(
			&rec.ID, &rec.Timestamp, &requestID, &rec.Device, &rec.TaskHash,
			&rec.QubitCount, &rec.Valid, &rec.Violations, &countsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan validation run: %w", err)
		}

		rec.RequestID = requestID.String
		if len(countsJSON) > 0 {
			rec.Counts = make(map[string]int)
			if err := json.Unmarshal(countsJSON, &rec.Counts); err != nil {
				return nil, fmt.Errorf("failed to unmarshal violation counts: %w", err)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating validation runs: %w", err)
	}
	return records, nil
}

// Stats aggregates validation runs over a time range. Zero times mean an
// open-ended range.
func (r *DBRecorder) Stats(ctx context.Context, since, until time.Time) (*Stats, error) {
	stats := &Stats{
		RunsByDevice:         make(map[string]int64),
		ViolationsByCategory: make(map[string]int64),
	}

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argCount := 1

	if !since.IsZero() {
		whereClause += fmt.Sprintf(" AND timestamp >= $%d", argCount)
		args = append(args, since)
		argCount++
	}
	if !until.IsZero() {
		whereClause += fmt.Sprintf(" AND timestamp <= $%d", argCount)
		args = append(args, until)
		argCount++
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN valid THEN 1 ELSE 0 END), 0)
		FROM validation_runs %s`, whereClause)
	if err := r.db.QueryRowContext(ctx, r.rebind(query), args...).Scan(&stats.TotalRuns, &stats.ValidRuns); err != nil {
		return nil, fmt.Errorf("failed to count validation runs: %w", err)
	}
	stats.InvalidRuns = stats.TotalRuns - stats.ValidRuns

	query = fmt.Sprintf(`
		SELECT device, COUNT(*)
		FROM validation_runs %s
		GROUP BY device`, whereClause)
	rows, err := r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs by device: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var device string
		var count int64
		if err := rows.Scan(&device, &count); err != nil {
			return nil, err
		}
		stats.RunsByDevice[device] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device counts: %w", err)
	}

	// Category counts live in the JSON counts column, so invalid runs are
	// aggregated in process.
	query = fmt.Sprintf(`
		SELECT counts
		FROM validation_runs %s AND violations > 0`, whereClause)
	rows, err = r.db.QueryContext(ctx, r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load violation counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var countsJSON []byte
		if err := rows.Scan(&countsJSON); err != nil {
			return nil, err
		}
		if len(countsJSON) == 0 {
			continue
		}
		counts := make(map[string]int)
		if err := json.Unmarshal(countsJSON, &counts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal violation counts: %w", err)
		}
		for category, n := range counts {
			stats.ViolationsByCategory[category] += int64(n)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating violation counts: %w", err)
	}

	return stats, nil
}

// Cleanup deletes runs older than the cutoff and reports how many went.
func (r *DBRecorder) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	query := r.rebind("DELETE FROM validation_runs WHERE timestamp < $1")
	res, err := r.db.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old validation runs: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted runs: %w", err)
	}
	return deleted, nil
}

// Close closes the underlying database connection.
func (r *DBRecorder) Close() error {
	return r.db.Close()
}
