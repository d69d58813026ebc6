package history

import (
	"context"
	"time"
)

// Recorder persists and queries validation runs.
type Recorder interface {
	Record(ctx context.Context, rec *Record) error
	Search(ctx context.Context, filter SearchFilter) ([]*Record, error)
	Stats(ctx context.Context, since, until time.Time) (*Stats, error)
	Cleanup(ctx context.Context, olderThan time.Time) (int64, error)
	Close() error
}

// NopRecorder discards every record. Used when no history database is
// configured.
type NopRecorder struct{}

func (NopRecorder) Record(ctx context.Context, rec *Record) error { return nil }

func (NopRecorder) Search(ctx context.Context, filter SearchFilter) ([]*Record, error) {
	return []*Record{}, nil
}

func (NopRecorder) Stats(ctx context.Context, since, until time.Time) (*Stats, error) {
	return &Stats{
		RunsByDevice:         make(map[string]int64),
		ViolationsByCategory: make(map[string]int64),
	}, nil
}

func (NopRecorder) Cleanup(ctx context.Context, olderThan time.Time) (int64, error) {
	return 0, nil
}

func (NopRecorder) Close() error { return nil }
