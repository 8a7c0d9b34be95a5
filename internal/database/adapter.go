package database

import (
	"context"
	"database/sql"

	"github.com/Rana718/csvmigrate/internal/types"
)

// TableSink is the persistence target for seed data. Each call is
// expected to be atomic on its own; callers do not wrap it in a
// transaction.
type TableSink interface {
	// InsertBatch inserts records into table. Every record shares the
	// same columns.
	InsertBatch(ctx context.Context, table string, records []types.Record) error
	// TruncateCascade empties table, resets its identity counters and
	// cascades to dependent rows where the database supports it.
	TruncateCascade(ctx context.Context, table string) error
}

// DatabaseAdapter is a TableSink that owns its connection.
type DatabaseAdapter interface {
	TableSink

	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error
	// DB is the database/sql handle used by the migration runner.
	DB() *sql.DB
}
