package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/types"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	db        *sql.DB
	batchSize int
}

func New(batchSize int) *Adapter {
	if batchSize <= 0 {
		batchSize = common.DefaultBatchSize
	}
	return &Adapter{batchSize: batchSize}
}

// DSN strips the sqlite:// scheme and enables WAL when the URL carries no
// options of its own.
func DSN(url string) string {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?cache=shared&_journal_mode=WAL"
	}
	return dbPath
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("sqlite3", DSN(url))
	if err != nil {
		return fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s.db = db
	return nil
}

func (s *Adapter) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("not connected")
	}
	return s.db.PingContext(ctx)
}

func (s *Adapter) DB() *sql.DB {
	return s.db
}

func (s *Adapter) InsertBatch(ctx context.Context, table string, records []types.Record) error {
	return s.inTx(ctx, func(sink *common.SQLSink) error {
		return sink.InsertBatch(ctx, table, records)
	})
}

func (s *Adapter) TruncateCascade(ctx context.Context, table string) error {
	return s.inTx(ctx, func(sink *common.SQLSink) error {
		return sink.TruncateCascade(ctx, table)
	})
}

func (s *Adapter) inTx(ctx context.Context, fn func(*common.SQLSink) error) error {
	if s.db == nil {
		return fmt.Errorf("not connected")
	}
	return common.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(common.NewSQLSink(tx, common.SQLite, s.batchSize))
	})
}
