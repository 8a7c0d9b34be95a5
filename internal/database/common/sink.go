package common

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rana718/csvmigrate/internal/types"
)

// Executor is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SQLSink writes seed data through a database/sql executor. It does not
// open transactions itself; wrap it with RunInTx or hand it a *sql.Tx.
type SQLSink struct {
	exec      Executor
	dialect   Dialect
	batchSize int
}

func NewSQLSink(exec Executor, dialect Dialect, batchSize int) *SQLSink {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SQLSink{exec: exec, dialect: dialect, batchSize: batchSize}
}

func (s *SQLSink) InsertBatch(ctx context.Context, table string, records []types.Record) error {
	statements, err := BuildInsert(s.dialect, table, records, s.batchSize)
	if err != nil {
		return err
	}
	return s.run(ctx, statements)
}

func (s *SQLSink) TruncateCascade(ctx context.Context, table string) error {
	statements, err := BuildTruncate(s.dialect, table)
	if err != nil {
		return err
	}
	return s.run(ctx, statements)
}

func (s *SQLSink) run(ctx context.Context, statements []Statement) error {
	for i, stmt := range statements {
		if _, err := s.exec.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			if stmt.Optional {
				continue
			}
			return fmt.Errorf("failed to execute statement %d: %w", i+1, err)
		}
	}
	return nil
}

// RunInTx runs fn inside a transaction on db, committing on success.
func RunInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
