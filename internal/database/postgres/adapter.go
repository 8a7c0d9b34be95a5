package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

type Adapter struct {
	pool      *pgxpool.Pool
	db        *sql.DB
	batchSize int
}

func New(batchSize int) *Adapter {
	if batchSize <= 0 {
		batchSize = common.DefaultBatchSize
	}
	return &Adapter{batchSize: batchSize}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	p.pool = pool
	p.db = stdlib.OpenDBFromPool(pool)
	return nil
}

func (p *Adapter) Close() error {
	if p.db != nil {
		p.db.Close()
	}
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("not connected")
	}
	return p.pool.Ping(ctx)
}

// DB exposes the pool through database/sql for the migration runner.
func (p *Adapter) DB() *sql.DB {
	return p.db
}

func (p *Adapter) InsertBatch(ctx context.Context, table string, records []types.Record) error {
	statements, err := common.BuildInsert(common.Postgres, table, records, p.batchSize)
	if err != nil {
		return err
	}
	return p.execTx(ctx, statements)
}

func (p *Adapter) TruncateCascade(ctx context.Context, table string) error {
	statements, err := common.BuildTruncate(common.Postgres, table)
	if err != nil {
		return err
	}
	return p.execTx(ctx, statements)
}

func (p *Adapter) execTx(ctx context.Context, statements []common.Statement) error {
	if len(statements) == 0 {
		return nil
	}
	if p.pool == nil {
		return fmt.Errorf("not connected")
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt.SQL, stmt.Args...); err != nil {
			return fmt.Errorf("failed to execute statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
