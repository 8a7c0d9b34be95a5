package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/types"
	_ "github.com/go-sql-driver/mysql"
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

var sslReplacer = strings.NewReplacer(
	"ssl-mode=REQUIRED", "tls=skip-verify",
	"ssl-mode=DISABLED", "tls=false",
	"ssl-mode=VERIFY_CA", "tls=true",
	"ssl-mode=VERIFY_IDENTITY", "tls=true",
	"sslmode=require", "tls=skip-verify",
	"sslmode=disable", "tls=false",
	"sslmode=verify-ca", "tls=true",
	"sslmode=verify-full", "tls=true",
)

// DSN turns a mysql:// URL into a go-sql-driver DSN. Anything else is
// returned unchanged.
func DSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := sslReplacer.Replace(remainder[slashIndex+1:])

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	db, err := sql.Open("mysql", DSN(url))
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	m.db = db
	return nil
}

func (m *Adapter) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("not connected")
	}
	return m.db.PingContext(ctx)
}

func (m *Adapter) DB() *sql.DB {
	return m.db
}

func (m *Adapter) InsertBatch(ctx context.Context, table string, records []types.Record) error {
	return m.inTx(ctx, func(sink *common.SQLSink) error {
		return sink.InsertBatch(ctx, table, records)
	})
}

// TruncateCascade toggles FOREIGN_KEY_CHECKS, which is per session, so all
// statements run on the transaction's single connection.
func (m *Adapter) TruncateCascade(ctx context.Context, table string) error {
	return m.inTx(ctx, func(sink *common.SQLSink) error {
		return sink.TruncateCascade(ctx, table)
	})
}

func (m *Adapter) inTx(ctx context.Context, fn func(*common.SQLSink) error) error {
	if m.db == nil {
		return fmt.Errorf("not connected")
	}
	return common.RunInTx(ctx, m.db, func(tx *sql.Tx) error {
		return fn(common.NewSQLSink(tx, common.MySQL, m.batchSize))
	})
}
