package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/seeder"
	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/fatih/color"
	"github.com/pressly/goose/v3"
)

// Result describes one applied or reverted seed migration.
type Result struct {
	Version  int64
	Table    string
	Duration time.Duration
	Decision types.Decision
}

// Runner drives seed migrations through goose. Each migration runs inside
// a goose-managed transaction, and the version table is updated in the
// same transaction.
type Runner struct {
	provider  *goose.Provider
	specs     map[int64]Spec
	decisions map[int64]types.Decision
}

func gooseDialect(d common.Dialect) (goose.Dialect, error) {
	switch d {
	case common.Postgres:
		return goose.DialectPostgres, nil
	case common.MySQL:
		return goose.DialectMySQL, nil
	case common.SQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %s", d)
	}
}

func NewRunner(db *sql.DB, dialect common.Dialect, r *seeder.Resolver, specs []Spec, batchSize int) (*Runner, error) {
	if err := ValidateSpecs(specs); err != nil {
		return nil, err
	}
	gd, err := gooseDialect(dialect)
	if err != nil {
		return nil, err
	}

	runner := &Runner{
		specs:     make(map[int64]Spec, len(specs)),
		decisions: make(map[int64]types.Decision),
	}

	migrations := make([]*goose.Migration, 0, len(specs))
	for _, spec := range specs {
		spec := spec
		runner.specs[spec.Version] = spec

		up := &goose.GoFunc{
			Mode: goose.TransactionEnabled,
			RunTx: func(ctx context.Context, tx *sql.Tx) error {
				decision, err := Apply(ctx, r, common.NewSQLSink(tx, dialect, batchSize), spec)
				if err != nil {
					return err
				}
				runner.decisions[spec.Version] = decision
				return nil
			},
		}
		down := &goose.GoFunc{
			Mode: goose.TransactionEnabled,
			RunTx: func(ctx context.Context, tx *sql.Tx) error {
				return Rollback(ctx, r, common.NewSQLSink(tx, dialect, batchSize), spec)
			},
		}
		migrations = append(migrations, goose.NewGoMigration(spec.Version, up, down))
	}

	provider, err := goose.NewProvider(gd, db, nil,
		goose.WithGoMigrations(migrations...),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	runner.provider = provider
	return runner, nil
}

// Up applies every pending seed migration in version order.
func (r *Runner) Up(ctx context.Context) ([]Result, error) {
	results, err := r.provider.Up(ctx)
	out := r.convert(results)
	if err != nil {
		return out, fmt.Errorf("failed to apply seed migrations: %w", err)
	}
	return out, nil
}

// Down reverts the most recently applied seed migration. It returns nil
// when nothing is applied.
func (r *Runner) Down(ctx context.Context) (*Result, error) {
	version, err := r.provider.GetDBVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current version: %w", err)
	}
	if version == 0 {
		return nil, nil
	}

	res, err := r.provider.Down(ctx)
	if err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to revert seed migration: %w", err)
	}
	converted := r.convert([]*goose.MigrationResult{res})
	if len(converted) == 0 {
		return nil, nil
	}
	return &converted[0], nil
}

func (r *Runner) Status(ctx context.Context) ([]types.MigrationStatusItem, error) {
	statuses, err := r.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	items := make([]types.MigrationStatusItem, 0, len(statuses))
	for _, s := range statuses {
		if s == nil || s.Source == nil {
			continue
		}
		item := types.MigrationStatusItem{
			Version: s.Source.Version,
			Table:   r.specs[s.Source.Version].Table,
			Status:  string(s.State),
		}
		if s.State == goose.StateApplied && !s.AppliedAt.IsZero() {
			at := s.AppliedAt
			item.AppliedAt = &at
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Version < items[j].Version })
	return items, nil
}

func (r *Runner) Close() error {
	return r.provider.Close()
}

func (r *Runner) convert(results []*goose.MigrationResult) []Result {
	out := make([]Result, 0, len(results))
	for _, res := range results {
		if res == nil || res.Source == nil {
			continue
		}
		if res.Error != nil {
			color.Red("❌ %s failed: %v", r.specs[res.Source.Version], res.Error)
			continue
		}
		out = append(out, Result{
			Version:  res.Source.Version,
			Table:    r.specs[res.Source.Version].Table,
			Duration: res.Duration,
			Decision: r.decisions[res.Source.Version],
		})
	}
	return out
}
