package seeder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rana718/csvmigrate/internal/csvfile"
	"github.com/Rana718/csvmigrate/internal/database"
	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/fatih/color"
)

// Resolver decides which seed files to load for a table and forwards their
// rows to a TableSink. It keeps no state between calls.
type Resolver struct {
	opts  Options
	hooks Hooks
}

func New(opts Options, hooks Hooks) *Resolver {
	if opts.BaseDir == "" {
		opts.BaseDir = DefaultBaseDir
	}
	if opts.FilesDir == "" {
		opts.FilesDir = DefaultFilesDir
	}
	if opts.CSV.Delimiter == 0 {
		opts.CSV.Delimiter = ','
	}
	return &Resolver{opts: opts, hooks: hooks}
}

func (r *Resolver) Options() Options {
	return r.opts
}

// ParseSkipFlag interprets the skip-fake environment value. Only "1",
// "true" and "on" enable skipping; matching is case sensitive.
func ParseSkipFlag(value string) bool {
	switch value {
	case "1", "true", "on":
		return true
	}
	return false
}

// Path returns the seed file location for table and variant.
func (r *Resolver) Path(table string, variant types.Variant) string {
	return filepath.Join(r.opts.BaseDir, r.opts.FilesDir, variant.FileName(table))
}

func (r *Resolver) Exists(table string, variant types.Variant) bool {
	_, err := os.Stat(r.Path(table, variant))
	return err == nil
}

// Resolve always attempts the real data for table, then the fake data unless
// the resolver skips fake data and importBoth is false. A variant without a
// CSV file falls back to its manual import hook.
func (r *Resolver) Resolve(ctx context.Context, sink database.TableSink, table string, importBoth bool) (types.Decision, error) {
	if !common.IsValidTableName(table) {
		return types.NoneFound, fmt.Errorf("invalid table name: %s", table)
	}

	color.Cyan("🌱 Seeding %s...", table)

	var out outcome
	if err := r.importVariant(ctx, sink, table, types.Real, &out); err != nil {
		return types.NoneFound, err
	}

	if importBoth || !r.opts.SkipFake {
		if err := r.importVariant(ctx, sink, table, types.Fake, &out); err != nil {
			return types.NoneFound, err
		}
	} else {
		color.Yellow("  ⏭️  Skipping fake data for %s", table)
	}

	decision := out.decision()
	color.Green("✅ %s: %s", table, decision)
	return decision, nil
}

func (r *Resolver) importVariant(ctx context.Context, sink database.TableSink, table string, variant types.Variant, out *outcome) error {
	if r.Exists(table, variant) {
		if _, err := r.InsertFromFile(ctx, sink, table, variant); err != nil {
			return err
		}
		out.markFile(variant)
		return nil
	}

	hook := r.hooks.forVariant(variant)
	if hook == nil {
		return nil
	}

	color.Cyan("  🛠️  No %s CSV for %s, running manual import", variant, table)
	if err := hook(ctx, sink, table); err != nil {
		return fmt.Errorf("manual %s import for %s failed: %w", variant, table, err)
	}
	out.manual = true
	return nil
}

// InsertFromFile loads the CSV file for table and variant into sink with a
// single batch insert. A missing file is not an error and inserts nothing.
func (r *Resolver) InsertFromFile(ctx context.Context, sink database.TableSink, table string, variant types.Variant) (int, error) {
	if !common.IsValidTableName(table) {
		return 0, fmt.Errorf("invalid table name: %s", table)
	}

	path := r.Path(table, variant)
	if !r.Exists(table, variant) {
		return 0, nil
	}

	color.Cyan("  📝 Reading %s", path)
	records, err := csvfile.Parse(path, r.opts.CSV)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s data for %s: %w", variant, table, err)
	}

	if err := sink.InsertBatch(ctx, table, records); err != nil {
		return 0, fmt.Errorf("failed to insert %s data into %s: %w", variant, table, err)
	}

	color.Green("  ✅ %d %s rows inserted into %s", len(records), variant, table)
	return len(records), nil
}

// Rollback truncates table with identity reset and cascade. It does not look
// at seed files or the skip flag.
func (r *Resolver) Rollback(ctx context.Context, sink database.TableSink, table string) error {
	if !common.IsValidTableName(table) {
		return fmt.Errorf("invalid table name: %s", table)
	}

	color.Yellow("🗑️  Truncating %s...", table)
	if err := sink.TruncateCascade(ctx, table); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", table, err)
	}
	color.Green("✅ %s truncated", table)
	return nil
}

// Plan reports the steps Resolve would take for table without touching the
// sink or running hooks.
func (r *Resolver) Plan(table string, importBoth bool) (Plan, error) {
	if !common.IsValidTableName(table) {
		return Plan{}, fmt.Errorf("invalid table name: %s", table)
	}

	plan := Plan{Table: table, ImportBoth: importBoth, SkipFake: r.opts.SkipFake}
	var out outcome
	for _, variant := range []types.Variant{types.Real, types.Fake} {
		step := Step{Variant: variant, Path: r.Path(table, variant)}
		switch {
		case variant == types.Fake && !importBoth && r.opts.SkipFake:
			step.Action = ActionSkip
		case r.Exists(table, variant):
			step.Action = ActionImportFile
			out.markFile(variant)
		case r.hooks.forVariant(variant) != nil:
			step.Action = ActionManualHook
			out.manual = true
		default:
			step.Action = ActionNoop
		}
		plan.Steps = append(plan.Steps, step)
	}
	plan.Decision = out.decision()
	return plan, nil
}

type outcome struct {
	realFile bool
	fakeFile bool
	manual   bool
}

func (o *outcome) markFile(v types.Variant) {
	if v == types.Fake {
		o.fakeFile = true
	} else {
		o.realFile = true
	}
}

func (o outcome) decision() types.Decision {
	switch {
	case o.realFile && o.fakeFile:
		return types.ImportedBoth
	case o.realFile:
		return types.ImportedReal
	case o.fakeFile:
		return types.ImportedFake
	case o.manual:
		return types.ManualOnly
	}
	return types.NoneFound
}
