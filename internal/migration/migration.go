package migration

import (
	"context"
	"fmt"

	"github.com/Rana718/csvmigrate/internal/database"
	"github.com/Rana718/csvmigrate/internal/seeder"
	"github.com/Rana718/csvmigrate/internal/types"
)

// Spec binds one seed table to a migration version.
type Spec struct {
	Version    int64  `json:"version" yaml:"version" mapstructure:"version"`
	Table      string `json:"table" yaml:"table" mapstructure:"table"`
	ImportBoth bool   `json:"import_both" yaml:"import_both" mapstructure:"import_both"`
}

func (s Spec) String() string {
	return fmt.Sprintf("%d_seed_%s", s.Version, s.Table)
}

// Apply is the forward step of a seed migration.
func Apply(ctx context.Context, r *seeder.Resolver, sink database.TableSink, spec Spec) (types.Decision, error) {
	return r.Resolve(ctx, sink, spec.Table, spec.ImportBoth)
}

// Rollback is the reverse step: it empties the table regardless of where
// its rows came from.
func Rollback(ctx context.Context, r *seeder.Resolver, sink database.TableSink, spec Spec) error {
	return r.Rollback(ctx, sink, spec.Table)
}

// ValidateSpecs rejects empty lists, non-positive and duplicate versions.
func ValidateSpecs(specs []Spec) error {
	if len(specs) == 0 {
		return fmt.Errorf("no seed migrations configured")
	}
	seen := make(map[int64]string, len(specs))
	for _, s := range specs {
		if s.Version <= 0 {
			return fmt.Errorf("migration for table %q has invalid version %d", s.Table, s.Version)
		}
		if s.Table == "" {
			return fmt.Errorf("migration %d has no table", s.Version)
		}
		if prev, ok := seen[s.Version]; ok {
			return fmt.Errorf("duplicate migration version %d (tables %s and %s)", s.Version, prev, s.Table)
		}
		seen[s.Version] = s.Table
	}
	return nil
}
