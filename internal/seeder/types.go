package seeder

import (
	"context"

	"github.com/Rana718/csvmigrate/internal/csvfile"
	"github.com/Rana718/csvmigrate/internal/database"
	"github.com/Rana718/csvmigrate/internal/types"
)

const (
	DefaultBaseDir  = "."
	DefaultFilesDir = "phinx/db/files"
	DefaultSkipEnv  = "SKIP_FAKE"
)

type Options struct {
	BaseDir  string          // Root the files directory is resolved against
	FilesDir string          // Directory holding {table}.csv and {table}_fake.csv
	CSV      csvfile.Options // Delimiter and row offset
	SkipFake bool            // Skip fake data unless a caller forces both
}

func DefaultOptions() Options {
	return Options{
		BaseDir:  DefaultBaseDir,
		FilesDir: DefaultFilesDir,
		CSV:      csvfile.DefaultOptions(),
	}
}

// ManualImportFunc seeds table programmatically when no CSV file exists for
// a variant.
type ManualImportFunc func(ctx context.Context, sink database.TableSink, table string) error

// Hooks are invoked in place of a missing CSV file. A nil hook does nothing.
type Hooks struct {
	Real ManualImportFunc
	Fake ManualImportFunc
}

func (h Hooks) forVariant(v types.Variant) ManualImportFunc {
	if v == types.Fake {
		return h.Fake
	}
	return h.Real
}

type Action string

const (
	ActionImportFile Action = "import_file"
	ActionManualHook Action = "manual_hook"
	ActionNoop       Action = "noop"
	ActionSkip       Action = "skip"
)

type Step struct {
	Variant types.Variant `json:"variant" yaml:"variant"`
	Action  Action        `json:"action" yaml:"action"`
	Path    string        `json:"path" yaml:"path"`
}

// Plan describes what Resolve would do for a table given the files on disk
// right now.
type Plan struct {
	Table      string         `json:"table" yaml:"table"`
	ImportBoth bool           `json:"import_both" yaml:"import_both"`
	SkipFake   bool           `json:"skip_fake" yaml:"skip_fake"`
	Steps      []Step         `json:"steps" yaml:"steps"`
	Decision   types.Decision `json:"decision" yaml:"decision"`
}
