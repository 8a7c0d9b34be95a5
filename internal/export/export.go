package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/klauspost/compress/gzip"
)

type Options struct {
	Delimiter rune
	Gzip      bool // compress the file; readers detect this by content
}

// Table writes every row of table to path as a seed file. NULL values and
// empty strings both become empty fields. It returns the number of rows
// written.
func Table(ctx context.Context, db *sql.DB, dialect common.Dialect, table, path string, opts Options) (int, error) {
	if !common.IsValidTableName(table) {
		return 0, fmt.Errorf("invalid table name: %s", table)
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", common.QuoteIdentifier(dialect, table)))
	if err != nil {
		return 0, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var count int
	err = writeAtomic(path, func(w io.Writer) error {
		var out io.Writer = w
		var zw *gzip.Writer
		if opts.Gzip {
			zw = gzip.NewWriter(w)
			out = zw
		}

		var err error
		count, err = writeRows(rows, columns, out, opts.Delimiter)
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", table, err)
		}
		if zw != nil {
			if err := zw.Close(); err != nil {
				return fmt.Errorf("failed to finish gzip stream: %w", err)
			}
		}
		return nil
	})
	return count, err
}

// writeAtomic writes to a temporary file next to path and renames it over
// path once write succeeds. On failure path is left as it was.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("failed to set mode of %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func writeRows(rows *sql.Rows, columns []string, out io.Writer, delimiter rune) (int, error) {
	w := csv.NewWriter(out)
	w.Comma = delimiter

	if err := w.Write(columns); err != nil {
		return 0, err
	}

	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	record := make([]string, len(columns))

	count := 0
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return count, err
		}
		for i, v := range values {
			record[i] = v.String
		}
		if err := w.Write(record); err != nil {
			return count, err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}

	w.Flush()
	return count, w.Error()
}
