package common

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// DialectFor maps a configured provider name to its SQL dialect.
func DialectFor(provider string) (Dialect, error) {
	switch provider {
	case "postgresql", "postgres":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database provider: %s", provider)
	}
}

// IsValidTableName reports whether name can be used both as a quoted table
// identifier and as the stem of a seed file name inside the seed directory.
func IsValidTableName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\\x00")
}

// IsValidColumnName reports whether name can be quoted as a column.
func IsValidColumnName(name string) bool {
	return name != "" && !strings.ContainsRune(name, 0)
}

func QuoteIdentifier(d Dialect, name string) string {
	if d == MySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return pq.QuoteIdentifier(name)
}
