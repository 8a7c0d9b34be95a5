package common

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/csvmigrate/internal/types"
)

const DefaultBatchSize = 100

type Statement struct {
	SQL  string
	Args []interface{}
	// Optional statements may fail without failing the operation.
	Optional bool
}

func builderFor(d Dialect) squirrel.StatementBuilderType {
	if d == Postgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// BuildInsert renders multi-row INSERT statements for records, batchSize
// rows per statement. All records must share the first record's columns.
func BuildInsert(d Dialect, table string, records []types.Record, batchSize int) ([]Statement, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if !IsValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	columns := records[0].Columns
	if len(columns) == 0 {
		return nil, fmt.Errorf("no columns to insert into %s", table)
	}
	quoted := make([]string, len(columns))
	for i, col := range columns {
		if !IsValidColumnName(col) {
			return nil, fmt.Errorf("invalid column name: %s", col)
		}
		quoted[i] = QuoteIdentifier(d, col)
	}

	qb := builderFor(d)
	var statements []Statement
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		insert := qb.Insert(QuoteIdentifier(d, table)).Columns(quoted...)
		for _, record := range records[start:end] {
			if len(record.Columns) != len(columns) {
				return nil, fmt.Errorf("record has %d columns, expected %d", len(record.Columns), len(columns))
			}
			insert = insert.Values(record.Args()...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		statements = append(statements, Statement{SQL: query, Args: args})
	}

	return statements, nil
}

// BuildTruncate renders the statements that empty table, reset its
// identity counter and cascade where the dialect allows.
func BuildTruncate(d Dialect, table string) ([]Statement, error) {
	if !IsValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	name := QuoteIdentifier(d, table)

	switch d {
	case Postgres:
		return []Statement{{SQL: fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", name)}}, nil
	case MySQL:
		return []Statement{
			{SQL: "SET FOREIGN_KEY_CHECKS = 0"},
			{SQL: fmt.Sprintf("TRUNCATE TABLE %s", name)},
			{SQL: "SET FOREIGN_KEY_CHECKS = 1"},
		}, nil
	case SQLite:
		return []Statement{
			{SQL: fmt.Sprintf("DELETE FROM %s", name)},
			{SQL: "DELETE FROM sqlite_sequence WHERE name = ?", Args: []interface{}{table}, Optional: true},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", d)
	}
}
