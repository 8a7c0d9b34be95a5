package database

import (
	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/database/mysql"
	"github.com/Rana718/csvmigrate/internal/database/postgres"
	"github.com/Rana718/csvmigrate/internal/database/sqlite"
)

// NewAdapter returns an unconnected adapter for provider.
func NewAdapter(provider string, batchSize int) (DatabaseAdapter, error) {
	dialect, err := common.DialectFor(provider)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case common.Postgres:
		return postgres.New(batchSize), nil
	case common.MySQL:
		return mysql.New(batchSize), nil
	default:
		return sqlite.New(batchSize), nil
	}
}
