package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain dsn", "root:pw@tcp(localhost:3306)/app", "root:pw@tcp(localhost:3306)/app"},
		{"url", "mysql://root:pw@localhost:3306/app", "root:pw@tcp(localhost:3306)/app"},
		{"ssl mode", "mysql://u:p@db:3306/app?ssl-mode=REQUIRED", "u:p@tcp(db:3306)/app?tls=skip-verify"},
		{"sslmode", "mysql://u:p@db:3306/app?sslmode=disable", "u:p@tcp(db:3306)/app?tls=false"},
		{"at in password", "mysql://u:p@ss@db:3306/app", "u:p@ss@tcp(db:3306)/app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DSN(tt.url))
		})
	}
}
