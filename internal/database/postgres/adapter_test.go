package postgres

import (
	"context"
	"testing"

	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestAdapter_NotConnected(t *testing.T) {
	a := New(0)
	ctx := context.Background()

	assert.Error(t, a.Ping(ctx))
	assert.Error(t, a.TruncateCascade(ctx, "users"))

	v := "1"
	err := a.InsertBatch(ctx, "users", []types.Record{{Columns: []string{"id"}, Values: []*string{&v}}})
	assert.ErrorContains(t, err, "not connected")

	// nothing to insert never touches the pool
	assert.NoError(t, a.InsertBatch(ctx, "users", nil))
	assert.NoError(t, a.Close())
}

func TestAdapter_ConnectRejectsBadURL(t *testing.T) {
	err := New(0).Connect(context.Background(), "postgres://%zz")
	assert.ErrorContains(t, err, "failed to parse connection URL")
}
