package seeder

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataGenerator_IsDeterministicForSeed(t *testing.T) {
	cols := []string{"id", "name", "email", "created_at", "account_uuid"}

	a := NewDataGenerator(42).Records(cols, 5)
	b := NewDataGenerator(42).Records(cols, 5)
	require.Len(t, a, 5)
	for i := range a {
		assert.Equal(t, a[i].Args()[:2], b[i].Args()[:2])
		assert.Equal(t, a[i].Args()[3], b[i].Args()[3])
	}
}

func TestDataGenerator_ColumnHints(t *testing.T) {
	g := NewDataGenerator(1)

	email := g.GenerateForColumn("email")
	require.NotNil(t, email)
	assert.True(t, strings.Contains(*email, "@"))

	assert.Nil(t, g.GenerateForColumn("user_id"))

	id := g.GenerateForColumn("account_uuid")
	require.NotNil(t, id)
	_, err := uuid.Parse(*id)
	assert.NoError(t, err)

	flag := g.GenerateForColumn("is_active")
	require.NotNil(t, flag)
	assert.Contains(t, []string{"true", "false"}, *flag)
}

func TestDataGenerator_RecordsDropIDColumn(t *testing.T) {
	records := NewDataGenerator(7).Records([]string{"id", "name"}, 3)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, []string{"name"}, r.Columns)
	}
}

func TestSyntheticFake_UsesRealHeader(t *testing.T) {
	base, opts := newFixture(t)
	writeSeed(t, base, "users.csv", "id,name,email\n1,alice,a@example.com\n")

	hooks := Hooks{Fake: SyntheticFake(opts, 4, 99)}
	sink := &recordingSink{}
	_, err := New(opts, hooks).Resolve(context.Background(), sink, "users", false)
	require.NoError(t, err)

	require.Len(t, sink.inserts, 2)
	generated := sink.inserts[1].records
	assert.Len(t, generated, 4)
	assert.Equal(t, []string{"name", "email"}, generated[0].Columns)
}

func TestSyntheticFake_NoRealFileDoesNothing(t *testing.T) {
	_, opts := newFixture(t)

	sink := &recordingSink{}
	err := SyntheticFake(opts, 4, 99)(context.Background(), sink, "users")
	require.NoError(t, err)
	assert.Empty(t, sink.inserts)
}
