package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{
		"smartjects", "proposals", "milestones", "deliverables",
		"contracts", "negotiation_messages",
	} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestMigrate_PercentageCheck(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO smartjects (id, ref, title, created_at, updated_at)
		VALUES ('s1', 'SJ-001', 'Test', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO proposals (id, smartject_id, author, role, title, start_date, created_at, updated_at)
		VALUES ('p1', 's1', 'alice', 'provider', 'Offer', '2024-01-01', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO milestones (id, proposal_id, name, percentage, due_date, created_at, updated_at)
		VALUES ('m1', 'p1', 'Bad', 0, '2024-02-01', '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	assert.Error(t, err, "zero percentage should violate the check constraint")
}
