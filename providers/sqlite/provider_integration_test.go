//go:build integration

package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlfrag/connector"
	"github.com/Konsultn-Engineering/sqlfrag/query"
)

func TestSQLiteRunsFlattenedStatements(t *testing.T) {
	ctx := context.Background()

	conn, err := connector.Open(ctx, connector.Config{Driver: Driver, Database: ":memory:"})
	if err != nil {
		t.Skipf("SQLite unavailable: %v", err)
	}
	defer conn.Close()
	require.NoError(t, conn.Health(ctx))

	r := connector.NewRunner(conn)

	_, err = r.Exec(ctx, query.Raw(`CREATE TABLE locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		state TEXT NOT NULL,
		city TEXT NOT NULL,
		display_name TEXT NOT NULL,
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`))
	require.NoError(t, err)

	insert := func(state, city, display string, deleted bool) {
		t.Helper()
		_, err := r.Exec(ctx, query.MustNew(
			"INSERT INTO locations (state, city, display_name, is_deleted) VALUES ($1, $2, $3, $4)",
			state, city, display, deleted))
		require.NoError(t, err)
	}
	insert("California", "San Francisco", "SF Main", false)
	insert("California", "Oakland", "San Francisco", false)
	insert("California", "San Francisco", "SF Annex", true)
	insert("Nevada", "Reno", "Reno", false)

	city := query.MustNew("city = $1 OR display_name = $1", "San Francisco")
	where, err := query.And(query.MustNew("state = $1", "California"), city)
	require.NoError(t, err)
	root := query.MustNew("SELECT id FROM locations WHERE $1 AND is_deleted = $2 ORDER BY id", where, false)

	stmt, err := r.Flatten(root)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM locations WHERE (state = ?1) AND (city = ?2 OR display_name = ?2) AND is_deleted = ?3 ORDER BY id", stmt.SQL)

	rows, err := r.Query(ctx, root)
	require.NoError(t, err)
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int64{1, 2}, ids)
}
