package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-pass-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildUpsertItemsQuery_GuardsRevision(t *testing.T) {
	query, args, err := buildUpsertItemsQuery("s1", []models.Item{{ItemID: "a"}, {ItemID: "b"}})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "insert into items")
	assert.Contains(t, q, "on conflict(share_id, item_id)")
	assert.Contains(t, q, "where excluded.revision >= items.revision")
	assert.Len(t, args, 2*len(itemColumns))
	assert.Equal(t, "s1", args[0])
	assert.Equal(t, "s1", args[len(itemColumns)], "share id is forced from the batch")
}

func Test_buildDeleteItemsQuery_UsesIn(t *testing.T) {
	query, args, err := buildDeleteItemsQuery("s1", []string{"a", "b", "c"})
	require.NoError(t, err)

	// squirrel orders Eq keys alphabetically
	assert.Contains(t, query, "item_id IN (?,?,?) AND share_id = ?")
	assert.Equal(t, []any{"a", "b", "c", "s1"}, args)
}

func Test_buildTouchItemQuery_OnlyForward(t *testing.T) {
	query, args, err := buildTouchItemQuery("s1", models.LastUseItem{ItemID: "a", LastUseTime: 9})
	require.NoError(t, err)

	assert.Contains(t, query, "last_use_time IS NULL")
	assert.Contains(t, query, "last_use_time < ?")
	assert.Equal(t, []any{int64(9), "a", "s1", int64(9)}, args)
}

func Test_buildUpsertCursorQuery_KeepsHighestRotation(t *testing.T) {
	query, _, err := buildUpsertCursorQuery(models.SyncCursor{ShareID: "s1", LastEventID: "e"})
	require.NoError(t, err)

	assert.Contains(t, query, "MAX(sync_cursors.key_rotation, excluded.key_rotation)")
}

func Test_buildRemoveShareQueries_ChildrenFirst(t *testing.T) {
	stmts := buildRemoveShareQueries("s1")
	require.Len(t, stmts, 4)

	tables := make([]string, 0, len(stmts))
	for _, s := range stmts {
		q, args, err := s.ToSql()
		require.NoError(t, err)
		assert.Equal(t, []any{"s1"}, args)
		tables = append(tables, strings.Fields(q)[2])
	}
	assert.Equal(t, []string{"items", "share_keys", "sync_cursors", "shares"}, tables)
}
