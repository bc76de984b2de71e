package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MKhiriev/go-pass-sync/internal/config"
	"github.com/MKhiriev/go-pass-sync/internal/logger"
	"github.com/MKhiriev/go-pass-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (LocalStore, *DB) {
	t.Helper()

	cfg := config.ClientDB{DSN: filepath.Join(t.TempDir(), "vault.db")}
	db, err := NewConnectSQLite(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	return NewLocalStore(db, logger.Nop()), db
}

func ptr[T any](v T) *T { return &v }

func testShare(id string) models.Share {
	return models.Share{
		ShareID:            id,
		VaultID:            "vault-" + id,
		TargetType:         models.TargetTypeVault,
		Permission:         models.PermissionRead | models.PermissionWrite,
		Owner:              true,
		Content:            ptr("envelope"),
		ContentKeyRotation: ptr(int64(1)),
		CreateTime:         100,
	}
}

func testItem(id string, revision int64) models.Item {
	return models.Item{
		ItemID:      id,
		Revision:    revision,
		KeyRotation: 1,
		Content:     fmt.Sprintf("cipher-%s-%d", id, revision),
		State:       models.ItemStateActive,
		CreateTime:  10,
		ModifyTime:  10 + revision,
	}
}

func fullSyncBatch(shareID, eventID string, items ...models.Item) models.StoreBatch {
	share := testShare(shareID)
	return models.StoreBatch{
		ShareID:      shareID,
		UpsertShare:  &share,
		ReplaceItems: true,
		UpsertItems:  items,
		UpsertKeys: []models.StoredShareKey{
			{ShareID: shareID, KeyRotation: 1, UserKeyID: "uk", EncryptedKey: []byte("sealed"), CreateTime: 1},
		},
		Cursor: &models.SyncCursor{LastEventID: eventID, KeyRotation: 1, UpdateTime: 1},
	}
}

func TestApplyBatch_FullSyncVisibleAtOnce(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", testItem("a", 1), testItem("b", 1))))

	shares, err := st.GetShares(ctx)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "s1", shares[0].ShareID)
	assert.Equal(t, "envelope", *shares[0].Content)
	assert.True(t, shares[0].Owner)
	assert.Nil(t, shares[0].ExpireTime)

	items, err := st.GetItems(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	cursor, err := st.GetCursor(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "e1", cursor.LastEventID)

	key, err := st.GetShareKey(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), key.EncryptedKey)
}

func TestApplyBatch_Idempotent(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", testItem("a", 1))))

	page := models.StoreBatch{
		ShareID:         "s1",
		UpsertItems:     []models.Item{testItem("b", 2)},
		DeleteItemIDs:   []string{"a"},
		Cursor:          &models.SyncCursor{LastEventID: "e2", KeyRotation: 1},
		ExpectedEventID: "e1",
	}
	require.NoError(t, st.ApplyBatch(ctx, page))
	first, err := st.GetItems(ctx, "s1")
	require.NoError(t, err)

	// re-applying the same page content from the new cursor changes nothing
	page.ExpectedEventID = "e2"
	require.NoError(t, st.ApplyBatch(ctx, page))
	second, err := st.GetItems(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, second, 1)
	assert.Equal(t, "b", second[0].ItemID)
}

func TestApplyBatch_RevisionNeverDecreases(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", testItem("a", 5))))

	stale := testItem("a", 3)
	require.NoError(t, st.ApplyBatch(ctx, models.StoreBatch{ShareID: "s1", UpsertItems: []models.Item{stale}}))

	got, err := st.GetItem(ctx, "s1", "a")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Revision)
	assert.Equal(t, "cipher-a-5", got.Content)

	equal := testItem("a", 5)
	equal.Pinned = true
	require.NoError(t, st.ApplyBatch(ctx, models.StoreBatch{ShareID: "s1", UpsertItems: []models.Item{equal}}))

	got, err = st.GetItem(ctx, "s1", "a")
	require.NoError(t, err)
	assert.True(t, got.Pinned, "equal revision is applied")
}

func TestApplyBatch_CursorConflictCommitsNothing(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e5", testItem("a", 1))))

	err := st.ApplyBatch(ctx, models.StoreBatch{
		ShareID:         "s1",
		UpsertItems:     []models.Item{testItem("z", 1)},
		Cursor:          &models.SyncCursor{LastEventID: "e3"},
		ExpectedEventID: "e2",
	})
	require.ErrorIs(t, err, ErrCursorConflict)

	_, err = st.GetItem(ctx, "s1", "z")
	assert.ErrorIs(t, err, ErrItemNotFound)

	cursor, err := st.GetCursor(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "e5", cursor.LastEventID)
}

func TestApplyBatch_CursorKeyRotationNeverDecreases(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	b := fullSyncBatch("s1", "e1")
	b.Cursor.KeyRotation = 4
	require.NoError(t, st.ApplyBatch(ctx, b))

	require.NoError(t, st.ApplyBatch(ctx, models.StoreBatch{
		ShareID:         "s1",
		Cursor:          &models.SyncCursor{LastEventID: "e2", KeyRotation: 2},
		ExpectedEventID: "e1",
	}))

	cursor, err := st.GetCursor(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "e2", cursor.LastEventID)
	assert.Equal(t, int64(4), cursor.KeyRotation)
}

func TestApplyBatch_ReplaceItemsDropsMissing(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", testItem("a", 1), testItem("b", 1))))

	require.NoError(t, st.ApplyBatch(ctx, models.StoreBatch{
		ShareID:         "s1",
		ReplaceItems:    true,
		UpsertItems:     []models.Item{testItem("c", 1)},
		Cursor:          &models.SyncCursor{LastEventID: "e9"},
		ExpectedEventID: "e1",
	}))

	items, err := st.GetItems(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].ItemID)
}

func TestApplyBatch_LastUseOnlyMovesForward(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", testItem("a", 1))))

	touch := func(ts int64) {
		require.NoError(t, st.ApplyBatch(ctx, models.StoreBatch{
			ShareID:      "s1",
			LastUseItems: []models.LastUseItem{{ItemID: "a", LastUseTime: ts}},
		}))
	}
	touch(50)
	touch(20)

	got, err := st.GetItem(ctx, "s1", "a")
	require.NoError(t, err)
	require.NotNil(t, got.LastUseTime)
	assert.Equal(t, int64(50), *got.LastUseTime)
}

func TestApplyBatch_ManyItemsAreChunked(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	items := make([]models.Item, 0, itemsInsertChunk*2+7)
	for i := range cap(items) {
		items = append(items, testItem(fmt.Sprintf("i%04d", i), 1))
	}
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", items...)))

	got, err := st.GetItems(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got, len(items))
}

func TestApplyBatch_EmptyIsNoop(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.ApplyBatch(context.Background(), models.StoreBatch{ShareID: "s1"}))
}

func TestApplyBatch_CancelledContextStillCommits(t *testing.T) {
	st, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", testItem("a", 1))))

	_, err := st.GetShare(context.Background(), "s1")
	assert.NoError(t, err)
}

// TestApplyBatch_ReadersSeeWholeBatches reads concurrently with a stream of
// batches that always keep exactly two items per share; a reader observing
// any other count would have seen a partial batch.
func TestApplyBatch_ReadersSeeWholeBatches(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e0", testItem("x0", 1), testItem("y0", 1))))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		prev := "e0"
		for i := 1; i <= 40; i++ {
			next := fmt.Sprintf("e%d", i)
			err := st.ApplyBatch(ctx, models.StoreBatch{
				ShareID:         "s1",
				ReplaceItems:    true,
				UpsertItems:     []models.Item{testItem(fmt.Sprintf("x%d", i), 1), testItem(fmt.Sprintf("y%d", i), 1)},
				Cursor:          &models.SyncCursor{LastEventID: next},
				ExpectedEventID: prev,
			})
			assert.NoError(t, err)
			prev = next
		}
		close(done)
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		items, err := st.GetItems(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, items, 2)
	}
}

func TestRemoveShare_DeletesEverything(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e1", testItem("a", 1))))
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s2", "e1", testItem("a", 1))))

	require.NoError(t, st.RemoveShare(ctx, "s1"))

	_, err := st.GetShare(ctx, "s1")
	assert.ErrorIs(t, err, ErrShareNotFound)
	_, err = st.GetCursor(ctx, "s1")
	assert.ErrorIs(t, err, ErrCursorNotFound)
	_, err = st.GetShareKey(ctx, "s1", 1)
	assert.ErrorIs(t, err, ErrShareKeyNotFound)
	items, err := st.GetItems(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)

	// the other share is untouched
	_, err = st.GetItem(ctx, "s2", "a")
	assert.NoError(t, err)

	// a re-added share starts from a fresh cursor
	require.NoError(t, st.ApplyBatch(ctx, fullSyncBatch("s1", "e0")))
	cursor, err := st.GetCursor(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "e0", cursor.LastEventID)
}

func TestSaveShareKeys_Upserts(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveShareKeys(ctx,
		models.StoredShareKey{ShareID: "s1", KeyRotation: 2, UserKeyID: "uk", EncryptedKey: []byte("k2")},
		models.StoredShareKey{ShareID: "s1", KeyRotation: 1, UserKeyID: "uk", EncryptedKey: []byte("k1")},
	))
	require.NoError(t, st.SaveShareKeys(ctx,
		models.StoredShareKey{ShareID: "s1", KeyRotation: 2, UserKeyID: "uk", EncryptedKey: []byte("k2b")},
	))
	require.NoError(t, st.SaveShareKeys(ctx))

	keys, err := st.GetShareKeys(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, int64(1), keys[0].KeyRotation)
	assert.Equal(t, []byte("k2b"), keys[1].EncryptedKey)
}

func TestSettings_RoundTrip(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	_, err := st.GetSetting(ctx, "session")
	assert.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, st.SetSetting(ctx, "session", []byte("v1")))
	require.NoError(t, st.SetSetting(ctx, "session", []byte("v2")))

	got, err := st.GetSetting(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}
