package docstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda/infras/docstore"
)

const collection = "appointments"

type recorder struct {
	snapshots [][]docstore.Document
	errs      []error
}

func (r *recorder) onSnapshot(docs []docstore.Document) {
	r.snapshots = append(r.snapshots, docs)
}

func (r *recorder) onError(err error) {
	r.errs = append(r.errs, err)
}

func (r *recorder) last() []docstore.Document {
	if len(r.snapshots) == 0 {
		return nil
	}

	return r.snapshots[len(r.snapshots)-1]
}

func TestMemory_SubscribeDeliversInitialSnapshot(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	_, err := store.Insert(ctx, collection, docstore.Fields{"name": "first"})
	require.NoError(t, err)

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	require.Len(t, rec.snapshots, 1)
	require.Len(t, rec.last(), 1)
	assert.Equal(t, "first", rec.last()[0].Fields["name"])
}

func TestMemory_SubscribeEmptyCollection(t *testing.T) {
	store := docstore.NewMemory()

	rec := &recorder{}
	unsub, err := store.Subscribe(context.Background(), collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	require.Len(t, rec.snapshots, 1)
	assert.Empty(t, rec.last())
}

func TestMemory_SubscribeCancelledContext(t *testing.T) {
	store := docstore.NewMemory()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	_, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.snapshots)
	assert.Zero(t, store.Subscribers(collection))
}

func TestMemory_WritesNotifySubscribers(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	id, err := store.Insert(ctx, collection, docstore.Fields{
		"status":    "pending",
		"createdAt": docstore.ServerTimestamp,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Len(t, rec.snapshots, 2)
	doc := rec.last()[0]
	assert.Equal(t, id, doc.ID)
	assert.IsType(t, time.Time{}, doc.Fields["createdAt"])
	assert.Equal(t, doc.CreateTime, doc.UpdateTime)

	require.NoError(t, store.Patch(ctx, collection, id, docstore.Fields{"status": "confirmed"}))
	require.Len(t, rec.snapshots, 3)
	assert.Equal(t, "confirmed", rec.last()[0].Fields["status"])
	assert.Contains(t, rec.last()[0].Fields, "createdAt")

	require.NoError(t, store.Delete(ctx, collection, id))
	require.Len(t, rec.snapshots, 4)
	assert.Empty(t, rec.last())

	assert.Empty(t, rec.errs)
}

func TestMemory_OtherCollectionsAreIsolated(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	_, err = store.Insert(ctx, "businesses", docstore.Fields{"name": "Salon"})
	require.NoError(t, err)

	assert.Len(t, rec.snapshots, 1)
}

func TestMemory_SnapshotIsolation(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	_, err = store.Insert(ctx, collection, docstore.Fields{"name": "original"})
	require.NoError(t, err)

	rec.last()[0].Fields["name"] = "tampered"

	other := &recorder{}
	unsubOther, err := store.Subscribe(ctx, collection, other.onSnapshot, other.onError)
	require.NoError(t, err)

	defer unsubOther()

	assert.Equal(t, "original", other.last()[0].Fields["name"])
}

func TestMemory_MissingDocument(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	err = store.Patch(ctx, collection, "missing", docstore.Fields{"status": "confirmed"})
	require.ErrorIs(t, err, docstore.ErrNotFound)

	err = store.Delete(ctx, collection, "missing")
	require.ErrorIs(t, err, docstore.ErrNotFound)

	assert.Len(t, rec.snapshots, 1, "failed writes must not notify")
}

func TestMemory_Unsubscribe(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Subscribers(collection))

	unsub()
	unsub()

	assert.Zero(t, store.Subscribers(collection))

	_, err = store.Insert(ctx, collection, docstore.Fields{"name": "after"})
	require.NoError(t, err)

	assert.Len(t, rec.snapshots, 1)
}

func TestMemory_Fail(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()
	boom := errors.New("permission denied")

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	store.Fail(collection, boom)

	require.Len(t, rec.errs, 1)
	require.ErrorIs(t, rec.errs[0], boom)
	assert.Zero(t, store.Subscribers(collection))

	_, err = store.Insert(ctx, collection, docstore.Fields{"name": "after"})
	require.NoError(t, err)

	assert.Len(t, rec.snapshots, 1)
	assert.Len(t, rec.errs, 1)
}

func TestMemory_SnapshotOrder(t *testing.T) {
	store := docstore.NewMemory()
	ctx := context.Background()

	var ids []string

	for _, name := range []string{"a", "b", "c"} {
		id, err := store.Insert(ctx, collection, docstore.Fields{"name": name})
		require.NoError(t, err)

		ids = append(ids, id)
	}

	rec := &recorder{}
	unsub, err := store.Subscribe(ctx, collection, rec.onSnapshot, rec.onError)
	require.NoError(t, err)

	defer unsub()

	docs := rec.last()
	require.Len(t, docs, 3)

	for i := 1; i < len(docs); i++ {
		prev, cur := docs[i-1], docs[i]
		assert.False(t, cur.CreateTime.Before(prev.CreateTime))
	}

	assert.ElementsMatch(t, ids, []string{docs[0].ID, docs[1].ID, docs[2].ID})
}
