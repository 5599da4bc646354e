package docstore

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memorySubscriber struct {
	onSnapshot func([]Document)
	onError    func(error)
}

// Memory is an in-process Store. Commits and snapshot deliveries are
// serialized, and each subscriber is notified before the write returns.
// Callbacks must not write back into the store.
type Memory struct {
	deliverMu sync.Mutex
	mu        sync.Mutex

	collections map[string]map[string]Document
	subscribers map[string]map[uint64]memorySubscriber
	nextSubID   uint64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		collections: map[string]map[string]Document{},
		subscribers: map[string]map[uint64]memorySubscriber{},
		now:         time.Now,
	}
}

func (m *Memory) Subscribe(ctx context.Context, collection string, onSnapshot func([]Document), onError func(error)) (Unsubscribe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	m.nextSubID++
	subID := m.nextSubID

	if m.subscribers[collection] == nil {
		m.subscribers[collection] = map[uint64]memorySubscriber{}
	}

	m.subscribers[collection][subID] = memorySubscriber{onSnapshot: onSnapshot, onError: onError}
	docs := m.snapshotLocked(collection)
	m.mu.Unlock()

	onSnapshot(docs)

	var once sync.Once

	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()

			delete(m.subscribers[collection], subID)
		})
	}, nil
}

func (m *Memory) Insert(ctx context.Context, collection string, fields Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err //nolint:wrapcheck
	}

	id := uuid.NewString()

	err := m.commit(collection, func(docs map[string]Document, now time.Time) error {
		docs[id] = Document{
			ID:         id,
			Fields:     Resolve(fields, now),
			CreateTime: now,
			UpdateTime: now,
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

func (m *Memory) Patch(ctx context.Context, collection, id string, fields Fields) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	return m.commit(collection, func(docs map[string]Document, now time.Time) error {
		doc, ok := docs[id]
		if !ok {
			return ErrNotFound
		}

		merged := maps.Clone(doc.Fields)
		maps.Copy(merged, Resolve(fields, now))

		doc.Fields = merged
		doc.UpdateTime = now
		docs[id] = doc

		return nil
	})
}

func (m *Memory) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	return m.commit(collection, func(docs map[string]Document, _ time.Time) error {
		if _, ok := docs[id]; !ok {
			return ErrNotFound
		}

		delete(docs, id)

		return nil
	})
}

// Fail terminates every subscription on collection with err.
func (m *Memory) Fail(collection string, err error) {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()
	subs := m.subscribers[collection]
	delete(m.subscribers, collection)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.onError(err)
	}
}

// Subscribers reports the number of live subscriptions on collection.
func (m *Memory) Subscribers(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.subscribers[collection])
}

func (m *Memory) commit(collection string, mutate func(docs map[string]Document, now time.Time) error) error {
	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()

	m.mu.Lock()

	docs := m.collections[collection]
	if docs == nil {
		docs = map[string]Document{}
		m.collections[collection] = docs
	}

	if err := mutate(docs, m.now()); err != nil {
		m.mu.Unlock()

		return err
	}

	subs := slices.Collect(maps.Values(m.subscribers[collection]))
	snapshot := m.snapshotLocked(collection)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.onSnapshot(cloneDocuments(snapshot))
	}

	return nil
}

func (m *Memory) snapshotLocked(collection string) []Document {
	docs := slices.Collect(maps.Values(m.collections[collection]))

	slices.SortFunc(docs, func(a, b Document) int {
		if c := a.CreateTime.Compare(b.CreateTime); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	return cloneDocuments(docs)
}

func cloneDocuments(docs []Document) []Document {
	out := make([]Document, len(docs))

	for i, doc := range docs {
		doc.Fields = maps.Clone(doc.Fields)
		out[i] = doc
	}

	return out
}
