// Package mirror keeps an in-process, sorted copy of a remote collection and
// fans its state out to observers.
package mirror

import (
	"agenda/infras/docstore"
	"agenda/shared/logger"
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Source delivers decoded snapshots of one collection.
type Source[T any] interface {
	Subscribe(ctx context.Context, onSnapshot func([]T), onError func(error)) (docstore.Unsubscribe, error)
}

type State[T any] struct {
	Items   []T
	Loading bool
	Active  bool
	Err     error
}

type Mirror[T any] struct {
	source Source[T]
	idOf   func(T) string
	cmp    func(a, b T) int
	log    zerolog.Logger

	mu      sync.RWMutex
	items   []T
	loading bool
	active  bool
	gen     uint64
	unsub   docstore.Unsubscribe
	lastErr error

	watchMu   sync.Mutex
	watchers  map[uint64]chan State[T]
	nextWatch uint64
}

func New[T any](name string, source Source[T], idOf func(T) string, cmp func(a, b T) int) *Mirror[T] {
	return &Mirror[T]{
		source:   source,
		idOf:     idOf,
		cmp:      cmp,
		log:      logger.Component("mirror").With().Str("collection", name).Logger(),
		watchers: map[uint64]chan State[T]{},
	}
}

// Subscribe opens the remote subscription unless one is already active.
func (m *Mirror[T]) Subscribe(ctx context.Context) error {
	m.mu.Lock()
	if m.active {
		m.mu.Unlock()

		return nil
	}

	m.gen++
	gen := m.gen
	m.active = true
	m.loading = true
	m.mu.Unlock()

	m.broadcast()

	unsub, err := m.source.Subscribe(ctx,
		func(items []T) { m.onSnapshot(gen, items) },
		func(err error) { m.onError(gen, err) },
	)

	m.mu.Lock()

	if err != nil {
		if m.gen == gen {
			m.active = false
			m.loading = false
			m.lastErr = err
		}
		m.mu.Unlock()

		m.log.Error().Err(err).Msg("failed to subscribe")
		m.broadcast()

		return err //nolint:wrapcheck
	}

	switch {
	case m.gen != gen:
		// unsubscribed while the subscription was being opened
		m.mu.Unlock()
		unsub()

		return nil
	case !m.active:
		// the subscription failed before Subscribe returned
		failure := m.lastErr
		m.mu.Unlock()
		unsub()

		return failure
	}

	m.unsub = unsub
	m.lastErr = nil
	m.mu.Unlock()

	m.log.Info().Msg("subscribed to collection")

	return nil
}

// Unsubscribe releases the remote subscription. It is a no-op when inactive.
func (m *Mirror[T]) Unsubscribe() {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()

		return
	}

	m.gen++
	unsub := m.unsub
	m.unsub = nil
	m.active = false
	m.loading = false
	m.mu.Unlock()

	if unsub != nil {
		unsub()
	}

	m.log.Info().Msg("unsubscribed from collection")
	m.broadcast()
}

func (m *Mirror[T]) onSnapshot(gen uint64, items []T) {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, m.cmp)

	m.mu.Lock()
	if m.gen != gen || !m.active {
		m.mu.Unlock()

		return
	}

	m.items = sorted
	m.loading = false
	m.mu.Unlock()

	m.log.Debug().Int("items", len(sorted)).Msg("snapshot applied")
	m.broadcast()
}

func (m *Mirror[T]) onError(gen uint64, err error) {
	m.mu.Lock()
	if m.gen != gen || !m.active {
		m.mu.Unlock()

		return
	}

	unsub := m.unsub
	m.unsub = nil
	m.active = false
	m.loading = false
	m.lastErr = err
	m.mu.Unlock()

	m.log.Error().Err(err).Msg("subscription failed")

	if unsub != nil {
		unsub()
	}

	m.broadcast()
}

// Live reports whether the remote subscription is open.
func (m *Mirror[T]) Live() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.active
}

// Items returns a copy of the cached collection in sort order.
func (m *Mirror[T]) Items() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.items)
}

func (m *Mirror[T]) Find(id string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.items {
		if m.idOf(item) == id {
			return item, true
		}
	}

	var zero T

	return zero, false
}

func (m *Mirror[T]) Filter(keep func(T) bool) []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.items))

	for _, item := range m.items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}

// Apply upserts item into the cache ahead of the next snapshot.
func (m *Mirror[T]) Apply(item T) {
	id := m.idOf(item)

	m.mu.Lock()

	items := slices.Clone(m.items)
	idx := slices.IndexFunc(items, func(cur T) bool { return m.idOf(cur) == id })

	if idx >= 0 {
		items[idx] = item
	} else {
		items = append(items, item)
	}

	slices.SortStableFunc(items, m.cmp)
	m.items = items
	m.mu.Unlock()

	m.broadcast()
}

func (m *Mirror[T]) Remove(id string) {
	m.mu.Lock()
	m.items = slices.DeleteFunc(slices.Clone(m.items), func(cur T) bool { return m.idOf(cur) == id })
	m.mu.Unlock()

	m.broadcast()
}

// Fail records err as the last error.
func (m *Mirror[T]) Fail(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()

	m.broadcast()
}

// Succeed clears the last error.
func (m *Mirror[T]) Succeed() {
	m.mu.Lock()
	changed := m.lastErr != nil
	m.lastErr = nil
	m.mu.Unlock()

	if changed {
		m.broadcast()
	}
}

func (m *Mirror[T]) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastErr
}

func (m *Mirror[T]) State() State[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.stateLocked()
}

func (m *Mirror[T]) stateLocked() State[T] {
	return State[T]{
		Items:   slices.Clone(m.items),
		Loading: m.loading,
		Active:  m.active,
		Err:     m.lastErr,
	}
}

// Watch streams state changes until ctx is done. The current state is sent
// first; a slow reader only ever sees the latest state.
func (m *Mirror[T]) Watch(ctx context.Context) <-chan State[T] {
	ch := make(chan State[T], 1)

	m.watchMu.Lock()
	m.nextWatch++
	watchID := m.nextWatch
	m.watchers[watchID] = ch
	ch <- m.State()
	m.watchMu.Unlock()

	go func() {
		<-ctx.Done()

		m.watchMu.Lock()
		delete(m.watchers, watchID)
		close(ch)
		m.watchMu.Unlock()
	}()

	return ch
}

func (m *Mirror[T]) broadcast() {
	m.watchMu.Lock()
	defer m.watchMu.Unlock()

	if len(m.watchers) == 0 {
		return
	}

	state := m.State()

	for _, ch := range m.watchers {
		select {
		case <-ch:
		default:
		}

		ch <- state
	}
}
