package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryTable is a volatile Table backed by a map.
type MemoryTable[T any, PT Entity[T]] struct {
	rows   map[int64]T
	nextID int64
	now    Clock
	mu     sync.RWMutex
}

// NewMemoryTable creates an empty table whose first id is 1.
func NewMemoryTable[T any, PT Entity[T]](now Clock) *MemoryTable[T, PT] {
	return &MemoryTable[T, PT]{
		rows:   make(map[int64]T),
		nextID: 1,
		now:    now,
	}
}

// insert stores rec under the next id. Callers hold the write lock.
func (t *MemoryTable[T, PT]) insert(rec T) T {
	PT(&rec).Assign(t.nextID, t.now())
	t.nextID++
	t.rows[PT(&rec).Key()] = rec
	return rec
}

// sorted returns the rows in ascending id order. Callers hold a lock.
func (t *MemoryTable[T, PT]) sorted() []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}

func (t *MemoryTable[T, PT]) Create(_ context.Context, rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.insert(rec), nil
}

func (t *MemoryTable[T, PT]) CreateUnless(_ context.Context, rec T, conflict func(T) bool) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, existing := range t.rows {
		if conflict(existing) {
			var zero T
			return zero, ErrConflict
		}
	}
	return t.insert(rec), nil
}

func (t *MemoryTable[T, PT]) Get(_ context.Context, id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return rec, nil
}

func (t *MemoryTable[T, PT]) Update(_ context.Context, id int64, mutate func(*T)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	mutate(&rec)
	t.rows[id] = rec
	return rec, nil
}

func (t *MemoryTable[T, PT]) Delete(_ context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false, nil
	}
	delete(t.rows, id)
	return true, nil
}

func (t *MemoryTable[T, PT]) DeleteFirst(_ context.Context, match func(T) bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, rec := range t.sorted() {
		if match(rec) {
			delete(t.rows, PT(&rec).Key())
			return true, nil
		}
	}
	return false, nil
}

func (t *MemoryTable[T, PT]) List(_ context.Context, match func(T) bool) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := t.sorted()
	if match == nil {
		return rows, nil
	}
	out := rows[:0]
	for _, rec := range rows {
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}
