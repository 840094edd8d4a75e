package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// GORMTable is a Table persisted through GORM. Ids come from the database's
// auto-increment sequence, which never hands out a deleted id again.
type GORMTable[T any, PT Entity[T]] struct {
	db  *gorm.DB
	now Clock
	// mu serializes the read-then-write sequences within this process.
	mu sync.Mutex
}

// NewGORMTable creates a table over db. The schema must already be migrated.
func NewGORMTable[T any, PT Entity[T]](db *gorm.DB, now Clock) *GORMTable[T, PT] {
	return &GORMTable[T, PT]{db: db, now: now}
}

func (t *GORMTable[T, PT]) Create(ctx context.Context, rec T) (T, error) {
	PT(&rec).Assign(0, t.now())
	if err := t.db.WithContext(ctx).Create(PT(&rec)).Error; err != nil {
		return rec, fmt.Errorf("failed to create record: %w", err)
	}
	return rec, nil
}

func (t *GORMTable[T, PT]) CreateUnless(ctx context.Context, rec T, conflict func(T) bool) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	PT(&rec).Assign(0, t.now())
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []T
		if err := tx.Find(&rows).Error; err != nil {
			return err
		}
		for _, existing := range rows {
			if conflict(existing) {
				return ErrConflict
			}
		}
		return tx.Create(PT(&rec)).Error
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return rec, ErrConflict
		}
		return rec, fmt.Errorf("failed to create record: %w", err)
	}
	return rec, nil
}

func (t *GORMTable[T, PT]) Get(ctx context.Context, id int64) (T, error) {
	var rec T
	if err := t.db.WithContext(ctx).First(PT(&rec), id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("failed to get record %d: %w", id, err)
	}
	return rec, nil
}

func (t *GORMTable[T, PT]) Update(ctx context.Context, id int64, mutate func(*T)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var rec T
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(PT(&rec), id).Error; err != nil {
			return err
		}
		mutate(&rec)
		return tx.Save(PT(&rec)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("failed to update record %d: %w", id, err)
	}
	return rec, nil
}

func (t *GORMTable[T, PT]) Delete(ctx context.Context, id int64) (bool, error) {
	res := t.db.WithContext(ctx).Delete(PT(new(T)), id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete record %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (t *GORMTable[T, PT]) DeleteFirst(ctx context.Context, match func(T) bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	deleted := false
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []T
		if err := tx.Order("id").Find(&rows).Error; err != nil {
			return err
		}
		for i := range rows {
			if match(rows[i]) {
				res := tx.Delete(PT(&rows[i]))
				deleted = res.RowsAffected > 0
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}
	return deleted, nil
}

func (t *GORMTable[T, PT]) List(ctx context.Context, match func(T) bool) ([]T, error) {
	var rows []T
	if err := t.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
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
