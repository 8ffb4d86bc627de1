// Package inmemdb stores the sandbox API's records in memory.
package inmemdb

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-admin/core"
)

// table keeps records in insertion order, indexed by id.
type table[T any, Q any] struct {
	mutex sync.RWMutex
	rows  []T
	index map[string]int

	getID func(T) string
	setID func(*T, string)
	match func(Q, T) bool
}

func newTable[T any, Q any](getID func(T) string, setID func(*T, string), match func(Q, T) bool) *table[T, Q] {
	return &table[T, Q]{
		index: make(map[string]int),
		getID: getID,
		setID: setID,
		match: match,
	}
}

func (tbl *table[T, Q]) Query(_ context.Context, qf Q) ([]T, error) {
	tbl.mutex.RLock()
	defer tbl.mutex.RUnlock()

	rows := make([]T, 0, len(tbl.rows))
	for _, row := range tbl.rows {
		if tbl.match(qf, row) {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (tbl *table[T, Q]) GetByID(_ context.Context, id string) (T, error) {
	tbl.mutex.RLock()
	defer tbl.mutex.RUnlock()

	if i, ok := tbl.index[id]; ok {
		return tbl.rows[i], nil
	}
	var zero T
	return zero, core.ErrNotFound
}

// find returns the first row pred accepts.
func (tbl *table[T, Q]) find(pred func(T) bool) (T, error) {
	tbl.mutex.RLock()
	defer tbl.mutex.RUnlock()

	for _, row := range tbl.rows {
		if pred(row) {
			return row, nil
		}
	}
	var zero T
	return zero, core.ErrNotFound
}

func (tbl *table[T, Q]) Create(_ context.Context, obj T) (T, error) {
	tbl.mutex.Lock()
	defer tbl.mutex.Unlock()

	tbl.setID(&obj, uuid.NewString())
	tbl.index[tbl.getID(obj)] = len(tbl.rows)
	tbl.rows = append(tbl.rows, obj)
	return obj, nil
}

func (tbl *table[T, Q]) Update(_ context.Context, obj T) (T, error) {
	tbl.mutex.Lock()
	defer tbl.mutex.Unlock()

	i, ok := tbl.index[tbl.getID(obj)]
	if !ok {
		var zero T
		return zero, core.ErrNotFound
	}
	tbl.rows[i] = obj
	return obj, nil
}

func (tbl *table[T, Q]) Delete(_ context.Context, id string) (T, error) {
	tbl.mutex.Lock()
	defer tbl.mutex.Unlock()

	i, ok := tbl.index[id]
	if !ok {
		var zero T
		return zero, core.ErrNotFound
	}
	deleted := tbl.rows[i]
	tbl.rows = append(tbl.rows[:i], tbl.rows[i+1:]...)

	delete(tbl.index, id)
	for j := i; j < len(tbl.rows); j++ {
		tbl.index[tbl.getID(tbl.rows[j])] = j
	}
	return deleted, nil
}
