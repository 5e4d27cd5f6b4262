// Package panel holds the state shared by every dashboard tab: fetch the
// list, render it, mutate through the backend, fetch again.
package panel

import (
	"context"

	"smartdir/internal/directory"
)

// Loader fetches a whole collection.
type Loader[T directory.Record] interface {
	List(ctx context.Context) ([]T, error)
}

// Deleter removes one record by id.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Clearer removes every record of a collection.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Saver creates or updates records.
type Saver[T directory.Record] interface {
	Create(ctx context.Context, record T) error
	Update(ctx context.Context, id string, record T) error
}

// List is the state of one panel. The zero value is not ready; use New.
// A List lives as long as its tab is shown and is never shared.
type List[T directory.Record] struct {
	records  []T
	loading  bool
	loaded   bool
	err      error
	seq      int
	filter   func(T) bool
	expanded string
}

// New returns a panel that is loading, as a freshly mounted tab is.
func New[T directory.Record]() *List[T] {
	return &List[T]{loading: true}
}

// BeginLoad marks the panel loading and returns the sequence number the
// matching FinishLoad must carry.
func (l *List[T]) BeginLoad() int {
	l.seq++
	l.loading = true
	return l.seq
}

// FinishLoad applies the outcome of load seq. A result for an older load
// than the latest BeginLoad is dropped. On error the previous records stay.
// It reports whether the result was applied.
func (l *List[T]) FinishLoad(seq int, records []T, err error) bool {
	if seq != l.seq {
		return false
	}
	l.loading = false
	l.err = err
	if err != nil {
		return true
	}
	l.loaded = true
	l.records = records
	if l.expanded != "" && !l.contains(l.expanded) {
		l.expanded = ""
	}
	return true
}

// Loading reports whether a load is in flight.
func (l *List[T]) Loading() bool { return l.loading }

// Loaded reports whether any load has succeeded.
func (l *List[T]) Loaded() bool { return l.loaded }

// Err returns the error of the last finished load, if any.
func (l *List[T]) Err() error { return l.err }

// All returns every fetched record in backend order.
func (l *List[T]) All() []T { return l.records }

// Rows returns the records passing the filter, in backend order.
func (l *List[T]) Rows() []T {
	if l.filter == nil {
		return l.records
	}
	rows := make([]T, 0, len(l.records))
	for _, r := range l.records {
		if l.filter(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Empty reports whether there is nothing to show.
func (l *List[T]) Empty() bool { return len(l.Rows()) == 0 }

// SetFilter installs a client-side predicate over the loaded records.
func (l *List[T]) SetFilter(keep func(T) bool) { l.filter = keep }

// ClearFilter shows every record again.
func (l *List[T]) ClearFilter() { l.filter = nil }

// ToggleExpand expands id, or collapses it if it is already expanded.
// Expanding one row collapses any other.
func (l *List[T]) ToggleExpand(id string) {
	if l.expanded == id {
		l.expanded = ""
		return
	}
	l.expanded = id
}

// Expanded returns the id of the expanded row, or "".
func (l *List[T]) Expanded() string { return l.expanded }

// IsExpanded reports whether id is the expanded row.
func (l *List[T]) IsExpanded(id string) bool { return id != "" && l.expanded == id }

func (l *List[T]) contains(id string) bool {
	for _, r := range l.records {
		if r.RecordID() == id {
			return true
		}
	}
	return false
}
