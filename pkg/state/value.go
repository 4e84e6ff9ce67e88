// Package state provides a small observable value container.
//
// A Value holds a single snapshot and notifies registered watchers when
// the snapshot is replaced with one that compares unequal. It decouples
// whoever computes new snapshots from whatever renders them.
package state

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// watcherID is the source of unique watcher identifiers.
var watcherID atomic.Uint64

// Value is an observable container for a snapshot of type T.
type Value[T any] struct {
	mu    sync.RWMutex
	value T

	// equal decides whether a replacement actually changed the value.
	// Nil means defaultEquals.
	equal func(T, T) bool

	watchMu  sync.RWMutex
	watchers []watcher[T]
}

type watcher[T any] struct {
	id uint64
	fn func(T)
}

// NewValue creates a container holding the given initial snapshot.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// WithEquals configures a custom equality function and returns the
// container. Useful when the snapshot type holds fields (functions,
// large slices) that the default comparison handles poorly.
func (v *Value[T]) WithEquals(fn func(T, T) bool) *Value[T] {
	v.equal = fn
	return v
}

// Get returns the current snapshot.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Peek returns the current snapshot without registering any watcher.
// Use it where a one-off read is intended and the caller must not be
// re-run on later replacements.
func (v *Value[T]) Peek() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Replace installs a new snapshot and notifies watchers if it compares
// unequal to the current one. It reports whether a replacement happened.
func (v *Value[T]) Replace(next T) bool {
	v.mu.Lock()
	changed := !v.equals(v.value, next)
	if changed {
		v.value = next
	}
	v.mu.Unlock()

	if changed {
		v.notify(next)
	}
	return changed
}

// Update atomically derives a new snapshot from the current one.
func (v *Value[T]) Update(fn func(T) T) bool {
	v.mu.Lock()
	next := fn(v.value)
	changed := !v.equals(v.value, next)
	if changed {
		v.value = next
	}
	v.mu.Unlock()

	if changed {
		v.notify(next)
	}
	return changed
}

// Watch registers fn to run on every replacement. The returned cancel
// function removes the registration; calling it more than once is safe.
func (v *Value[T]) Watch(fn func(T)) (cancel func()) {
	id := watcherID.Add(1)

	v.watchMu.Lock()
	v.watchers = append(v.watchers, watcher[T]{id: id, fn: fn})
	v.watchMu.Unlock()

	return func() {
		v.watchMu.Lock()
		defer v.watchMu.Unlock()
		for i, w := range v.watchers {
			if w.id == id {
				v.watchers = append(v.watchers[:i], v.watchers[i+1:]...)
				return
			}
		}
	}
}

// notify delivers the snapshot to all watchers.
// Watchers are copied before delivery so a watcher may cancel itself or
// register new watchers without deadlocking.
func (v *Value[T]) notify(snapshot T) {
	v.watchMu.RLock()
	watchers := make([]watcher[T], len(v.watchers))
	copy(watchers, v.watchers)
	v.watchMu.RUnlock()

	for _, w := range watchers {
		w.fn(snapshot)
	}
}

func (v *Value[T]) equals(a, b T) bool {
	if v.equal != nil {
		return v.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and falls back to
// reflect.DeepEqual for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
