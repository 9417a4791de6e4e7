// Package order provides identity generation and array-position helpers for
// the admin panel's collection entities (projects, messages).
//
// Collections in the content document carry no order field: array position
// is display order. All helpers here are non-mutating — they return a new
// slice so the edit session can treat every edit as producing a new working
// copy.
package order

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a fresh identifier derived from the current time with
// millisecond resolution, matching the ids already present in deployed
// data files. Two creations inside the same millisecond in one process are
// disambiguated by bumping past the last issued value, so ids from a single
// process are strictly increasing. Uniqueness across processes is only
// time-based; that is an accepted limitation for a single-admin tool.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// MoveUp returns a copy of list with the element at index swapped with its
// predecessor. Index 0 and out-of-range indices are a no-op, not an error.
func MoveUp[T any](list []T, index int) []T {
	out := append([]T(nil), list...)
	if index <= 0 || index >= len(out) {
		return out
	}
	out[index-1], out[index] = out[index], out[index-1]
	return out
}

// MoveDown returns a copy of list with the element at index swapped with its
// successor. The last index and out-of-range indices are a no-op.
func MoveDown[T any](list []T, index int) []T {
	out := append([]T(nil), list...)
	if index < 0 || index >= len(out)-1 {
		return out
	}
	out[index], out[index+1] = out[index+1], out[index]
	return out
}

// MoveToPosition returns a copy of list with the element at fromIndex
// removed and reinserted at toIndex. Equal indices are a no-op. Out-of-range
// indices are clamped rather than rejected; callers are expected to pass
// valid positions.
func MoveToPosition[T any](list []T, fromIndex, toIndex int) []T {
	out := append([]T(nil), list...)
	if len(out) == 0 || fromIndex == toIndex {
		return out
	}
	fromIndex = clamp(fromIndex, 0, len(out)-1)
	toIndex = clamp(toIndex, 0, len(out)-1)
	if fromIndex == toIndex {
		return out
	}

	moved := out[fromIndex]
	out = append(out[:fromIndex], out[fromIndex+1:]...)
	rest := append([]T(nil), out[toIndex:]...)
	out = append(append(out[:toIndex], moved), rest...)
	return out
}

// DuplicateAt returns a copy of list with transform(list[index]) inserted
// immediately after index. The input list is not mutated. Out-of-range
// indices return an unchanged copy.
func DuplicateAt[T any](list []T, index int, transform func(T) T) []T {
	out := append([]T(nil), list...)
	if index < 0 || index >= len(out) {
		return out
	}

	clone := transform(out[index])
	rest := append([]T(nil), out[index+1:]...)
	out = append(append(out[:index+1], clone), rest...)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
