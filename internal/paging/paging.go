// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package paging computes client-side pages over an in-memory collection.
// Pages are 1-indexed.
package paging

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 5

// TotalPages returns ceil(length/pageSize), but never less than 1.
// A non-positive pageSize is treated as DefaultPageSize.
func TotalPages(length, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if length <= 0 {
		return 1
	}
	return (length + pageSize - 1) / pageSize
}

// Slice returns the items on page. Pages past the end yield an empty slice.
// The result shares memory with items.
func Slice[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return items[:0:0]
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return items[:0:0]
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}

// =============================================================================
// STATE
// =============================================================================

// State is the pagination position over a collection.
type State struct {
	Current int
	Size    int
	Total   int
}

// New returns the state for page 1 of a collection of length items.
func New(pageSize, length int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{Current: 1, Size: pageSize, Total: TotalPages(length, pageSize)}
}

// ChangePage moves to requested when it lies in [1, Total]. Otherwise the
// state is returned unchanged and ok is false.
func (s State) ChangePage(requested int) (next State, ok bool) {
	if requested < 1 || requested > s.Total {
		return s, false
	}
	s.Current = requested
	return s, true
}

// Next moves forward one page if possible.
func (s State) Next() (State, bool) {
	return s.ChangePage(s.Current + 1)
}

// Prev moves back one page if possible.
func (s State) Prev() (State, bool) {
	return s.ChangePage(s.Current - 1)
}

// Resize recomputes Total for a collection of length items and clamps
// Current into range.
func (s State) Resize(length int) State {
	s.Total = TotalPages(length, s.Size)
	return s.Clamp()
}

// Clamp pulls Current back into [1, max(Total, 1)].
func (s State) Clamp() State {
	if s.Total < 1 {
		s.Total = 1
	}
	if s.Current > s.Total {
		s.Current = s.Total
	}
	if s.Current < 1 {
		s.Current = 1
	}
	return s
}

// HasNext reports whether a later page exists.
func (s State) HasNext() bool { return s.Current < s.Total }

// HasPrev reports whether an earlier page exists.
func (s State) HasPrev() bool { return s.Current > 1 }

// Offset returns the zero-based index of the first item on the current page.
func (s State) Offset() int {
	return (s.Current - 1) * s.Size
}

// =============================================================================
// WINDOW
// =============================================================================

// Window describes the visible range for a "Showing X to Y of N" line.
// From and To are 1-based and inclusive; both are 0 for an empty page.
type Window struct {
	From  int
	To    int
	Total int
}

// WindowOf returns the visible range of page over length items.
func WindowOf(page, pageSize, length int) Window {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	w := Window{Total: length}
	start := (page - 1) * pageSize
	if page < 1 || start >= length {
		return w
	}
	w.From = start + 1
	w.To = start + pageSize
	if w.To > length {
		w.To = length
	}
	return w
}

// Window returns the visible range of the current page.
func (s State) Window(length int) Window {
	return WindowOf(s.Current, s.Size, length)
}
