// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package display owns the single surface a submission writes to. The Cell type
// serializes writes and tags every submission with a sequence number so that only
// the most recently issued submission may publish its result; responses that
// resolve out of order are dropped instead of overwriting newer state.
package display

import "sync"

// State is the phase shown on the surface.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateProcessing:
		return "processing"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "idle"
	}
}

// Surface renders display text. Implementations are called with the cell lock
// held, so they never see concurrent Show calls from the same cell.
type Surface interface {
	Show(state State, text string)
}

// Cell is a sequence-guarded, single-writer display cell.
type Cell struct {
	mu      sync.Mutex
	surface Surface
	latest  uint64
	state   State
	text    string
}

// NewCell creates a cell writing to surface. A nil surface keeps state in memory only.
func NewCell(surface Surface) *Cell {
	return &Cell{surface: surface}
}

// Begin issues the next sequence number and shows text in the processing state.
func (c *Cell) Begin(text string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	c.set(StateProcessing, text)
	return c.latest
}

// Apply shows text if seq is still the latest issued sequence number.
// It reports whether the write was applied.
func (c *Cell) Apply(seq uint64, state State, text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.latest {
		return false
	}
	c.set(state, text)
	return true
}

// Snapshot returns the state and text currently shown.
func (c *Cell) Snapshot() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.text
}

// Latest returns the most recently issued sequence number.
func (c *Cell) Latest() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}

func (c *Cell) set(state State, text string) {
	c.state = state
	c.text = text
	if c.surface != nil {
		c.surface.Show(state, text)
	}
}
