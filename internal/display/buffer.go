// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package display

import "sync"

// Entry is one write recorded by a Buffer.
type Entry struct {
	State State
	Text  string
}

// Buffer is an in-memory Surface that records every write.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
}

// Show records the write.
func (b *Buffer) Show(state State, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{State: state, Text: text})
}

// Entries returns a copy of all recorded writes in order.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Last returns the most recent write, or a zero Entry if none.
func (b *Buffer) Last() Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 {
		return Entry{}
	}
	return b.entries[len(b.entries)-1]
}
