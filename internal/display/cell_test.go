// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package display

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCellLatestWins(t *testing.T) {
	buf := &Buffer{}
	c := NewCell(buf)

	first := c.Begin("Processing your request...")
	second := c.Begin("Processing your request...")

	if first == second {
		t.Fatalf("expected distinct sequence numbers, got %d twice", first)
	}
	if c.Apply(first, StateSuccess, "stale") {
		t.Error("stale sequence number must not be applied")
	}
	if !c.Apply(second, StateFailure, "fresh") {
		t.Error("latest sequence number must be applied")
	}

	state, text := c.Snapshot()
	if state != StateFailure || text != "fresh" {
		t.Errorf("Snapshot() = (%v, %q), want (failure, %q)", state, text, "fresh")
	}

	for _, e := range buf.Entries() {
		if e.Text == "stale" {
			t.Error("stale text reached the surface")
		}
	}
	if got := len(buf.Entries()); got != 3 {
		t.Errorf("surface writes = %d, want 3", got)
	}
}

func TestCellConcurrentBegin(t *testing.T) {
	c := NewCell(nil)
	var wg sync.WaitGroup
	seen := make(chan uint64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- c.Begin("p")
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[uint64]bool{}
	for s := range seen {
		if unique[s] {
			t.Fatalf("duplicate sequence number %d", s)
		}
		unique[s] = true
	}
	if c.Latest() != 50 {
		t.Errorf("Latest() = %d, want 50", c.Latest())
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateIdle:       "idle",
		StateProcessing: "processing",
		StateSuccess:    "success",
		StateFailure:    "failure",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestTerminalPlainOutput(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, false)

	term.Show(StateIdle, "ignored")
	term.Show(StateProcessing, "Processing your request...")
	term.Show(StateFailure, "❌ Error: table not found")
	term.Close()

	want := "Processing your request...\n❌ Error: table not found\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestInlineSpinnerClearsLine(t *testing.T) {
	var mu sync.Mutex
	var out bytes.Buffer
	w := writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return out.Write(p)
	})

	stop := startInlineSpinner(w, "Waiting", []string{"|", "/"}, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	if !strings.HasSuffix(out.String(), "\r") {
		t.Errorf("expected output to end with a cleared line, got %q", out.String())
	}
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
