// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package display

import (
	"fmt"
	"io"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Terminal renders the display on a terminal writer. On an interactive terminal
// the processing state is a spinner that is removed when the result arrives;
// otherwise every state is printed as a plain line.
type Terminal struct {
	mu          sync.Mutex
	out         io.Writer
	interactive bool
	spinner     *pterm.SpinnerPrinter
	stopInline  func()
}

// NewTerminal creates a terminal surface writing to out.
func NewTerminal(out io.Writer, interactive bool) *Terminal {
	return &Terminal{out: out, interactive: interactive}
}

// Show renders text for state, replacing any running spinner.
func (t *Terminal) Show(state State, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopSpinner()

	switch state {
	case StateIdle:
		return
	case StateProcessing:
		if t.interactive {
			t.startSpinner(text)
			return
		}
		fmt.Fprintln(t.out, text)
	case StateSuccess:
		fmt.Fprintln(t.out, t.style(pterm.FgDefault, text))
	case StateFailure:
		fmt.Fprintln(t.out, t.style(pterm.FgRed, text))
	}
}

// Close stops a running spinner and restores the cursor.
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopSpinner()
}

func (t *Terminal) style(color pterm.Color, text string) string {
	if !t.interactive || color == pterm.FgDefault {
		return text
	}
	return pterm.NewStyle(color).Sprint(text)
}

func (t *Terminal) startSpinner(text string) {
	cursor.Hide()
	sp, err := pterm.DefaultSpinner.
		WithWriter(t.out).
		WithSequence(spinnerFrames...).
		WithDelay(120 * time.Millisecond).
		WithRemoveWhenDone(true).
		Start(text)
	if err == nil {
		t.spinner = sp
		return
	}
	t.stopInline = startInlineSpinner(t.out, text, spinnerFrames, 120*time.Millisecond)
}

func (t *Terminal) stopSpinner() {
	if t.spinner != nil {
		_ = t.spinner.Stop()
		t.spinner = nil
		cursor.Show()
	}
	if t.stopInline != nil {
		t.stopInline()
		t.stopInline = nil
		cursor.Show()
	}
}

// startInlineSpinner draws rotating frames followed by text on a single line
// until the returned function is called, which also clears the line.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
			select {
			case <-stop:
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s", line)
				i++
			}
		}
	}()
	return func() {
		close(stop)
		wg.Wait()
	}
}
