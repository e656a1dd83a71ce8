// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package submitter sends one prompt to the query service and renders its outcome.
//
// Every submission ends in exactly one of four terminal outcomes (network failure,
// non-JSON body, server-reported error, success) or the malformed-success outcome
// for JSON that lacks the result fields. Nothing is returned to the caller: the
// outcome is written to the display cell, and only if no newer submission has
// started in the meantime.
package submitter

import (
	"context"
	"fmt"

	"promptsql/cli/internal/backend"
	"promptsql/cli/internal/display"
	"promptsql/cli/internal/logging"
	"promptsql/cli/internal/query"

	"github.com/pterm/pterm"
)

// ProcessingText is shown while a request is outstanding.
const ProcessingText = "Processing your request..."

// Submitter issues prompts against an API and writes results to a display cell.
// It is safe for concurrent use; overlapping submissions are resolved by the cell.
type Submitter struct {
	api       backend.API
	cell      *display.Cell
	logger    *pterm.Logger
	onApplied func(seq uint64, out query.Outcome)
}

// New creates a submitter. A nil logger discards diagnostics.
func New(api backend.API, cell *display.Cell, logger *pterm.Logger) *Submitter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Submitter{api: api, cell: cell, logger: logger}
}

// OnApplied registers fn to run after an outcome reaches the display. Stale
// outcomes never reach it. Set it before the first Submit.
func (s *Submitter) OnApplied(fn func(seq uint64, out query.Outcome)) {
	s.onApplied = fn
}

// Submit shows the processing indicator, posts prompt and renders the outcome.
// It never panics on a bad response and never returns an error.
func (s *Submitter) Submit(ctx context.Context, prompt string) {
	seq := s.cell.Begin(ProcessingText)

	out := s.resolve(ctx, prompt)

	state := display.StateSuccess
	if !out.OK() {
		state = display.StateFailure
	}
	if !s.cell.Apply(seq, state, out.Text) {
		s.logger.Debug("discarded stale response", s.logger.Args(
			"seq", seq,
			"latest", s.cell.Latest(),
			"outcome", outcomeName(out),
		))
		return
	}
	if s.onApplied != nil {
		s.onApplied(seq, out)
	}
}

func (s *Submitter) resolve(ctx context.Context, prompt string) (out query.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = query.TransportFailure(fmt.Errorf("%v", r))
		}
	}()

	resp, err := s.api.Query(ctx, prompt)
	if err != nil {
		return query.TransportFailure(err)
	}

	body := query.TrimBOM(resp.Body)

	// Print sits above every threshold; only a disabled logger drops it.
	s.logger.Print("raw response", s.logger.Args(
		"status", resp.StatusCode,
		"body", logging.Mask(string(body)),
	))

	return query.Classify(body)
}

func outcomeName(o query.Outcome) string {
	if o.OK() {
		return "success"
	}
	return string(o.Kind)
}
