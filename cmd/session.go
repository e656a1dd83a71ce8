// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"promptsql/cli/internal/backend"
	"promptsql/cli/internal/config"
	"promptsql/cli/internal/display"
	"promptsql/cli/internal/httperrors"
	"promptsql/cli/internal/keychain"
	"promptsql/cli/internal/logging"
	"promptsql/cli/internal/query"
	"promptsql/cli/internal/submitter"
	"promptsql/cli/internal/terminal"

	"github.com/pterm/pterm"
)

// session wires configuration, logging, the backend client and the display
// for commands that submit prompts.
type session struct {
	cfg       config.Config
	cell      *display.Cell
	submitter *submitter.Submitter
	logger    *pterm.Logger
	surface   *display.Terminal
	closers   []func()
}

func newSession(out io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serverOverride != "" {
		cfg.ServerURL = serverOverride
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	s := &session{cfg: cfg}
	s.logger = s.openLogger()

	token := resolveToken(s.logger)
	api := backend.New(cfg, token, userAgent())

	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = terminal.IsInteractive(f)
	}
	s.surface = display.NewTerminal(out, interactive)
	s.closers = append(s.closers, s.surface.Close)

	s.cell = display.NewCell(s.surface)
	s.submitter = submitter.New(api, s.cell, s.logger)
	s.submitter.OnApplied(s.showHint)

	s.logger.Debug("session ready", s.logger.Args(
		"server", logging.Mask(cfg.ServerURL),
		"endpoint", cfg.Endpoints.Query,
		"timeout", cfg.Timeout().String(),
		"token", token != "",
	))
	return s, nil
}

// openLogger logs to stderr in verbose mode and to the state-dir log file otherwise.
func (s *session) openLogger() *pterm.Logger {
	if verbose || os.Getenv(config.EnvVerbose) == "1" {
		return logging.New(os.Stderr, "debug", false)
	}
	f, p, err := logging.OpenFile()
	if err != nil {
		pterm.Warning.Println(logging.PresentError("diagnostic log "+p+" unavailable", err))
		return logging.Discard()
	}
	s.closers = append(s.closers, func() { _ = f.Close() })
	return logging.New(f, s.cfg.LogLevel, true)
}

// resolveToken prefers PROMPTSQL_TOKEN, then the keychain. A missing token is not an error.
func resolveToken(logger *pterm.Logger) string {
	if t := strings.TrimSpace(os.Getenv(config.EnvToken)); t != "" {
		return t
	}
	km, err := keychain.GetManager()
	if err != nil {
		logger.Debug("keychain unavailable", logger.Args("error", err.Error()))
		return ""
	}
	t, err := km.LoadToken()
	if err != nil {
		if !errors.Is(err, keychain.ErrNotFound) {
			logger.Debug("token lookup failed", logger.Args("error", logging.Mask(err.Error())))
		}
		return ""
	}
	return t
}

// submit runs one submission and reports whether it ended in success.
func (s *session) submit(ctx context.Context, prompt string) bool {
	s.submitter.Submit(ctx, prompt)
	state, _ := s.cell.Snapshot()
	return state == display.StateSuccess
}

// showHint prints troubleshooting hints under a displayed network failure in
// verbose mode. It only sees outcomes that reached the display.
func (s *session) showHint(_ uint64, out query.Outcome) {
	if !verbose || out.Err == nil {
		return
	}
	httperrors.Print(httperrors.Describe(out.Err, httperrors.ExtractHostFromURL(s.cfg.ServerURL)))
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}
