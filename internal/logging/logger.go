// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"promptsql/cli/internal/xdg"

	"github.com/pterm/pterm"
)

// LogFileName is the diagnostic log kept in the XDG state directory.
const LogFileName = "promptsql.log"

// ParseLevel maps a config log level to a pterm level. Unknown values map to info.
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "disabled", "off", "none":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelInfo
	}
}

// New builds a structured logger writing to w. JSON output is used for files,
// the colorful formatter for terminals.
func New(w io.Writer, level string, json bool) *pterm.Logger {
	lvl := ParseLevel(level)
	if lvl == pterm.LogLevelDisabled {
		w = io.Discard
	}
	l := pterm.DefaultLogger.WithWriter(w).WithLevel(lvl)
	if json {
		l = l.WithFormatter(pterm.LogFormatterJSON)
	}
	return l
}

// Discard returns a logger that writes nothing.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithWriter(io.Discard).WithLevel(pterm.LogLevelDisabled)
}

// OpenFile opens the diagnostic log file for appending with 0600 permissions.
func OpenFile() (*os.File, string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, "", err
	}
	p := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, p, err
	}
	return f, p, nil
}
