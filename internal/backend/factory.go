// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"promptsql/cli/internal/config"
)

// New creates a backend API implementation from configuration.
// token is sent as a bearer token when non-empty.
func New(cfg config.Config, token, userAgent string) API {
	return newHTTP(cfg.ServerURL, cfg.Endpoints, token, userAgent, cfg.Timeout())
}
