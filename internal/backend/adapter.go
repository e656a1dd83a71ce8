// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client side of the natural-language query service.
// It defines the API contract the submitter depends on and an HTTP implementation
// that posts prompts to the configured endpoint and returns the raw response for
// classification by the caller.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call the real HTTP endpoint or provide fakes for tests.
type API interface {
	// Query posts prompt to the query endpoint and returns the full response.
	// A non-nil error means no response body could be obtained.
	Query(ctx context.Context, prompt string) (*Response, error)
}

// Response is a fully read HTTP response. The status code is informational:
// classification is done on the body alone.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}
