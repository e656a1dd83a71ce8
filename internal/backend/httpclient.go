// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"promptsql/cli/internal/config"
	"promptsql/cli/internal/query"
)

// HTTP implements API over the REST endpoint.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:9000")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints config.Endpoints
	// client is the underlying HTTP client; its timeout is zero unless configured
	client    *http.Client
	token     string
	userAgent string
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
// A zero timeout leaves timing to the transport defaults.
func newHTTP(baseURL string, endpoints config.Endpoints, token, userAgent string, timeout time.Duration) *HTTP {
	return &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: timeout},
		token:     strings.TrimSpace(token),
		userAgent: userAgent,
	}
}

// Query calls POST /api/query with {"prompt": prompt}. The prompt is sent
// verbatim, including when empty.
func (h *HTTP) Query(ctx context.Context, prompt string) (*Response, error) {
	b, err := json.Marshal(query.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Query, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// setStandardHeaders applies headers shared by every request.
func (h *HTTP) setStandardHeaders(req *http.Request) {
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	req.Header.Set("Accept", "application/json, */*")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
}
