// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package query defines the wire contract of the /api/query endpoint and the
// classification of its responses. A response is decoded once, at the network
// boundary, into an explicit Success or Failure value; every other shape is
// reported as a typed error so callers never probe raw fields themselves.
package query

import "encoding/json"

// Request is the body posted to the query endpoint.
type Request struct {
	Prompt string `json:"prompt"`
}

// Response is either Success or Failure.
type Response interface {
	isResponse()
}

// Success carries the generated SQL and its execution result.
type Success struct {
	SQLQuery string
	// Result is the raw JSON of the result member, in the server's key order.
	Result json.RawMessage
}

// Failure carries a server-reported error message.
type Failure struct {
	Error string
}

func (Success) isResponse() {}
func (Failure) isResponse() {}
