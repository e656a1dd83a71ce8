// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so a failed prompt submission can be classified once at
// the network boundary and rendered or logged consistently afterwards.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// NetworkFailure indicates the request never produced a readable response
	// (DNS, connection refused, abort, timeout, truncated body).
	NetworkFailure Kind = "network_failure"
	// MalformedResponse indicates the server answered with a body that is not JSON.
	MalformedResponse Kind = "malformed_response"
	// ApplicationError indicates the server reported a failure through the error field.
	ApplicationError Kind = "application_error"
	// MalformedSuccessPayload indicates valid JSON without an error field that
	// lacks the sql_query or result members.
	MalformedSuccessPayload Kind = "malformed_success_payload"
	// ConfigInvalid indicates a rejected configuration value.
	ConfigInvalid Kind = "config_invalid"
	// KeychainUnavailable indicates the OS credential store could not be used.
	KeychainUnavailable Kind = "keychain_unavailable"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the first *E in err's chain, or "" when none is present.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
