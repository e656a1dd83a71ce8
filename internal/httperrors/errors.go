// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures into troubleshooting hints.
// The display text of a failed request is fixed; these hints are printed
// underneath it so the user knows where to look next.
package httperrors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category is the coarse cause of a transport failure.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryTimeout
	CategoryDNS
	CategoryConnectionRefused
	CategoryTLS
	CategoryCanceled
)

// Hint is a user-facing explanation of a transport failure.
type Hint struct {
	Category Category
	Title    string
	Tips     []string
}

// Classify detects the category of a transport error.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryGeneric
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	case isTimeoutError(err):
		return CategoryTimeout
	case isDNSError(err):
		return CategoryDNS
	case isConnectionRefusedError(err):
		return CategoryConnectionRefused
	case isSSLError(err):
		return CategoryTLS
	default:
		return CategoryGeneric
	}
}

// Describe builds the hint for err when talking to host.
func Describe(err error, host string) Hint {
	cat := Classify(err)
	switch cat {
	case CategoryTimeout:
		return Hint{cat, "⏱️  Connection timeout while contacting " + host, []string{
			"Query generation and execution can be slow; raise timeout_seconds if one is set",
			"The server may be under heavy load",
			"A firewall may be blocking the connection",
		}}
	case CategoryDNS:
		return Hint{cat, "🌐 Cannot resolve " + host, []string{
			"Check the server_url setting (promptsql config show)",
			"Check that your DNS settings are correct",
		}}
	case CategoryConnectionRefused:
		return Hint{cat, "🚫 Connection refused by " + host, []string{
			"Make sure the query service is running",
			"Check the host and port in server_url",
		}}
	case CategoryTLS:
		return Hint{cat, "🔒 Secure connection to " + host + " failed", []string{
			"Check the server certificate and your system clock",
			"Use an http:// server_url for a local development server",
		}}
	case CategoryCanceled:
		return Hint{cat, "Request to " + host + " was canceled", nil}
	default:
		return Hint{cat, "❌ Cannot reach " + host, []string{
			"Check your network connection",
			"Check that server_url points at the query service",
		}}
	}
}

// Print writes the hint as a pterm section.
func Print(h Hint) {
	pterm.Println()
	pterm.Println(pterm.NewStyle(pterm.FgYellow).Sprint(h.Title))
	for _, tip := range h.Tips {
		pterm.Println("  • " + tip)
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
