// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the promptsql CLI application.
// It sends natural-language prompts to a query service and renders the
// generated SQL and its result in the terminal.
package main

import (
	"promptsql/cli/cmd"
)

// main is the entry point for the promptsql CLI application.
func main() {
	cmd.Execute()
}
