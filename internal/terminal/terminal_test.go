// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"os"
	"strings"
	"testing"
)

func TestReadSecretFromPipe(t *testing.T) {
	got, err := ReadSecret(strings.NewReader("  tok-abc \nignored\n"))
	if err != nil {
		t.Fatalf("ReadSecret() error: %v", err)
	}
	if got != "tok-abc" {
		t.Errorf("ReadSecret() = %q, want %q", got, "tok-abc")
	}
}

func TestReadSecretWithoutNewline(t *testing.T) {
	got, err := ReadSecret(strings.NewReader("tok"))
	if err != nil {
		t.Fatalf("ReadSecret() error: %v", err)
	}
	if got != "tok" {
		t.Errorf("ReadSecret() = %q, want %q", got, "tok")
	}
}

func TestIsInteractive(t *testing.T) {
	if IsInteractive(nil) {
		t.Error("nil file must not be interactive")
	}
	f, err := os.CreateTemp(t.TempDir(), "plain")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsInteractive(f) {
		t.Error("regular file must not be interactive")
	}
}
