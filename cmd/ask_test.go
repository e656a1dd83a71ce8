// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"promptsql/cli/internal/config"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv(config.EnvToken, "test-token")
	t.Setenv(config.EnvServer, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvTimeout, "")
	t.Setenv(config.EnvVerbose, "")

	askFromStdin, shellOverlap, verbose, serverOverride = false, false, false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func queryServer(t *testing.T, handler func(prompt string) string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		var req struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_, _ = w.Write([]byte(handler(req.Prompt)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAskSuccess(t *testing.T) {
	var got string
	srv := queryServer(t, func(prompt string) string {
		got = prompt
		return `{"sql_query":"SELECT 1","result":[{"a":1}]}`
	})

	out, err := runCLI(t, "", "--server", srv.URL, "ask", "how", "many", "loans?")
	if err != nil {
		t.Fatalf("ask error: %v", err)
	}
	if got != "how many loans?" {
		t.Errorf("server got prompt %q", got)
	}
	want := "Processing your request...\n✅ SQL Query:\nSELECT 1\n\n📊 Result:\n[\n  {\n    \"a\": 1\n  }\n]\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestAskApplicationError(t *testing.T) {
	srv := queryServer(t, func(string) string { return `{"error":"Prompt is empty"}` })

	out, err := runCLI(t, "", "--server", srv.URL, "ask")
	if !errors.Is(err, errFailedOutcome) {
		t.Fatalf("ask error = %v, want errFailedOutcome", err)
	}
	if !strings.HasSuffix(out, "❌ Error: Prompt is empty\n") {
		t.Errorf("output = %q", out)
	}
}

func TestAskFromStdin(t *testing.T) {
	var got string
	srv := queryServer(t, func(prompt string) string {
		got = prompt
		return `{"sql_query":"SELECT 2","result":null}`
	})

	if _, err := runCLI(t, "average rate\nby month\n", "--server", srv.URL, "ask", "--stdin"); err != nil {
		t.Fatalf("ask error: %v", err)
	}
	if got != "average rate\nby month" {
		t.Errorf("server got prompt %q", got)
	}
}

func TestShellSubmitsEachLine(t *testing.T) {
	var prompts []string
	srv := queryServer(t, func(prompt string) string {
		prompts = append(prompts, prompt)
		return `<html>502</html>`
	})

	out, err := runCLI(t, "first\n\nthird\n", "--server", srv.URL, "shell")
	if err != nil {
		t.Fatalf("shell error: %v", err)
	}
	if len(prompts) != 3 || prompts[0] != "first" || prompts[1] != "" || prompts[2] != "third" {
		t.Errorf("prompts = %q", prompts)
	}
	if got := strings.Count(out, "❌ Server returned non-JSON:\n<html>502</html>"); got != 3 {
		t.Errorf("rendered %d failures, want 3: %q", got, out)
	}
}

func TestInvalidServerFlag(t *testing.T) {
	_, err := runCLI(t, "", "--server", "ftp://nope", "ask", "x")
	if err == nil || errors.Is(err, errFailedOutcome) {
		t.Fatalf("expected config error, got %v", err)
	}
}
