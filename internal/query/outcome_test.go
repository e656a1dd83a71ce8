// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"errors"
	"testing"

	errs "promptsql/cli/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKind errs.Kind
		want     string
	}{
		{
			name:     "html error page",
			body:     "<html>500</html>",
			wantKind: errs.MalformedResponse,
			want:     "❌ Server returned non-JSON:\n<html>500</html>",
		},
		{
			name:     "empty body",
			body:     "",
			wantKind: errs.MalformedResponse,
			want:     "❌ Server returned non-JSON:\n",
		},
		{
			name:     "truncated JSON",
			body:     `{"sql_query":"SELECT`,
			wantKind: errs.MalformedResponse,
			want:     "❌ Server returned non-JSON:\n{\"sql_query\":\"SELECT",
		},
		{
			name:     "application error",
			body:     `{"error":"table not found"}`,
			wantKind: errs.ApplicationError,
			want:     "❌ Error: table not found",
		},
		{
			name:     "application error wins over success fields",
			body:     `{"sql_query":"SELECT 1","result":[],"error":"timeout"}`,
			wantKind: errs.ApplicationError,
			want:     "❌ Error: timeout",
		},
		{
			name:     "non-string error is rendered as JSON",
			body:     `{"error":{"code":42}}`,
			wantKind: errs.ApplicationError,
			want:     `❌ Error: {"code":42}`,
		},
		{
			name:     "success",
			body:     `{"sql_query":"SELECT 1","result":[{"a":1}]}`,
			want:     "✅ SQL Query:\nSELECT 1\n\n📊 Result:\n[\n  {\n    \"a\": 1\n  }\n]",
		},
		{
			name: "empty error string falls through to success",
			body: `{"error":"","sql_query":"SELECT 2","result":{}}`,
			want: "✅ SQL Query:\nSELECT 2\n\n📊 Result:\n{}",
		},
		{
			name: "null error and null result",
			body: `{"error":null,"sql_query":"SELECT NULL","result":null}`,
			want: "✅ SQL Query:\nSELECT NULL\n\n📊 Result:\nnull",
		},
		{
			name: "member order is preserved",
			body: `{"prompt":"p","sql_query":"SELECT z, a","result":{"z":1,"a":[true,"x"]}}`,
			want: "✅ SQL Query:\nSELECT z, a\n\n📊 Result:\n{\n  \"z\": 1,\n  \"a\": [\n    true,\n    \"x\"\n  ]\n}",
		},
		{
			name: "escaped strings are printed decoded",
			body: `{"sql_query":"S","result":[{"name":"Jos\u00e9"}]}`,
			want: "✅ SQL Query:\nS\n\n📊 Result:\n[\n  {\n    \"name\": \"José\"\n  }\n]",
		},
		{
			name: "numbers and slashes are normalised",
			body: `{"sql_query":"S","result":[1.0,1e2,"a\/b",-0.5,1e21,1.5e-7,"<&>"]}`,
			want: "✅ SQL Query:\nS\n\n📊 Result:\n[\n  1,\n  100,\n  \"a/b\",\n  -0.5,\n  1e+21,\n  1.5e-7,\n  \"<&>\"\n]",
		},
		{
			name: "quotes and control characters stay escaped",
			body: `{"sql_query":"S","result":"say \"hi\"\n"}`,
			want: "✅ SQL Query:\nS\n\n📊 Result:\n\"say \\\"hi\\\"\\n\"",
		},
		{
			name: "duplicate keys keep the last value",
			body: `{"error":"first","error":"","sql_query":"S","result":1}`,
			want: "✅ SQL Query:\nS\n\n📊 Result:\n1",
		},
		{
			name:     "duplicate error keeps the last value",
			body:     `{"error":"","error":"second","sql_query":"S","result":1}`,
			wantKind: errs.ApplicationError,
			want:     "❌ Error: second",
		},
		{
			name: "duplicate result members keep first position and last value",
			body: `{"sql_query":"S","result":{"a":1,"b":2,"a":3}}`,
			want: "✅ SQL Query:\nS\n\n📊 Result:\n{\n  \"a\": 3,\n  \"b\": 2\n}",
		},
		{
			name: "leading byte order mark is ignored",
			body: "\xEF\xBB\xBF{\"sql_query\":\"S\",\"result\":[]}",
			want: "✅ SQL Query:\nS\n\n📊 Result:\n[]",
		},
		{
			name:     "byte order mark is not echoed in non-JSON text",
			body:     "\xEF\xBB\xBF<html>",
			wantKind: errs.MalformedResponse,
			want:     "❌ Server returned non-JSON:\n<html>",
		},
		{
			name:     "missing result",
			body:     `{"sql_query":"SELECT 1"}`,
			wantKind: errs.MalformedSuccessPayload,
			want:     "❌ Server returned an incomplete result (missing result):\n{\"sql_query\":\"SELECT 1\"}",
		},
		{
			name:     "missing both fields",
			body:     `{}`,
			wantKind: errs.MalformedSuccessPayload,
			want:     "❌ Server returned an incomplete result (missing sql_query, result):\n{}",
		},
		{
			name:     "JSON array",
			body:     `[1,2]`,
			wantKind: errs.MalformedSuccessPayload,
			want:     "❌ Server returned an unexpected JSON value:\n[1,2]",
		},
		{
			name:     "JSON null",
			body:     `null`,
			wantKind: errs.MalformedSuccessPayload,
			want:     "❌ Server returned an unexpected JSON value:\nnull",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify([]byte(tt.body))
			if got.Kind != tt.wantKind {
				t.Errorf("Classify() kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.Text != tt.want {
				t.Errorf("Classify() text = %q, want %q", got.Text, tt.want)
			}
			if got.OK() != (tt.wantKind == "") {
				t.Errorf("Classify() OK = %v, want %v", got.OK(), tt.wantKind == "")
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	got := TransportFailure(errors.New(`Post "http://localhost:1/api/query": dial tcp: connection refused`))
	want := `❌ Request failed: Post "http://localhost:1/api/query": dial tcp: connection refused`
	if got.Text != want {
		t.Errorf("TransportFailure() = %q, want %q", got.Text, want)
	}
	if got.Kind != errs.NetworkFailure {
		t.Errorf("TransportFailure() kind = %q, want %q", got.Kind, errs.NetworkFailure)
	}
	if got.Err == nil {
		t.Error("TransportFailure() dropped the transport error")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{100, "100"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{123456789012, "123456789012"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{1.25e22, "1.25e+22"},
		{0.000001, "0.000001"},
		{0.0000001, "1e-7"},
		{-1.5e-10, "-1.5e-10"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatNumber(tt.in); got != tt.want {
				t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeTruthiness(t *testing.T) {
	tests := []struct {
		body        string
		wantFailure bool
	}{
		{`{"error":true}`, true},
		{`{"error":1}`, true},
		{`{"error":[]}`, true},
		{`{"error":false,"sql_query":"","result":0}`, false},
		{`{"error":0,"sql_query":"","result":0}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			resp, err := Decode([]byte(tt.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, isFailure := resp.(Failure)
			if isFailure != tt.wantFailure {
				t.Errorf("Decode() failure = %v, want %v", isFailure, tt.wantFailure)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`{"result":[]}`))
	var missing MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing) != 1 || missing[0] != "sql_query" {
		t.Errorf("missing = %v, want [sql_query]", missing)
	}

	_, err = Decode([]byte("not json"))
	if errs.KindOf(err) != errs.MalformedResponse {
		t.Errorf("KindOf() = %q, want %q", errs.KindOf(err), errs.MalformedResponse)
	}
}
