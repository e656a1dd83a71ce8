// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"bytes"
	"encoding/json"
	"strings"

	errs "promptsql/cli/internal/errors"

	"github.com/tidwall/gjson"
)

// Decode validates a response body and returns the Success or Failure it encodes.
// Errors are *errs.E of kind MalformedResponse (not JSON) or
// MalformedSuccessPayload (JSON without a usable success shape).
func Decode(body []byte) (Response, error) {
	body = TrimBOM(body)
	if !gjson.ValidBytes(body) {
		return nil, errs.New(errs.MalformedResponse, "server returned non-JSON")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, errs.New(errs.MalformedSuccessPayload, "response is not a JSON object")
	}

	_, fields := members(root)
	if e := fields["error"]; truthy(e) {
		return Failure{Error: text(e)}, nil
	}

	var missing []string
	sqlQuery := fields["sql_query"]
	if sqlQuery.Type != gjson.String {
		missing = append(missing, "sql_query")
	}
	result, ok := fields["result"]
	if !ok {
		missing = append(missing, "result")
	}
	if len(missing) > 0 {
		return nil, errs.Wrap(errs.MalformedSuccessPayload, "incomplete result", MissingFieldsError(missing))
	}

	return Success{
		SQLQuery: sqlQuery.Str,
		Result:   json.RawMessage(result.Raw),
	}, nil
}

var utf8BOM = []byte("\xEF\xBB\xBF")

// TrimBOM drops a leading UTF-8 byte order mark, as a text decoder would.
func TrimBOM(body []byte) []byte {
	return bytes.TrimPrefix(body, utf8BOM)
}

// MissingFieldsError lists the success members absent from a response.
type MissingFieldsError []string

func (m MissingFieldsError) Error() string {
	return "missing " + strings.Join(m, ", ")
}

// truthy mirrors JavaScript truthiness for a JSON value.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}

// text renders strings verbatim and any other JSON value as its JSON text.
func text(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.Str
	}
	return r.Raw
}
