// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"errors"

	errs "promptsql/cli/internal/errors"
)

// Display prefixes for each terminal outcome.
const (
	requestFailedPrefix = "❌ Request failed: "
	nonJSONPrefix       = "❌ Server returned non-JSON:\n"
	errorPrefix         = "❌ Error: "
	notObjectPrefix     = "❌ Server returned an unexpected JSON value:\n"
	successSQLHeader    = "✅ SQL Query:\n"
	successResultHeader = "\n\n📊 Result:\n"
)

// Outcome is the terminal classification of one submission together with the
// text to display for it. Exactly one outcome is produced per submission.
type Outcome struct {
	// Kind is empty on success.
	Kind errs.Kind
	Text string
	// Err is the transport error behind a NetworkFailure.
	Err error
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.Kind == "" }

// TransportFailure builds the outcome for a request that never produced a body.
func TransportFailure(err error) Outcome {
	return Outcome{
		Kind: errs.NetworkFailure,
		Text: requestFailedPrefix + err.Error(),
		Err:  err,
	}
}

// Classify decodes a response body and renders its outcome.
func Classify(body []byte) Outcome {
	body = TrimBOM(body)
	resp, err := Decode(body)
	if err != nil {
		return decodeFailure(err, string(body))
	}

	switch r := resp.(type) {
	case Failure:
		return Outcome{Kind: errs.ApplicationError, Text: errorPrefix + r.Error}
	case Success:
		return Outcome{Text: RenderSuccess(r)}
	}
	return Outcome{Kind: errs.MalformedSuccessPayload, Text: notObjectPrefix + string(body)}
}

func decodeFailure(err error, raw string) Outcome {
	var missing MissingFieldsError
	if errors.As(err, &missing) {
		return Outcome{
			Kind: errs.MalformedSuccessPayload,
			Text: "❌ Server returned an incomplete result (" + missing.Error() + "):\n" + raw,
		}
	}
	if errs.KindOf(err) == errs.MalformedSuccessPayload {
		return Outcome{Kind: errs.MalformedSuccessPayload, Text: notObjectPrefix + raw}
	}
	return Outcome{Kind: errs.MalformedResponse, Text: nonJSONPrefix + raw}
}

// RenderSuccess formats the generated SQL and the result indented by two spaces.
func RenderSuccess(s Success) string {
	return successSQLHeader + s.SQLQuery + successResultHeader + IndentResult(s.Result)
}
