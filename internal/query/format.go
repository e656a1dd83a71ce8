// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

package query

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const indentUnit = "  "

// IndentResult re-serializes a JSON value with two-space indentation the way
// a browser prints a parsed value: strings are unescaped (only what JSON
// requires is escaped again), numbers use their shortest decimal form,
// members keep their first position and duplicate keys keep their last value.
// Invalid input is returned unchanged.
func IndentResult(raw json.RawMessage) string {
	if !gjson.ValidBytes(raw) {
		return string(raw)
	}
	var b strings.Builder
	writeValue(&b, gjson.ParseBytes(raw), 0)
	return b.String()
}

func writeValue(b *strings.Builder, v gjson.Result, depth int) {
	switch v.Type {
	case gjson.String:
		b.WriteString(quote(v.Str))
	case gjson.Number:
		b.WriteString(formatNumber(v.Num))
	case gjson.True:
		b.WriteString("true")
	case gjson.False:
		b.WriteString("false")
	case gjson.Null:
		b.WriteString("null")
	case gjson.JSON:
		if v.IsArray() {
			writeArray(b, v, depth)
		} else {
			writeObject(b, v, depth)
		}
	}
}

func writeArray(b *strings.Builder, v gjson.Result, depth int) {
	items := v.Array()
	if len(items) == 0 {
		b.WriteString("[]")
		return
	}
	b.WriteString("[\n")
	for i, item := range items {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(strings.Repeat(indentUnit, depth+1))
		writeValue(b, item, depth+1)
	}
	b.WriteString("\n" + strings.Repeat(indentUnit, depth) + "]")
}

func writeObject(b *strings.Builder, v gjson.Result, depth int) {
	keys, values := members(v)
	if len(keys) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(strings.Repeat(indentUnit, depth+1))
		b.WriteString(quote(k))
		b.WriteString(": ")
		writeValue(b, values[k], depth+1)
	}
	b.WriteString("\n" + strings.Repeat(indentUnit, depth) + "}")
}

// members returns an object's keys in first-seen order and the last value
// given for each key.
func members(v gjson.Result) ([]string, map[string]gjson.Result) {
	var keys []string
	values := make(map[string]gjson.Result)
	v.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if _, seen := values[k]; !seen {
			keys = append(keys, k)
		}
		values[k] = value
		return true
	})
	return keys, values
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// formatNumber prints a float64 the way JavaScript's Number#toString does:
// plain decimal notation for exponents in [-7, 21), exponent notation with an
// explicit sign otherwise. Values outside float64 range print as null.
func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Shortest round-trip digits as d.ddde±xx.
	e := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expText, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expText)
	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	out := digits[:1]
	if k > 1 {
		out += "." + digits[1:]
	}
	return sign + out + "e" + expSign + strconv.Itoa(abs(n-1))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
