// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIMESTAMP TYPE
// =============================================================================

// offsetLayouts are tried in order for date-times without a zone offset.
// They are read as local time. time.Parse accepts fractional seconds after
// the seconds field even when the layout omits them.
var offsetLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

const dateLayout = "2006-01-02"

// Timestamp is a service-assigned time that never fails to decode.
// Values that do not parse keep their text in Raw and render verbatim.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp reads s as RFC 3339, then as an offset-less date-time in
// local time, then as a date in UTC. Anything else is kept as Raw.
// Empty or blank input yields the zero Timestamp.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}
	}
	for _, layout := range offsetLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}
		}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Timestamp{Time: t}
	}
	return Timestamp{Raw: s}
}

// IsZero reports whether ts carries neither a time nor raw text.
func (ts Timestamp) IsZero() bool {
	return ts.Time.IsZero() && ts.Raw == ""
}

// Valid reports whether ts holds a parsed time.
func (ts Timestamp) Valid() bool {
	return !ts.Time.IsZero()
}

// Equal compares parsed times by instant and unparsed values by text.
func (ts Timestamp) Equal(other Timestamp) bool {
	if ts.Valid() || other.Valid() {
		return ts.Time.Equal(other.Time)
	}
	return ts.Raw == other.Raw
}

// Format renders a parsed time in local time with layout. Unparsed values
// render their raw text and the zero Timestamp renders as "-".
func (ts Timestamp) Format(layout string) string {
	switch {
	case ts.Valid():
		return ts.Time.Local().Format(layout)
	case ts.Raw != "":
		return ts.Raw
	default:
		return "-"
	}
}

// String is the storage form: RFC 3339 in UTC, the raw text, or "".
func (ts Timestamp) String() string {
	if ts.Valid() {
		return ts.Time.UTC().Format(time.RFC3339Nano)
	}
	return ts.Raw
}

// UnmarshalJSON accepts strings, epoch milliseconds and null. It only
// fails on malformed JSON; unexpected values are kept as raw text.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*ts = Timestamp{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*ts = ParseTimestamp(s)
		return nil
	}

	if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*ts = Timestamp{Time: time.UnixMilli(ms).UTC()}
		return nil
	}
	*ts = Timestamp{Raw: string(data)}
	return nil
}

// MarshalJSON writes the storage form, or null for the zero Timestamp.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

// MarshalYAML writes the storage form.
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return ts.String(), nil
}
