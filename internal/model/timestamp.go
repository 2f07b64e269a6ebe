package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// legacyLayout is the zone-less ISO-8601 form written by older versions of
// the backing file (e.g. "2024-05-01T09:30:12.123456").
// time.Parse accepts a trailing fractional second even though the layout
// omits it.
const legacyLayout = "2006-01-02T15:04:05"

// Timestamp is a time.Time that round-trips through the backing file.
//
// It always marshals as RFC 3339 with nanoseconds. Unmarshalling also
// accepts legacyLayout, read in the local zone, so existing files load.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) String() string {
	return t.Time.Format(time.RFC3339Nano)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a JSON string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimestamp parses RFC 3339 first, then the legacy zone-less layout.
func ParseTimestamp(s string) (Timestamp, error) {
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: v}, nil
	}
	v, err := time.ParseInLocation(legacyLayout, s, time.Local)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{Time: v}, nil
}
