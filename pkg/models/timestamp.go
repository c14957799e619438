package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// legacyLayout matches the zone-less ISO-8601 stamps written by earlier runners
const legacyLayout = "2006-01-02T15:04:05.999999999"

// Timestamp is a UTC instant that encodes as an RFC 3339 string
type Timestamp struct {
	time.Time
}

// Now returns the current time without its monotonic reading, so a
// Timestamp compares equal to itself after an encode/decode round trip.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Round(0)}
}

// NewTimestamp wraps t, normalized to UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Round(0)}
}

// ParseTimestamp accepts RFC 3339 or a zone-less ISO-8601 string (read as UTC)
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewTimestamp(t), nil
	}
	t, err := time.ParseInLocation(legacyLayout, s, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return NewTimestamp(t), nil
}

func (t Timestamp) String() string {
	return t.Time.Format(time.RFC3339Nano)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
