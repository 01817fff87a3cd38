// timestamp.go - Lenient JSON time values and query date parsing

package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Timestamp accepts RFC 3339 timestamps and plain YYYY-MM-DD days in JSON,
// which is what the frontend date pickers send.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

// Ptr returns a pointer to the wrapped time, or nil for a nil receiver.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// ParseTime parses RFC 3339 or YYYY-MM-DD (as UTC midnight).
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised time %q", ErrInvalidInput, s)
}

// ParseRangeEnd parses an upper date bound. A bare day covers the whole day:
// it comes back as the start of the next day with exclusive set.
func ParseRangeEnd(s string) (t time.Time, exclusive bool, err error) {
	if day, err := time.Parse(dayLayout, s); err == nil {
		return day.AddDate(0, 0, 1), true, nil
	}
	t, err = ParseTime(s)
	return t, false, err
}
