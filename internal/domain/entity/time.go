package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the layout the club API and HTML date inputs use for dates.
const DateLayout = "2006-01-02"

// Location is the club's local time zone. Form values without an offset are
// read in it and presenters display in it.
var Location = time.UTC

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", DateLayout}

// Time is a timestamp that also accepts bare dates such as a birth date.
type Time struct {
	time.Time
}

// ParseTime parses any layout the club API or an HTML form produces.
// PRE: none
// POST: Returns the zero Time for an empty string
func ParseTime(s string) (Time, error) {
	if s == "" {
		return Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return Time{t}, nil
		}
	}
	return Time{}, fmt.Errorf("unrecognised time %q", s)
}

// UnmarshalJSON accepts RFC 3339 timestamps, bare dates and null.
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON emits RFC 3339, or null for the zero value.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// DateString formats the value for an <input type="date">.
func (t Time) DateString() string {
	if t.IsZero() {
		return ""
	}
	return t.Time.In(Location).Format(DateLayout)
}

// LocalString formats the value for an <input type="datetime-local">.
func (t Time) LocalString() string {
	if t.IsZero() {
		return ""
	}
	return t.Time.In(Location).Format("2006-01-02T15:04")
}

// Timestamps are carried by every record.
type Timestamps struct {
	CreatedAt Time `json:"createdAt"`
	UpdatedAt Time `json:"updatedAt"`
}
