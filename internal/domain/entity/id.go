package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrInvalidID is returned when a JSON id is neither a string nor an integer.
var ErrInvalidID = errors.New("id must be a string or an integer")

// ID identifies a server-owned record. The club API sends ids as JSON
// strings for some resources and as numbers for others; both decode here.
type ID string

// String returns the id as it appears in URL paths.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// UnmarshalJSON accepts "12", 12 and null.
// PRE: data is a single JSON value
// POST: id holds the textual form of the value; null leaves it empty
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidID
	}
	*id = ID(strconv.FormatInt(n, 10))
	return nil
}

// MarshalJSON always emits a string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// IDs converts strings from a multi-select form into ids, skipping blanks.
func IDs(values []string) []ID {
	out := make([]ID, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		out = append(out, ID(v))
	}
	return out
}
