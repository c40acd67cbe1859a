package verification

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Payload is an opaque provider response body, kept verbatim as JSON.
type Payload []byte

func (p Payload) Get(path string) gjson.Result {
	return gjson.GetBytes(p, path)
}

// IsEmpty reports whether the payload carries no result: absent, null, false,
// an empty string, an empty object or an empty array.
func (p Payload) IsEmpty() bool {
	if len(bytes.TrimSpace(p)) == 0 || !gjson.ValidBytes(p) {
		return true
	}
	r := gjson.ParseBytes(p)
	switch {
	case r.IsObject():
		return len(r.Map()) == 0
	case r.IsArray():
		return len(r.Array()) == 0
	case r.Type == gjson.Null, r.Type == gjson.False:
		return true
	case r.Type == gjson.String:
		return r.Str == ""
	}
	return false
}

// Value decodes the payload for storage in a JSON column.
func (p Payload) Value() any {
	if len(bytes.TrimSpace(p)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(p, &v); err != nil {
		return string(p)
	}
	return v
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(p)) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}
