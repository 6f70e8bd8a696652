package profile

import (
	"encoding/json"
	"strings"
)

// StringSet accepts either a JSON string or a JSON array of strings and
// normalizes to a canonical slice. Client payloads historically sent
// single values as bare strings, so the coercion happens once here at
// the ingestion boundary and nowhere else.
type StringSet []string

// UnmarshalJSON implements json.Unmarshaler
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = normalizeSet([]string{single})
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = normalizeSet(many)
	return nil
}

// normalizeSet trims, lowercases and de-duplicates while preserving
// first-seen order
func normalizeSet(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
