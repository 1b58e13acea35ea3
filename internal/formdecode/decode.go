// Package formdecode turns an application/x-www-form-urlencoded body into a
// flat key/value lookup. When a key repeats, the last value wins.
package formdecode

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMalformedForm is returned when the body is not valid form encoding.
var ErrMalformedForm = errors.New("formdecode: malformed form body")

// Values maps each form key to its last submitted value.
type Values map[string]string

// Parse decodes body. An empty body yields an empty, non-nil Values.
func Parse(body []byte) (Values, error) {
	out := Values{}
	raw := string(body)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}

	parsed, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedForm, err)
	}
	for key, values := range parsed {
		if len(values) == 0 {
			continue
		}
		out[key] = values[len(values)-1]
	}
	return out, nil
}

// Lookup returns a pointer to the value stored under key, or nil when the key
// was not submitted.
func (v Values) Lookup(key string) *string {
	value, ok := v[key]
	if !ok {
		return nil
	}
	return &value
}
