// Package jsonutil holds the JSON codec used to move items between their
// typed form and the generic object form handled by the admin registry.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// api keeps numbers as json.Number so integers round-trip without loss and
// sorts map keys so encoded objects are stable.
var api = sonic.Config{
	EscapeHTML:       true,
	SortMapKeys:      true,
	CompactMarshaler: true,
	CopyString:       true,
	ValidateString:   true,
	UseNumber:        true,
}.Froze()

// Marshal encodes v.
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// Unmarshal decodes data into v, keeping numbers as json.Number when v holds
// untyped values.
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// ToObject encodes v and decodes the result as a JSON object. ok is false when
// v encodes to anything other than an object (including null).
func ToObject(v any) (obj map[string]any, ok bool, err error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, false, err
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		return nil, false, err
	}
	obj, ok = decoded.(map[string]any)
	if !ok || obj == nil {
		return nil, false, nil
	}
	return obj, true, nil
}

// Convert re-encodes src into dst. Keys in src with no matching field in dst
// are ignored.
func Convert(src any, dst any) error {
	data, err := Marshal(src)
	if err != nil {
		return err
	}
	dec := api.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("jsonutil: decode %T: %w", dst, err)
	}
	return nil
}

// Number normalises the supported numeric Go values into a json.Number.
func Number(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		return n, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return json.Number(fmt.Sprintf("%d", n)), true
	case float32:
		return json.Number(strconv.FormatFloat(float64(n), 'f', -1, 32)), true
	case float64:
		return json.Number(strconv.FormatFloat(n, 'f', -1, 64)), true
	default:
		return "", false
	}
}
