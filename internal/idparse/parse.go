// Package idparse provides default string to identifier parsers for the
// identifier types resources commonly use.
package idparse

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ErrEmptyID is returned for blank identifiers.
var ErrEmptyID = errors.New("idparse: identifier is empty")

// Func parses the string form of an identifier.
type Func[ID any] func(raw string) (ID, error)

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	ulidType = reflect.TypeOf(ulid.ULID{})
)

// For returns the default parser for ID. ok is false when ID has no default
// parser; callers must then supply their own.
//
// Supported: every signed and unsigned integer kind, string kinds,
// uuid.UUID, ulid.ULID and any type whose pointer implements
// encoding.TextUnmarshaler.
func For[ID any]() (Func[ID], bool) {
	var zero ID
	typ := reflect.TypeOf(&zero).Elem()

	switch {
	case typ == uuidType:
		return func(raw string) (ID, error) {
			var id ID
			parsed, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return id, fmt.Errorf("idparse: invalid uuid %q: %w", raw, err)
			}
			reflect.ValueOf(&id).Elem().Set(reflect.ValueOf(parsed))
			return id, nil
		}, true
	case typ == ulidType:
		return func(raw string) (ID, error) {
			var id ID
			parsed, err := ulid.ParseStrict(strings.TrimSpace(raw))
			if err != nil {
				return id, fmt.Errorf("idparse: invalid ulid %q: %w", raw, err)
			}
			reflect.ValueOf(&id).Elem().Set(reflect.ValueOf(parsed))
			return id, nil
		}, true
	}

	if _, ok := any(&zero).(encoding.TextUnmarshaler); ok {
		return func(raw string) (ID, error) {
			var id ID
			if strings.TrimSpace(raw) == "" {
				return id, ErrEmptyID
			}
			if err := any(&id).(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
				return id, fmt.Errorf("idparse: invalid %s %q: %w", typ, raw, err)
			}
			return id, nil
		}, true
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(raw string) (ID, error) {
			var id ID
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, typ.Bits())
			if err != nil {
				return id, fmt.Errorf("idparse: invalid %s %q: %w", typ, raw, err)
			}
			reflect.ValueOf(&id).Elem().SetInt(n)
			return id, nil
		}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(raw string) (ID, error) {
			var id ID
			n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, typ.Bits())
			if err != nil {
				return id, fmt.Errorf("idparse: invalid %s %q: %w", typ, raw, err)
			}
			reflect.ValueOf(&id).Elem().SetUint(n)
			return id, nil
		}, true
	case reflect.String:
		return func(raw string) (ID, error) {
			var id ID
			if strings.TrimSpace(raw) == "" {
				return id, ErrEmptyID
			}
			reflect.ValueOf(&id).Elem().SetString(raw)
			return id, nil
		}, true
	}

	return nil, false
}

// Format renders id the way For parses it back.
func Format(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case encoding.TextMarshaler:
		text, err := v.MarshalText()
		if err == nil {
			return string(text)
		}
	}
	return fmt.Sprint(id)
}
