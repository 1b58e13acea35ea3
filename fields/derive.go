package fields

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotStruct is returned by FromStruct when T is not a struct.
var ErrNotStruct = errors.New("fields: type is not a struct")

// ErrUnsupportedField is returned for struct fields with no field kind.
var ErrUnsupportedField = errors.New("fields: unsupported field type")

var jsonNumberType = reflect.TypeOf(json.Number(""))

// FromStruct derives field configs from the exported fields of T in
// declaration order. Keys follow the json tag so they line up with the
// encoded item. The admin tag accepts readonly, optional, markdown,
// label=<text>, help=<text> and "-" to skip the field.
//
//	type Person struct {
//		ID      int    `json:"id" admin:"readonly"`
//		Name    string `json:"name" admin:"label=Full name"`
//		IsAdult bool   `json:"is_adult"`
//	}
func FromStruct[T any]() ([]FieldConfig, error) {
	var zero T
	typ := reflect.TypeOf(&zero).Elem()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, typ)
	}

	var out []FieldConfig
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		key, skip := jsonKey(field)
		if skip {
			continue
		}
		tag := parseAdminTag(field.Tag.Get("admin"))
		if tag.skip {
			continue
		}

		valueType := field.Type
		optional := tag.optional
		if valueType.Kind() == reflect.Pointer {
			valueType = valueType.Elem()
			optional = true
		}

		kind, ok := kindOf(valueType)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s (%s)", ErrUnsupportedField, typ.Name(), field.Name, field.Type)
		}
		if tag.markdown {
			if kind != KindText {
				return nil, fmt.Errorf("%w: %s.%s markdown requires a string", ErrUnsupportedField, typ.Name(), field.Name)
			}
			kind = KindMarkdown
		}

		var opts []Option
		if optional {
			opts = append(opts, Optional())
		}
		if tag.help != "" {
			opts = append(opts, WithHelpText(tag.help))
		}
		out = append(out, build(kind, key, tag.label, tag.readOnly, nil, opts))
	}
	return out, nil
}

// MustFromStruct is FromStruct that panics on error.
func MustFromStruct[T any]() []FieldConfig {
	configs, err := FromStruct[T]()
	if err != nil {
		panic(err)
	}
	return configs
}

func jsonKey(field reflect.StructField) (string, bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return field.Name, false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	if name == "" {
		return field.Name, false
	}
	return name, false
}

func kindOf(typ reflect.Type) (Kind, bool) {
	if typ == jsonNumberType {
		return KindNumber, true
	}
	switch typ.Kind() {
	case reflect.String:
		return KindText, true
	case reflect.Bool:
		return KindBoolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindNumber, true
	default:
		return "", false
	}
}

type adminTag struct {
	skip     bool
	readOnly bool
	optional bool
	markdown bool
	label    string
	help     string
}

func parseAdminTag(raw string) adminTag {
	var tag adminTag
	raw = strings.TrimSpace(raw)
	if raw == "-" {
		tag.skip = true
		return tag
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		key, value, hasValue := strings.Cut(part, "=")
		switch {
		case part == "readonly":
			tag.readOnly = true
		case part == "optional":
			tag.optional = true
		case part == "markdown":
			tag.markdown = true
		case hasValue && key == "label":
			tag.label = strings.TrimSpace(value)
		case hasValue && key == "help":
			tag.help = strings.TrimSpace(value)
		}
	}
	return tag
}
