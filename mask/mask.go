// Package mask redacts sensitive struct fields before they reach logs.
// Fields tagged `mask:"true"` keep their key but lose their value.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const tagName = "mask"

// nameTags are checked in order when resolving a field's display name.
var nameTags = []string{"json", "yaml"} //nolint:gochecknoglobals // static lookup

// StructToOrdMap flattens v into an ordered map of field names to values,
// replacing the values of fields tagged `mask:"true"`. Field names follow
// the json tag, then the yaml tag, then the Go field name; fields tagged
// with "-" are dropped. Nested structs are flattened with dotted keys.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	if v == nil {
		return nil
	}
	return flatten(reflect.ValueOf(v), "")
}

func flatten(val reflect.Value, prefix string) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()

	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return om
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return om
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		name, skip := fieldName(fieldType)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		switch {
		case strings.EqualFold(fieldType.Tag.Get(tagName), "true"):
			om.Set(name, redact(field))
		case expandable(field):
			nested := flatten(field, name)
			for pair := nested.Oldest(); pair != nil; pair = pair.Next() {
				om.Set(pair.Key, pair.Value)
			}
		default:
			om.Set(name, field.Interface())
		}
	}

	return om
}

func expandable(val reflect.Value) bool {
	kind := val.Kind()
	if kind == reflect.Pointer {
		if val.IsNil() {
			return false
		}
		kind = val.Elem().Kind()
	}
	return kind == reflect.Struct
}

// redact replaces a value with a kind-specific placeholder. Nil and zero
// values pass through untouched so the output still shows absence.
func redact(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds fall through
	case reflect.Pointer:
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	case reflect.Slice, reflect.Map:
		if val.IsNil() {
			return nil
		}
	}

	if val.IsZero() {
		return val.Interface()
	}

	return placeholder(val.Kind())
}

func placeholder(kind reflect.Kind) string {
	switch kind { //nolint:exhaustive // remaining kinds use the generic form
	case reflect.String:
		return "***masked-string***"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "***masked-int***"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "***masked-uint***"
	case reflect.Float32, reflect.Float64:
		return "***masked-float***"
	case reflect.Bool:
		return "***masked-bool***"
	case reflect.Struct:
		return "***masked-struct***"
	case reflect.Slice, reflect.Array:
		return "***masked-slice***"
	case reflect.Map:
		return "***masked-map***"
	default:
		return fmt.Sprintf("***masked-%s***", kind)
	}
}

// fieldName resolves the display name of a struct field. The second result
// reports whether the field is excluded entirely.
func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range nameTags {
		value, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		if value == "-" {
			return "", true
		}
		if idx := strings.Index(value, ","); idx != -1 {
			value = value[:idx]
		}
		if value != "" {
			return value, false
		}
	}
	return field.Name, false
}
