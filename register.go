// FILE: lixenwraith/confstore/register.go
package confstore

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// SpecFor derives a Spec from a struct's `json` tags.
//
// Every exported field becomes a required key except fields tagged "-",
// fields with omitempty, and pointer fields. Nested structs become nested
// specs. A `confstore:"alias1|alias2"` tag lists alternate key names.
func SpecFor(v any) (Spec, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("SpecFor requires a struct or struct pointer, got nil")
	}

	// Handle pointer or direct struct value
	t := rv.Type()
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("SpecFor requires a non-nil struct pointer or value")
		}
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("SpecFor requires a struct or struct pointer, got %T", v)
	}

	var errors []string
	spec := specFields(t, "", &errors)
	if len(errors) > 0 {
		return nil, fmt.Errorf("failed to derive spec for %d field(s): %s", len(errors), strings.Join(errors, "; "))
	}
	return spec, nil
}

// specFields handles the recursive field walk.
func specFields(t reflect.Type, fieldPath string, errors *[]string) Spec {
	spec := Spec{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "-" || field.Tag.Get("confstore") == "-" {
			continue
		}

		key := field.Name
		optional := false
		if tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] != "" {
				key = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" || opt == "omitzero" {
					optional = true
				}
			}
		}
		if optional || field.Type.Kind() == reflect.Pointer {
			continue
		}

		if aliases := field.Tag.Get("confstore"); aliases != "" {
			key = key + aliasSeparator + strings.Trim(aliases, aliasSeparator)
		}

		want, err := expectationFor(field.Type, fieldPath+field.Name+".", errors)
		if err != nil {
			*errors = append(*errors, fmt.Sprintf("field %s%s: %v", fieldPath, field.Name, err))
			continue
		}
		spec = append(spec, Field{Key: key, Want: want})
	}

	return spec
}

// expectationFor maps a Go field type to the expectation its JSON form must meet.
func expectationFor(t reflect.Type, fieldPath string, errors *[]string) (Expectation, error) {
	switch t {
	case durationType:
		return Verify(func(v any) bool {
			kind := KindOf(v)
			return kind == KindString || kind == KindInteger
		}, "expected duration string or integer nanoseconds"), nil
	case timeType:
		return Type(KindString), nil
	}

	switch t.Kind() {
	case reflect.String:
		return Type(KindString), nil
	case reflect.Bool:
		return Type(KindBoolean), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Type(KindInteger), nil
	case reflect.Float32, reflect.Float64:
		// integer literals are valid floats
		return Verify(func(v any) bool {
			kind := KindOf(v)
			return kind == KindFloat || kind == KindInteger
		}, "expected number"), nil
	case reflect.Slice, reflect.Array:
		return Type(KindArray), nil
	case reflect.Map:
		return Type(KindMapping), nil
	case reflect.Interface:
		return Type(KindAny), nil
	case reflect.Struct:
		return Nested(specFields(t, fieldPath, errors)), nil
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}
