// File: lixenwraith/confstore/helper.go
package confstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// errDepthExceeded is wrapped into ErrInvalidJSON when a document nests too deeply.
var errDepthExceeded = errors.New("maximum nesting depth exceeded")

// checkJSONDepth scans the token stream and fails once arrays/objects nest
// deeper than max. Syntax errors are reported as they are met.
func checkJSONDepth(data []byte, max int) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	depth := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		delim, ok := tok.(json.Delim)
		if !ok {
			continue
		}
		switch delim {
		case '{', '[':
			depth++
			if depth > max {
				return fmt.Errorf("%w (%d)", errDepthExceeded, max)
			}
		case '}', ']':
			depth--
		}
	}
}

// checkValueDepth is checkJSONDepth for already decoded value trees.
func checkValueDepth(v any, max int) error {
	var walk func(v any, depth int) error
	walk = func(v any, depth int) error {
		switch val := v.(type) {
		case map[string]any:
			depth++
			if depth > max {
				return fmt.Errorf("%w (%d)", errDepthExceeded, max)
			}
			for _, child := range val {
				if err := walk(child, depth); err != nil {
					return err
				}
			}
		case map[any]any:
			depth++
			if depth > max {
				return fmt.Errorf("%w (%d)", errDepthExceeded, max)
			}
			for _, child := range val {
				if err := walk(child, depth); err != nil {
					return err
				}
			}
		case []any:
			depth++
			if depth > max {
				return fmt.Errorf("%w (%d)", errDepthExceeded, max)
			}
			for _, child := range val {
				if err := walk(child, depth); err != nil {
					return err
				}
			}
		case []map[string]any:
			depth++
			if depth > max {
				return fmt.Errorf("%w (%d)", errDepthExceeded, max)
			}
			for _, child := range val {
				if err := walk(child, depth); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(v, 0)
}

// normalizeValue converts decoder output into the document value model:
// map[string]any, []any, string, int64, float64, bool and nil.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = normalizeValue(child)
		}
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, child := range val {
			m[fmt.Sprint(k)] = normalizeValue(child)
		}
		return m
	case []any:
		for i, child := range val {
			val[i] = normalizeValue(child)
		}
		return val
	case []map[string]any:
		// TOML arrays of tables
		list := make([]any, len(val))
		for i, child := range val {
			list[i] = normalizeValue(child)
		}
		return list
	case json.Number:
		return numberValue(val)
	case int:
		return int64(val)
	case uint64:
		if val <= math.MaxInt64 {
			return int64(val)
		}
		return float64(val)
	default:
		return v
	}
}

// numberValue keeps integer literals as int64 and everything else as float64.
func numberValue(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	}
	f, _ := n.Float64()
	return f
}

// checkEncodable walks v and rejects reference cycles and values no codec can
// represent. Shared but acyclic sub-trees are allowed.
func checkEncodable(v any) error {
	onPath := make(map[uintptr]bool)

	var walk func(rv reflect.Value, path string) error
	walk = func(rv reflect.Value, path string) error {
		if !rv.IsValid() {
			return nil
		}

		switch rv.Kind() {
		case reflect.Interface:
			if rv.IsNil() {
				return nil
			}
			return walk(rv.Elem(), path)

		case reflect.Pointer, reflect.Map, reflect.Slice:
			if rv.IsNil() {
				return nil
			}
			if rv.Kind() == reflect.Slice && rv.Len() == 0 {
				return nil
			}
			ptr := rv.Pointer()
			if onPath[ptr] {
				return fmt.Errorf("cycle detected at %s", path)
			}
			onPath[ptr] = true
			defer delete(onPath, ptr)

			switch rv.Kind() {
			case reflect.Pointer:
				return walk(rv.Elem(), path)
			case reflect.Map:
				if rv.Type().Key().Kind() != reflect.String {
					return fmt.Errorf("unsupported map key type %s at %s", rv.Type().Key(), path)
				}
				iter := rv.MapRange()
				for iter.Next() {
					if err := walk(iter.Value(), path+"."+iter.Key().String()); err != nil {
						return err
					}
				}
			default:
				for i := 0; i < rv.Len(); i++ {
					if err := walk(rv.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
						return err
					}
				}
			}
			return nil

		case reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				if err := walk(rv.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
			return nil

		case reflect.Struct:
			for i := 0; i < rv.NumField(); i++ {
				if !rv.Type().Field(i).IsExported() {
					continue
				}
				if err := walk(rv.Field(i), path+"."+rv.Type().Field(i).Name); err != nil {
					return err
				}
			}
			return nil

		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("unsupported float value %v at %s", f, path)
			}
			return nil

		case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
			return fmt.Errorf("unsupported type %s at %s", rv.Type(), path)

		default:
			return nil
		}
	}

	return walk(reflect.ValueOf(v), "root")
}
