// FILE: lixenwraith/confstore/codec.go
package confstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Codec converts documents to and from their on-disk representation.
type Codec interface {
	// Name is the format name, e.g. "json".
	Name() string
	// Ext is the file extension including the leading dot.
	Ext() string
	// Decode parses data into a normalized value tree.
	Decode(data []byte) (any, error)
	// Encode renders a document.
	Encode(v any) ([]byte, error)
}

// Built-in codecs.
var (
	JSON Codec = jsonCodec{}
	TOML Codec = tomlCodec{}
	YAML Codec = yamlCodec{}
)

// CodecFor returns the built-in codec for a format name or file extension.
func CodecFor(format string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json", "":
		return JSON, nil
	case "toml", "tml":
		return TOML, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }
func (jsonCodec) Ext() string  { return ".json" }

// Decode rejects nesting beyond MaxDepth before building the value tree.
func (jsonCodec) Decode(data []byte) (any, error) {
	if err := checkJSONDepth(data, MaxDepth); err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Keep integer/float distinction from the literal
	var v any
	if err := decoder.Decode(&v); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return normalizeValue(v), nil
}

// Encode writes indented JSON without HTML escaping. encoding/json never
// escapes forward slashes.
func (jsonCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(markFloats(v)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type tomlCodec struct{}

func (tomlCodec) Name() string { return "toml" }
func (tomlCodec) Ext() string  { return ".toml" }

func (tomlCodec) Decode(data []byte) (any, error) {
	v := make(map[string]any)
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if err := checkValueDepth(v, MaxDepth); err != nil {
		return nil, err
	}
	return normalizeValue(v), nil
}

func (tomlCodec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = "    "
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }
func (yamlCodec) Ext() string  { return ".yaml" }

func (yamlCodec) Decode(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if err := checkValueDepth(v, MaxDepth); err != nil {
		return nil, err
	}
	return normalizeValue(v), nil
}

func (yamlCodec) Encode(v any) (data []byte, err error) {
	// yaml.v3 panics on some unsupported types instead of returning an error
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("yaml: %v", r)
		}
	}()

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(4)
	if err := encoder.Encode(markFloats(v)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// floatValue is a float that always encodes with a fraction or exponent, so
// that 1.0 reloads as a float and not as the integer 1.
type floatValue struct {
	value float64
	bits  int
}

func (f floatValue) String() string {
	// Same format switch as encoding/json
	format := byte('f')
	if abs := math.Abs(f.value); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f.value, format, -1, f.bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (f floatValue) MarshalJSON() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f floatValue) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: f.String()}, nil
}

// markFloats returns a copy of v with every float wrapped in floatValue.
// Mappings with string keys become map[string]any and lists become []any.
// Byte slices and structs are returned unchanged.
func markFloats(v any) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case float64:
		return floatValue{value: val, bits: 64}
	case float32:
		return floatValue{value: float64(val), bits: 32}
	case string, bool, int64, int:
		return v
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return v
		}
		return markFloats(rv.Elem().Interface())
	case reflect.Float32, reflect.Float64:
		return floatValue{value: rv.Float(), bits: rv.Type().Bits()}
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return v
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = markFloats(iter.Value().Interface())
		}
		return m
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return v
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = markFloats(rv.Index(i).Interface())
		}
		return list
	default:
		return v
	}
}
