// FILE: lixenwraith/confstore/decode.go
package confstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Decode copies the document into target, a non-nil pointer to a struct or
// map. Fields are matched by their `json` tags.
func (d Document) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(map[string]any(d)); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// DecodePath decodes the mapping found at a dot-separated path into target.
func (d Document) DecodePath(path string, target any) error {
	v, ok := d.Lookup(path)
	if !ok {
		return fmt.Errorf("path %q not found", path)
	}
	m, ok := asMap(v)
	if !ok {
		return fmt.Errorf("path %q refers to non-map value (type %T)", path, v)
	}
	return Document(m).Decode(target)
}

// decodeHook returns the composite decode hook for string conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}
