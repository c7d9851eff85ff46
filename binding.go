package imageconf

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Unmarshal decodes the resolved options of a section into v, which must be a
// pointer to a struct or map. Fields are matched by their `ini` tag, or by name
// case-insensitively. Strings are converted weakly: "true" to bool, "8" to int,
// "30s" to time.Duration, and whitespace-separated words to []string (the shape
// of a merged option).
func (c *Config) Unmarshal(sectionName string, v any) error {
	items, err := c.Items(sectionName)
	if err != nil {
		return err
	}
	data := make(map[string]any, len(items))
	for _, item := range items {
		data[item.Name] = item.Value
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "ini",
		Result:           v,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToListHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("unmarshal section %s: %w", sectionName, err)
	}
	return nil
}

func stringToListHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Slice {
			return data, nil
		}
		if t.Elem().Kind() != reflect.String {
			return data, nil
		}
		return strings.Fields(data.(string)), nil
	}
}
