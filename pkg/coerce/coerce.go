// Package coerce converts raw field values to their declared types.
//
// Cast and required error messages are part of the external contract
// and must not change format.
package coerce

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnmodel/pkg/schema"
)

// Coerce converts a raw value to the declared type of a field.
//
// A nil raw value means the field is not set: a declared default
// producer is invoked and its output returned as-is (trusted, no
// further coercion); a required field without a default fails with
// *RequiredError; an optional field without a default yields
// (nil, nil), meaning the field simply has no value.
//
// String accepts any value. Number accepts Go numerics and numeric
// strings, producing float64. Boolean accepts bool, the numbers 0 and
// 1, and the strings "true" and "false". Timestamp accepts time.Time,
// ISO 8601 strings and integer epoch milliseconds. Conversion failures
// return *CastError.
func Coerce(fd schema.FieldDefinition, raw any) (any, error) {
	if raw == nil {
		if fd.Default != nil {
			return fd.Default(), nil
		}
		if fd.Required {
			return nil, &RequiredError{Path: fd.Name}
		}
		return nil, nil
	}

	switch fd.Type {
	case schema.Number:
		return toNumber(fd.Name, raw)
	case schema.Boolean:
		return toBoolean(fd.Name, raw)
	case schema.Timestamp:
		return toTimestamp(fd.Name, raw)
	default:
		return toString(raw), nil
	}
}

func toString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(raw)
	}
}

func toNumber(path string, raw any) (any, error) {
	if f, ok := numeric(raw); ok {
		return f, nil
	}
	if s, ok := raw.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return f, nil
		}
	}
	return nil, &CastError{Type: schema.Number, Path: path, Value: raw}
}

func toBoolean(path string, raw any) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	if s, ok := raw.(string); ok {
		switch s {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, &CastError{Type: schema.Boolean, Path: path, Value: raw}
	}
	if f, ok := numeric(raw); ok {
		switch f {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	}
	return nil, &CastError{Type: schema.Boolean, Path: path, Value: raw}
}

// timeLayouts are tried in order for string timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func toTimestamp(path string, raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts, nil
			}
		}
	default:
		if f, ok := numeric(raw); ok {
			// Integer input is epoch milliseconds.
			return time.UnixMilli(int64(f)).UTC(), nil
		}
	}
	return nil, &CastError{Type: schema.Timestamp, Path: path, Value: raw}
}

func numeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
