package toon

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nvandessel/toonify/internal/ordered"
)

func encode(v any, compact bool) (string, error) {
	root, err := asObject(v)
	if err != nil || root == nil {
		return "", shapeError("input must be an object with a single key containing an array")
	}

	keys := root.Keys()
	if len(keys) != 1 {
		return "", shapeError("input must have exactly one root key")
	}

	rootKey := keys[0]
	value, _ := root.Get(rootKey)
	records, ok := asArray(value)
	if !ok {
		return "", shapeError("value must be an array")
	}
	if len(records) == 0 {
		return "", shapeError("array cannot be empty")
	}

	rows := make([]*ordered.Object, len(records))
	for i, r := range records {
		obj, err := asObject(r)
		if err != nil || obj == nil {
			return "", &InputShapeError{Reason: "record must be an object", Row: i}
		}
		rows[i] = obj
	}

	// The first record alone decides the field set and its order.
	fields := rows[0].Keys()
	for i, row := range rows {
		for _, field := range fields {
			if !row.Has(field) {
				return "", &InputShapeError{Reason: "missing field", Row: i, Field: field}
			}
		}
	}

	var b strings.Builder
	b.WriteString(rootKey)
	b.WriteByte('[')
	b.WriteString(strconv.Itoa(len(rows)))
	b.WriteString("]{")
	b.WriteString(strings.Join(fields, fieldDelimiter))
	b.WriteString("}:")

	sep := "\n"
	if compact {
		sep = ""
	}

	for i, row := range rows {
		b.WriteString(sep)
		for j, field := range fields {
			if j > 0 {
				b.WriteString(fieldDelimiter)
			}
			value, _ := row.Get(field)
			s, err := serializeValue(value)
			if err != nil {
				return "", fmt.Errorf("failed to serialize row %d field %q: %w", i, field, err)
			}
			b.WriteString(s)
		}
	}

	return b.String(), nil
}

// serializeValue renders a single cell. Null becomes empty, objects and
// arrays become compact JSON and scalars use their plain string form.
func serializeValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case json.Number:
		return ordered.FormatNumber(val), nil
	case float64:
		return ordered.FormatFloat(val), nil
	case float32:
		return ordered.FormatFloat(float64(val)), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case *ordered.Object, map[string]any, []any, []map[string]any:
		b, err := ordered.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(val), nil
	}
}

func asObject(v any) (*ordered.Object, error) {
	switch val := v.(type) {
	case *ordered.Object:
		return val, nil
	case map[string]any:
		return ordered.FromMap(val), nil
	default:
		return nil, fmt.Errorf("%T is not an object", v)
	}
}

func asArray(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []map[string]any:
		out := make([]any, len(val))
		for i, m := range val {
			out[i] = m
		}
		return out, true
	case []*ordered.Object:
		out := make([]any, len(val))
		for i, o := range val {
			out[i] = o
		}
		return out, true
	default:
		return nil, false
	}
}
