package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Marshal encodes v as compact JSON. Objects keep their key order, HTML
// characters are not escaped and numbers are printed the way JavaScript
// prints them.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents nested values.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	b, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Object:
		if val == nil {
			buf.WriteString("null")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, val.values[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case map[string]any:
		return encodeValue(buf, FromMap(val))
	case []any:
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		return encodeString(buf, val)
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case json.Number:
		buf.WriteString(jsonNumber(numberValue(val)))
	case float64:
		buf.WriteString(jsonNumber(val))
	case float32:
		buf.WriteString(jsonNumber(float64(val)))
	case int:
		buf.WriteString(strconv.Itoa(val))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("failed to encode %T: %w", v, err)
		}
		buf.Write(b)
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	quoted := tmp.Bytes()[:tmp.Len()-1]
	if !strings.ContainsRune(s, '\u2028') && !strings.ContainsRune(s, '\u2029') {
		buf.Write(quoted)
		return nil
	}
	unescapeLineSeparators(buf, quoted)
	return nil
}

// unescapeLineSeparators copies quoted to buf, writing the \u2028 and \u2029
// escapes that encoding/json always emits back as raw runes.
func unescapeLineSeparators(buf *bytes.Buffer, quoted []byte) {
	for i := 0; i < len(quoted); i++ {
		c := quoted[i]
		if c != '\\' || i+1 >= len(quoted) {
			buf.WriteByte(c)
			continue
		}
		if quoted[i+1] == 'u' && i+6 <= len(quoted) {
			switch string(quoted[i+2 : i+6]) {
			case "2028":
				buf.WriteRune('\u2028')
				i += 5
				continue
			case "2029":
				buf.WriteRune('\u2029')
				i += 5
				continue
			}
		}
		// Any other escape is copied whole so an escaped backslash is
		// never mistaken for the start of a sequence.
		buf.WriteByte(c)
		buf.WriteByte(quoted[i+1])
		i++
	}
}

// jsonNumber renders f for JSON output. Non-finite values have no JSON form
// and become null.
func jsonNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	return FormatFloat(f)
}

func numberValue(n json.Number) float64 {
	// ParseFloat reports out-of-range literals as ±Inf alongside the error,
	// which is the value JavaScript would hold as well.
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

// FormatNumber renders a decoded JSON number the way JavaScript's String()
// does, so 1.0 prints as "1" and 1e21 as "1e+21". Literals that do not parse
// are returned unchanged.
func FormatNumber(n json.Number) string {
	if _, err := strconv.ParseFloat(string(n), 64); err != nil && !isRangeError(err) {
		return string(n)
	}
	return FormatFloat(numberValue(n))
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

// FormatFloat renders f using JavaScript's Number-to-String rules.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
