package toon

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nvandessel/toonify/internal/ordered"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		compact bool
		want    string
	}{
		{
			name:  "basic",
			input: `{"users":[{"id":1,"name":"Alice","role":"admin"},{"id":2,"name":"Bob","role":"user"}]}`,
			want:  "users[2]{id,name,role}:\n1,Alice,admin\n2,Bob,user",
		},
		{
			name:    "compact",
			input:   `{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}]}`,
			compact: true,
			want:    "users[2]{id,name}:1,Alice2,Bob",
		},
		{
			name:  "commas are not escaped",
			input: `{"data":[{"text":"Hello, World!","symbol":"@#$"},{"text":"Test \"quotes\"","symbol":"&*%"}]}`,
			want:  "data[2]{text,symbol}:\nHello, World!,@#$\nTest \"quotes\",&*%",
		},
		{
			name:  "null becomes empty",
			input: `{"items":[{"id":1,"value":null},{"id":2,"value":null}]}`,
			want:  "items[2]{id,value}:\n1,\n2,",
		},
		{
			name:  "nested object stringified in key order",
			input: `{"records":[{"id":1,"meta":{"type":"A","count":5}}]}`,
			want:  "records[1]{id,meta}:\n1,{\"type\":\"A\",\"count\":5}",
		},
		{
			name:  "line separators stay raw in nested cells",
			input: `{"records":[{"id":1,"meta":{"s":"x\u2028y\u2029z"}}]}`,
			want:  "records[1]{id,meta}:\n1,{\"s\":\"x\u2028y\u2029z\"}",
		},
		{
			name:  "nested array stringified",
			input: `{"records":[{"id":1,"tags":["a","b"]}]}`,
			want:  "records[1]{id,tags}:\n1,[\"a\",\"b\"]",
		},
		{
			name:  "field order follows first record",
			input: `{"rows":[{"b":1,"a":2},{"a":3,"b":4}]}`,
			want:  "rows[2]{b,a}:\n1,2\n4,3",
		},
		{
			name:  "extra fields in later records are ignored",
			input: `{"rows":[{"a":1},{"a":2,"z":9}]}`,
			want:  "rows[2]{a}:\n1\n2",
		},
		{
			name:  "numbers and booleans",
			input: `{"rows":[{"f":1.50,"e":1e21,"t":true,"n":false}]}`,
			want:  "rows[1]{f,e,t,n}:\n1.5,1e+21,true,false",
		},
		{
			name:  "falsy values still count as present",
			input: `{"rows":[{"a":1,"b":2},{"a":0,"b":""}]}`,
			want:  "rows[2]{a,b}:\n1,2\n0,",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ordered.Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("ordered.Decode() error = %v", err)
			}
			got, err := EncodeWithOptions(v, &EncodeOptions{Compact: tt.compact})
			if err != nil {
				t.Fatalf("EncodeWithOptions() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EncodeWithOptions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeGoMaps(t *testing.T) {
	input := map[string]any{
		"items": []map[string]any{
			{"id": 1, "value": nil},
			{"id": 2, "value": "x"},
		},
	}

	got, err := Encode(input)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	// Go maps are unordered, so fields are sorted.
	want := "items[2]{id,value}:\n1,\n2,x"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantMsg string
		wantRow int
	}{
		{"string input", "not an object", "input must be an object with a single key containing an array", -1},
		{"array input", []any{json.Number("1"), json.Number("2")}, "input must be an object with a single key containing an array", -1},
		{"nil input", nil, "input must be an object with a single key containing an array", -1},
		{"typed nil object", (*ordered.Object)(nil), "input must be an object with a single key containing an array", -1},
		{"no keys", `{}`, "input must have exactly one root key", -1},
		{"multiple keys", `{"users":[{"id":1}],"posts":[{"id":2}]}`, "input must have exactly one root key", -1},
		{"value not array", `{"users":"not an array"}`, "value must be an array", -1},
		{"empty array", `{"users":[]}`, "array cannot be empty", -1},
		{"missing field", `{"users":[{"id":1,"name":"Alice"},{"id":2}]}`, `row 1 is missing field "name"`, 1},
		{"first offending row reported", `{"users":[{"a":1,"b":2},{"a":1,"b":2},{"b":3},{"a":4}]}`, `row 2 is missing field "a"`, 2},
		{"record not object", `{"users":[{"a":1},5]}`, "row 1: record must be an object", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			if s, ok := input.(string); ok && len(s) > 0 && s[0] == '{' {
				v, err := ordered.Decode([]byte(s))
				if err != nil {
					t.Fatalf("ordered.Decode() error = %v", err)
				}
				input = v
			}

			_, err := Encode(input)
			if err == nil {
				t.Fatal("Encode() expected error, got nil")
			}

			var shapeErr *InputShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("Encode() error = %T, want *InputShapeError", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Encode() error = %q, want %q", err.Error(), tt.wantMsg)
			}
			if shapeErr.Row != tt.wantRow {
				t.Errorf("InputShapeError.Row = %d, want %d", shapeErr.Row, tt.wantRow)
			}
		})
	}
}

func TestEncodeMissingFieldNamesField(t *testing.T) {
	v, err := ordered.Decode([]byte(`{"users":[{"id":1,"name":"Alice"},{"id":2,"name":null},{"name":"Carol"}]}`))
	if err != nil {
		t.Fatalf("ordered.Decode() error = %v", err)
	}

	_, err = Encode(v)
	var shapeErr *InputShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Encode() error = %v, want *InputShapeError", err)
	}
	if shapeErr.Row != 2 || shapeErr.Field != "id" {
		t.Errorf("InputShapeError = {Row: %d, Field: %q}, want {Row: 2, Field: \"id\"}", shapeErr.Row, shapeErr.Field)
	}
}

func TestSerializeValue(t *testing.T) {
	obj := ordered.NewObject()
	obj.Set("z", "<tag>")
	obj.Set("a", json.Number("2.0"))

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "plain", "plain"},
		{"bool", true, "true"},
		{"json number", json.Number("007"), "7"},
		{"float", 0.1, "0.1"},
		{"int", 12, "12"},
		{"ordered object", obj, `{"z":"<tag>","a":2}`},
		{"array", []any{nil, "x"}, `[null,"x"]`},
		{"fallback", struct{ A int }{1}, "{1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serializeValue(tt.input)
			if err != nil {
				t.Fatalf("serializeValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("serializeValue(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
