package toon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantErrs  []string
	}{
		{
			name:      "valid document",
			input:     "users[2]{id,name,role}:\n1,Alice,admin\n2,Bob,user",
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:      "single data row",
			input:     "users[1]{id,name}:\n1,Alice",
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:      "blank lines ignored",
			input:     "users[2]{id,name}:\n1,Alice\n\n2,Bob",
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:      "special characters",
			input:     "data[2]{text,symbol}:\nHello World!,@#$\nTest \"quotes\",&*%",
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:      "declared count is not checked",
			input:     "users[9]{id}:\n1",
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:     "column count mismatch",
			input:    "users[2]{id,name,role}:\n1,Alice,admin\n2,Bob",
			wantErrs: []string{"row 2: expected 3 columns, found 2"},
		},
		{
			name:  "multiple mismatches accumulate",
			input: "users[3]{id,name,role}:\n1,Alice,admin,extra\n2,Bob\n3,Charlie,user",
			wantErrs: []string{
				"row 1: expected 3 columns, found 4",
				"row 2: expected 3 columns, found 2",
			},
		},
		{
			name:     "row numbers skip blank lines",
			input:    "t[2]{a,b}:\n\n1,2\n\n\n3",
			wantErrs: []string{"row 2: expected 2 columns, found 1"},
		},
		{
			name:     "empty string",
			input:    "",
			wantErrs: []string{MsgMissingDataRows},
		},
		{
			name:     "header only",
			input:    "users[0]{id,name,role}:",
			wantErrs: []string{MsgMissingDataRows},
		},
		{
			name:     "compact document is a single line",
			input:    "users[2]{id,name}:1,Alice2,Bob",
			wantErrs: []string{MsgMissingDataRows},
		},
		{
			name:     "missing header",
			input:    "1,Alice,admin\n2,Bob,user",
			wantErrs: []string{MsgInvalidHeader},
		},
		{
			name:     "missing brackets",
			input:    "users{id,name,role}:\n1,Alice,admin",
			wantErrs: []string{MsgInvalidHeader},
		},
		{
			name:     "trailing content after header",
			input:    "users[1]{id}: extra\n1",
			wantErrs: []string{MsgInvalidHeader},
		},
		{
			name:     "leading content before header",
			input:    "## users[1]{id}:\n1",
			wantErrs: []string{MsgInvalidHeader},
		},
		{
			name:     "carriage return breaks anchored header",
			input:    "users[1]{id}:\r\n1",
			wantErrs: []string{MsgInvalidHeader},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.input)
			if got.Valid != tt.wantValid {
				t.Errorf("Validate(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if diff := cmp.Diff(tt.wantErrs, got.Errors); diff != "" {
				t.Errorf("Validate(%q).Errors mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestValidateResultNeverNilErrors(t *testing.T) {
	got := Validate("a[1]{x}:\n1")
	if got.Errors == nil {
		t.Error("Errors is nil for a valid document, want empty slice")
	}
}
