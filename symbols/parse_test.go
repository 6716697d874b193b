package symbols

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/core/base/ordmap"
	"github.com/google/go-cmp/cmp"
)

type kv = ordmap.KeyValue[string, int]

func TestParseString(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   []kv
		masked []Masked
	}{
		{
			name:   "masked",
			text:   "enum { A, A = 5 };",
			want:   []kv{{Key: "A", Value: 5}},
			masked: []Masked{{Name: "A", Value: 0}},
		},
		{
			name: "comments",
			text: "enum {\n  A, // first, X\n  /* skip, Y */ B = 10,\n  C\n};",
			want: []kv{{Key: "A", Value: 0}, {Key: "B", Value: 10}, {Key: "C", Value: 11}},
		},
		{
			name: "block comments are not greedy",
			text: "enum { A /* x */, B /* y */ = 4 };",
			want: []kv{{Key: "A", Value: 0}, {Key: "B", Value: 4}},
		},
		{
			name: "multi line block comment",
			text: "enum {\n A, /* one\n two, Z */ B\n};",
			want: []kv{{Key: "A", Value: 0}, {Key: "B", Value: 1}},
		},
		{
			name: "counter restarts per enum",
			text: "enum { A, B }; enum { C = 3, D };\nenum{E};",
			want: []kv{{Key: "A", Value: 0}, {Key: "B", Value: 1}, {Key: "C", Value: 3}, {Key: "D", Value: 4}, {Key: "E", Value: 0}},
		},
		{
			name: "private names count",
			text: "enum { _FIRST = 100, SECOND, _LAST };",
			want: []kv{{Key: "SECOND", Value: 101}},
		},
		{
			name: "empty entries",
			text: "enum { A, , B, };",
			want: []kv{{Key: "A", Value: 0}, {Key: "B", Value: 1}},
		},
		{
			name: "text outside enum",
			text: "#ifndef X\n#define X 1\nenumeration { Q };\nenum _ID { A = -2, B }\n#endif",
			want: []kv{{Key: "A", Value: -2}, {Key: "B", Value: -1}},
		},
		{
			name: "same value is not masking",
			text: "enum { A = 1 }; enum { A = 1 };",
			want: []kv{{Key: "A", Value: 1}},
		},
		{
			name: "no enums",
			text: "// nothing here\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseString(tt.text)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, table.Symbols.Order); diff != "" {
				t.Errorf("symbols mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.masked, table.Masked); diff != "" {
				t.Errorf("masked mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"no brace", "enum A;", "missing opening brace"},
		{"bad value", "enum { A = x };", "bad value for A"},
		{"hex value", "enum { A = 0x10 };", "bad value for A"},
		{"second enum", "enum { A }; enum { B = 1 = 2 };", "enum #2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.text)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "c4d_symbols.h")
	if err := os.WriteFile(name, []byte("enum {\r\n  IDS_A = 10000,\r\n  IDS_B\r\n};\r\n"), 0644); err != nil {
		t.Fatal(err)
	}
	table, err := ParseFile(name)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	want := []kv{{Key: "IDS_A", Value: 10000}, {Key: "IDS_B", Value: 10001}}
	if diff := cmp.Diff(want, table.Symbols.Order); diff != "" {
		t.Errorf("symbols mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.h")); err == nil {
		t.Error("expected error for missing file")
	}
}
