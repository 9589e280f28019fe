package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/sucre/js/parser"
)

func mustParse(t *testing.T, source string, opts ...parser.Option) *parser.File {
	t.Helper()
	file, err := parser.Parse(source, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", source, err)
	}
	return file
}

func TestLineEncoder(t *testing.T) {
	file := mustParse(t, "x(y);")

	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(file); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := "0\t0:1\tname\t\"x\"\t-\taccess\n" +
		"1\t1:2\t(\t\"(\"\tctx=1\t-\n" +
		"2\t2:3\tname\t\"y\"\t-\taccess\n" +
		"3\t3:4\t)\t\")\"\tctx=1\t-\n" +
		"4\t4:5\t;\t\";\"\t-\t-\n" +
		"scope\t0:5\tfunction\n"
	if got := buf.String(); got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	file := mustParse(t, "let x: T = 1;", parser.WithTypeScript(), parser.WithFile("a.ts"))

	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(file); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var got jsonFile
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.Path != "a.ts" {
		t.Errorf("path = %q, want %q", got.Path, "a.ts")
	}
	if len(got.Tokens) != len(file.Tokens) {
		t.Fatalf("len(tokens) = %d, want %d", len(got.Tokens), len(file.Tokens))
	}

	tests := []struct {
		index  int
		value  string
		role   string
		isType bool
	}{
		{1, "x", "blockScopedDeclaration", false},
		{2, ":", "", true},
		{3, "T", "", true},
		{5, "1", "", false},
	}
	for _, tt := range tests {
		tok := got.Tokens[tt.index]
		if tok.Value != tt.value {
			t.Errorf("tokens[%d].value = %q, want %q", tt.index, tok.Value, tt.value)
		}
		if tok.Role != tt.role {
			t.Errorf("tokens[%d].role = %q, want %q", tt.index, tok.Role, tt.role)
		}
		if tok.IsType != tt.isType {
			t.Errorf("tokens[%d].isType = %v, want %v", tt.index, tok.IsType, tt.isType)
		}
	}

	if len(got.Scopes) != 1 || !got.Scopes[0].IsFunctionScope {
		t.Errorf("scopes = %+v, want one function scope", got.Scopes)
	}
}

func TestEncodersImplementEncoder(t *testing.T) {
	var _ Encoder = NewJSONEncoder(nil)
	var _ Encoder = NewLineEncoder(nil)
}
