package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/sucre/js/parser"
)

func parse(t *testing.T, source string, opts ...parser.Option) []parser.Token {
	t.Helper()
	file, err := parser.Parse(source, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", source, err)
	}
	return file.Tokens
}

func TestCopyReproducesSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   []parser.Option
	}{
		{"empty", "", nil},
		{"only comments", "// a\n/* b */\n", nil},
		{"hashbang", "#!/usr/bin/env node\nrun();\n", nil},
		{"whitespace and comments", "  let a = 1 /* one */;\n\n\tf(a) // call\n", nil},
		{"templates", "x = `a${b}c${`d`}`;", nil},
		{"jsx", "<A b={1}>text {c}</A>;\n", []parser.Option{parser.WithJSX()}},
		{"typescript", "let x: Map<string, number[]> = new Map();\n", []parser.Option{parser.WithTypeScript()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parse(t, tt.source, tt.opts...)
			got, err := Run(tt.source, tokens, CopyAll)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != tt.source {
				t.Errorf("Run() = %q, want %q", got, tt.source)
			}
		})
	}
}

func TestReplaceAccountsForEveryByte(t *testing.T) {
	source := "#!/bin/node\n/* a */ let x = `t${y}` + f(1, 2) // end\n"
	tokens := parse(t, source)

	got, err := Run(source, tokens, func(tp *TokenProcessor) {
		for !tp.IsAtEnd() {
			tp.ReplaceToken("[" + tp.CurrentTokenCode() + "]")
		}
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var want strings.Builder
	prev := 0
	for _, tok := range tokens {
		want.WriteString(source[prev:tok.Start])
		want.WriteString("[" + source[tok.Start:tok.End] + "]")
		prev = tok.End
	}
	want.WriteString(source[prev:])
	if got != want.String() {
		t.Errorf("Run() = %q, want %q", got, want.String())
	}
}

func TestEditing(t *testing.T) {
	tests := []struct {
		name   string
		source string
		edit   func(tp *TokenProcessor)
		want   string
	}{
		{
			name:   "replace",
			source: "a + b; // c",
			edit: func(tp *TokenProcessor) {
				tp.CopyToken()
				tp.ReplaceToken("-")
				CopyAll(tp)
			},
			want: "a - b; // c",
		},
		{
			name:   "replace keeps the whole gap",
			source: "a \t+ b;",
			edit: func(tp *TokenProcessor) {
				tp.CopyToken()
				tp.ReplaceToken("*")
				CopyAll(tp)
			},
			want: "a \t* b;",
		},
		{
			name:   "replace trimming left whitespace",
			source: "a \t+\n b;",
			edit: func(tp *TokenProcessor) {
				tp.CopyToken()
				tp.CopyToken()
				tp.ReplaceTokenTrimmingLeftWhitespace("c")
				CopyAll(tp)
			},
			want: "a \t+\nc;",
		},
		{
			name:   "remove drops horizontal whitespace",
			source: "f(a, b);",
			edit: func(tp *TokenProcessor) {
				for !tp.MatchesName("b") {
					tp.CopyToken()
				}
				tp.RemoveToken()
				CopyAll(tp)
			},
			want: "f(a,);",
		},
		{
			name:   "remove initial token keeps leading gap",
			source: "  x;",
			edit: func(tp *TokenProcessor) {
				tp.RemoveInitialToken()
				CopyAll(tp)
			},
			want: "  ;",
		},
		{
			name:   "append code",
			source: "a;",
			edit: func(tp *TokenProcessor) {
				tp.AppendCode("/*1*/")
				tp.CopyToken()
				tp.AppendCode(" b")
				tp.CopyToken()
			},
			want: "/*1*/a b;",
		},
		{
			name:   "copy expected token",
			source: "a;",
			edit: func(tp *TokenProcessor) {
				tp.CopyExpectedToken(parser.TokenName)
				tp.ExpectToken(parser.TokenSemi)
				tp.CopyExpectedToken(parser.TokenSemi)
			},
			want: "a;",
		},
		{
			name:   "next token skips output",
			source: "a; b;",
			edit: func(tp *TokenProcessor) {
				tp.NextToken()
				CopyAll(tp)
			},
			want: "; b;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.source, parse(t, tt.source), tt.edit)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshotRestore(t *testing.T) {
	source := "a + b;"
	tp := NewTokenProcessor(source, parse(t, source))
	tp.CopyToken()

	s := tp.Snapshot()
	tp.ReplaceToken("zzz")
	tp.AppendCode("junk")
	tp.RemoveToken()
	tp.Restore(s)

	if tp.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex() = %d, want 1", tp.CurrentIndex())
	}
	if tp.ResultCodeIndex() != 1 {
		t.Errorf("ResultCodeIndex() = %d, want 1", tp.ResultCodeIndex())
	}
	CopyAll(tp)
	if got := tp.Finish(); got != source {
		t.Errorf("Finish() = %q, want %q", got, source)
	}
}

func TestReset(t *testing.T) {
	source := "a;"
	tp := NewTokenProcessor(source, parse(t, source))
	tp.ReplaceToken("b")
	tp.Reset()
	if tp.CurrentIndex() != 0 || tp.ResultCodeIndex() != 0 {
		t.Errorf("after Reset index = %d, output length = %d, want 0, 0", tp.CurrentIndex(), tp.ResultCodeIndex())
	}
	CopyAll(tp)
	if got := tp.Finish(); got != source {
		t.Errorf("Finish() = %q, want %q", got, source)
	}
}

func TestCodeInsertedSinceIndex(t *testing.T) {
	source := "a;"
	tp := NewTokenProcessor(source, parse(t, source))
	tp.AppendCode("x")
	mark := tp.ResultCodeIndex()
	tp.CopyToken()
	tp.AppendCode("!")
	if got := tp.CodeInsertedSinceIndex(mark); got != "a!" {
		t.Errorf("CodeInsertedSinceIndex(%d) = %q, want %q", mark, got, "a!")
	}
}

func TestMatching(t *testing.T) {
	source := "a.b = c;"
	tp := NewTokenProcessor(source, parse(t, source))

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"Matches", tp.Matches(parser.TokenName, parser.TokenDot), true},
		{"Matches wrong type", tp.Matches(parser.TokenDot), false},
		{"MatchesAtIndex", tp.MatchesAtIndex(3, parser.TokenEq, parser.TokenName), true},
		{"MatchesAtIndex negative", tp.MatchesAtIndex(-1, parser.TokenName), false},
		{"MatchesAtIndex past end", tp.MatchesAtIndex(5, parser.TokenSemi, parser.TokenSemi), false},
		{"MatchesAtRelativeIndex", tp.MatchesAtRelativeIndex(3, parser.TokenEq), true},
		{"MatchesAtRelativeIndex behind start", tp.MatchesAtRelativeIndex(-1, parser.TokenName), false},
		{"MatchesName", tp.MatchesName("a"), true},
		{"MatchesName other", tp.MatchesName("b"), false},
		{"MatchesNameAtIndex", tp.MatchesNameAtIndex(4, "c"), true},
		{"MatchesNameAtRelativeIndex", tp.MatchesNameAtRelativeIndex(2, "b"), true},
		{"MatchesNameAtRelativeIndex on punctuation", tp.MatchesNameAtRelativeIndex(1, "."), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestMatchesKeyword(t *testing.T) {
	tests := []struct {
		source  string
		index   int
		keyword string
		want    bool
	}{
		{"a.class; class B {}", 2, "class", false},
		{"a.class; class B {}", 4, "class", true},
		{"x = {if: 1};", 3, "if", false},
		{"async function f() {}", 0, "async", true},
		{"async function f() {}", 1, "async", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tp := NewTokenProcessor(tt.source, parse(t, tt.source))
			for tp.CurrentIndex() < tt.index {
				tp.NextToken()
			}
			if got := tp.MatchesKeyword(tt.keyword); got != tt.want {
				t.Errorf("MatchesKeyword(%q) at %d = %v, want %v", tt.keyword, tt.index, got, tt.want)
			}
		})
	}
}

func TestMatchesContextIDAndLabel(t *testing.T) {
	source := "f(a);"
	tp := NewTokenProcessor(source, parse(t, source))
	tp.NextToken()
	if !tp.MatchesContextIDAndLabel(parser.TokenParenL, 1) {
		t.Error("MatchesContextIDAndLabel(ParenL, 1) = false, want true")
	}
	if tp.MatchesContextIDAndLabel(parser.TokenParenL, 2) {
		t.Error("MatchesContextIDAndLabel(ParenL, 2) = true, want false")
	}
}

func TestCursor(t *testing.T) {
	source := "a /* c */ + b;"
	tp := NewTokenProcessor(source, parse(t, source))
	tp.NextToken()

	if got := tp.PreviousWhitespace(); got != " /* c */ " {
		t.Errorf("PreviousWhitespace() = %q, want %q", got, " /* c */ ")
	}
	if got := tp.CurrentTokenCode(); got != "+" {
		t.Errorf("CurrentTokenCode() = %q, want %q", got, "+")
	}
	if got := tp.CurrentToken().Type; got != parser.TokenPlusMin {
		t.Errorf("CurrentToken().Type = %v, want %v", got, parser.TokenPlusMin)
	}
	if got := tp.TokenAtRelativeIndex(1).Value; got != "b" {
		t.Errorf("TokenAtRelativeIndex(1).Value = %q, want %q", got, "b")
	}
	tp.PreviousToken()
	if got := tp.CurrentIndex(); got != 0 {
		t.Errorf("CurrentIndex() after PreviousToken = %d, want 0", got)
	}
	if tp.IsAtEnd() {
		t.Error("IsAtEnd() = true at start")
	}
}

func TestInternalErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		fn      func(tp *TokenProcessor)
		op      string
		message string
	}{
		{
			name:    "finish before end",
			source:  "a;",
			fn:      func(tp *TokenProcessor) { tp.CopyToken() },
			op:      "Finish",
			message: "Tried to finish processing tokens before reaching the end.",
		},
		{
			name:    "expected token mismatch",
			source:  "a;",
			fn:      func(tp *TokenProcessor) { tp.CopyExpectedToken(parser.TokenSemi) },
			op:      "CopyExpectedToken",
			message: "Expected token ;",
		},
		{
			name:    "expect token mismatch",
			source:  "a;",
			fn:      func(tp *TokenProcessor) { tp.ExpectToken(parser.TokenString) },
			op:      "ExpectToken",
			message: "Expected token string",
		},
		{
			name:    "next token past end",
			source:  "a",
			fn:      func(tp *TokenProcessor) { tp.NextToken(); tp.NextToken() },
			op:      "NextToken",
			message: "Unexpectedly reached end of input.",
		},
		{
			name:    "copy past end",
			source:  "a",
			fn:      func(tp *TokenProcessor) { CopyAll(tp); tp.CopyToken() },
			op:      "CopyToken",
			message: "Unexpectedly reached end of input.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Run(tt.source, parse(t, tt.source), tt.fn)
			if out != "" {
				t.Errorf("Run() output = %q, want empty", out)
			}
			var ie *InternalError
			if !errors.As(err, &ie) {
				t.Fatalf("Run() error = %v, want *InternalError", err)
			}
			if ie.Op != tt.op {
				t.Errorf("Op = %q, want %q", ie.Op, tt.op)
			}
			if ie.Message != tt.message {
				t.Errorf("Message = %q, want %q", ie.Message, tt.message)
			}
		})
	}
}

func TestRunPropagatesOtherPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recover() = %v, want %q", r, "boom")
		}
	}()
	Run("", nil, func(*TokenProcessor) { panic("boom") })
	t.Error("Run() returned, want panic")
}
