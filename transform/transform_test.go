package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/dhamidi/sucre/js/parser"
)

func TestTransformFlow(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "arrow function type annotation",
			source: "const x: a => b = 2;",
			want:   "const x = 2;",
		},
		{
			name:   "exact object return type",
			source: "function foo(): {| x: number |} { return 3; }",
			want:   "function foo() { return 3; }",
		},
		{
			name:   "bounded type parameter",
			source: "function makeWeakCache<A: B>(): void {\n}",
			want:   "function makeWeakCache() {\n}",
		},
		{
			name: "multiline params with function type",
			source: `function partition<T>(
  list: T[],
  test: (T, number, T[]) => ?boolean,
): [T[], T[]] {
  return [];
}`,
			want: `function partition(
  list,
  test,
) {
  return [];
}`,
		},
		{
			name:   "type alias and arrow return type",
			source: "type A<T> = ?number;\nconst f = (): number => 3;",
			want:   "\nconst f = () => 3;",
		},
		{
			name:   "variance sigils on class fields",
			source: "class C {\n  +foo: number;\n  -bar: number;\n}",
			want:   "class C {\n\n\n}",
		},
		{
			name:   "type export",
			source: "export type * from \"a\";\nx;",
			want:   "\nx;",
		},
		{
			name:   "typeof imports",
			source: "import {typeof a as b} from 'c';\nimport typeof d from 'e';",
			want:   "import {} from 'c';\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Transform(tt.source, Options{Transforms: []string{Flow}})
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if res.Code != tt.want {
				t.Errorf("Transform() = %q, want %q", res.Code, tt.want)
			}
		})
	}
}

func TestTransformTypeScript(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		transforms []string
		want       string
	}{
		{
			name:       "variable annotation",
			source:     "let x: number = 1;",
			transforms: []string{TypeScript},
			want:       "let x = 1;",
		},
		{
			name:       "interface and as expression",
			source:     "interface I { a: string }\nconst y = x as any;",
			transforms: []string{TypeScript},
			want:       "\nconst y = x;",
		},
		{
			name:       "overload signature",
			source:     "export function f(a: string): void;\nexport function f(a: any) {}",
			transforms: []string{TypeScript},
			want:       "\nexport function f(a) {}",
		},
		{
			name:       "type arguments and non-null assertion",
			source:     "f<string>(a!);",
			transforms: []string{TypeScript},
			want:       "f(a);",
		},
		{
			name:       "type-only import",
			source:     "import type { X } from 'y';\nimport { z } from 'w';",
			transforms: []string{TypeScript},
			want:       "\nimport { z } from 'w';",
		},
		{
			name:       "superclass type arguments",
			source:     "class A<T> extends B<T> implements C { m(u: T) { return u; } }",
			transforms: []string{TypeScript},
			want:       "class A extends B { m(u) { return u; } }",
		},
		{
			name:       "default exported interface",
			source:     "export default interface I {}\nconst a = 1;",
			transforms: []string{TypeScript},
			want:       "\nconst a = 1;",
		},
		{
			name:       "this parameter",
			source:     "function f(this: Window, a: number) {}\nfunction g(this: Window) {}",
			transforms: []string{TypeScript},
			want:       "function f( a) {}\nfunction g() {}",
		},
		{
			name:       "async generic arrow",
			source:     "const g = async <T,>(x: T): Promise<T> => x;",
			transforms: []string{TypeScript},
			want:       "const g = async(x) => x;",
		},
		{
			name:       "tsx attribute",
			source:     "const e = <A b={1 as number} />;",
			transforms: []string{TypeScript, JSX},
			want:       "const e = <A b={1} />;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Transform(tt.source, Options{Transforms: tt.transforms})
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if res.Code != tt.want {
				t.Errorf("Transform() = %q, want %q", res.Code, tt.want)
			}
		})
	}
}

func TestTransformPassThrough(t *testing.T) {
	tests := []struct {
		source     string
		transforms []string
	}{
		{"x = 1", nil},
		{"<div>{x}</div>;\n", []string{JSX}},
		{"// only a comment\n", []string{TypeScript}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			res, err := Transform(tt.source, Options{Transforms: tt.transforms})
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if res.Code != tt.source {
				t.Errorf("Transform() = %q, want %q", res.Code, tt.source)
			}
			if res.File == nil {
				t.Error("Transform() File = nil")
			}
		})
	}
}

func TestFeatures(t *testing.T) {
	tests := []struct {
		transforms []string
		want       parser.Features
		err        string
	}{
		{nil, parser.Features{}, ""},
		{[]string{TypeScript, JSX}, parser.Features{TypeScript: true, JSX: true}, ""},
		{[]string{Flow}, parser.Features{Flow: true}, ""},
		{[]string{"coffee"}, parser.Features{}, "unknown transform"},
		{[]string{TypeScript, Flow}, parser.Features{}, "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.transforms, "+"), func(t *testing.T) {
			got, err := Features(tt.transforms)
			if tt.err != "" {
				if err == nil || !strings.Contains(err.Error(), tt.err) {
					t.Errorf("Features() error = %v, want containing %q", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Features() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Features() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTransformSyntaxError(t *testing.T) {
	_, err := Transform("enum E {}", Options{Transforms: []string{TypeScript}, FilePath: "e.ts"})
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Transform() error = %v, want *parser.SyntaxError", err)
	}
	if se.File != "e.ts" {
		t.Errorf("SyntaxError.File = %q, want %q", se.File, "e.ts")
	}
}
