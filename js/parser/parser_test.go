package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type tokenWant struct {
	index     int
	value     string
	role      IdentifierRole
	contextID int
}

func checkTokens(t *testing.T, tokens []Token, wants []tokenWant) {
	t.Helper()
	for _, w := range wants {
		if w.index >= len(tokens) {
			t.Fatalf("token %d out of range (have %d tokens)", w.index, len(tokens))
		}
		tok := tokens[w.index]
		if tok.Value != w.value {
			t.Fatalf("tokens[%d].Value = %q, want %q", w.index, tok.Value, w.value)
		}
		if tok.IdentifierRole != w.role {
			t.Errorf("tokens[%d] %q IdentifierRole = %v, want %v", w.index, w.value, tok.IdentifierRole, w.role)
		}
		if tok.ContextID != w.contextID {
			t.Errorf("tokens[%d] %q ContextID = %d, want %d", w.index, w.value, tok.ContextID, w.contextID)
		}
	}
}

func TestParseAnnotations(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		opts   []Option
		tokens []tokenWant
		scopes []Scope
	}{
		{
			name:  "single parameter arrow in call",
			input: "foo(x => x + 1);",
			tokens: []tokenWant{
				{0, "foo", RoleAccess, 0},
				{1, "(", RoleNone, 1},
				{2, "x", RoleFunctionScopedDeclaration, 0},
				{3, "=>", RoleNone, 0},
				{4, "x", RoleAccess, 0},
				{7, ")", RoleNone, 1},
			},
			scopes: []Scope{{2, 7, true}, {0, 9, true}},
		},
		{
			name:  "get as a plain key",
			input: "x = { get: 1 };",
			tokens: []tokenWant{
				{0, "x", RoleAccess, 0},
				{2, "{", RoleNone, 1},
				{3, "get", RoleObjectKey, 1},
				{6, "}", RoleNone, 1},
			},
			scopes: []Scope{{0, 8, true}},
		},
		{
			name:  "object literal members",
			input: "x = { get: 1, set, [k]: 2, m() {} };",
			tokens: []tokenWant{
				{2, "{", RoleNone, 1},
				{3, "get", RoleObjectKey, 1},
				{7, "set", RoleObjectShorthand, 1},
				{9, "[", RoleNone, 1},
				{10, "k", RoleAccess, 0},
				{11, "]", RoleNone, 1},
				{15, "m", RoleObjectKey, 1},
				{16, "(", RoleNone, 2},
				{17, ")", RoleNone, 2},
				{18, "{", RoleNone, 0},
				{20, "}", RoleNone, 1},
			},
			scopes: []Scope{{18, 20, true}, {16, 20, true}, {0, 22, true}},
		},
		{
			name:  "getter",
			input: "x = { get a() { return 1; } };",
			tokens: []tokenWant{
				{3, "get", RoleObjectKey, 1},
				{4, "a", RoleObjectKey, 1},
				{5, "(", RoleNone, 2},
				{6, ")", RoleNone, 2},
				{12, "}", RoleNone, 1},
			},
		},
		{
			name:  "parenthesized arrow is reparsed as parameters",
			input: "(a, b) => a;",
			tokens: []tokenWant{
				{0, "(", RoleNone, 0},
				{1, "a", RoleFunctionScopedDeclaration, 0},
				{3, "b", RoleFunctionScopedDeclaration, 0},
				{4, ")", RoleNone, 0},
				{6, "a", RoleAccess, 0},
			},
			scopes: []Scope{{0, 7, true}, {0, 8, true}},
		},
		{
			name:  "async arrow rolls back the call",
			input: "async (a) => a;",
			tokens: []tokenWant{
				{0, "async", RoleAccess, 0},
				{1, "(", RoleNone, 0},
				{2, "a", RoleFunctionScopedDeclaration, 0},
				{5, "a", RoleAccess, 0},
			},
			scopes: []Scope{{1, 6, true}, {0, 7, true}},
		},
		{
			name:  "async call",
			input: "async(a);",
			tokens: []tokenWant{
				{0, "async", RoleAccess, 0},
				{1, "(", RoleNone, 1},
				{2, "a", RoleAccess, 0},
				{3, ")", RoleNone, 1},
			},
		},
		{
			name:  "function declaration",
			input: "function f(a, {b}) { let c = a; }",
			tokens: []tokenWant{
				{1, "f", RoleFunctionScopedDeclaration, 0},
				{2, "(", RoleNone, 1},
				{3, "a", RoleFunctionScopedDeclaration, 0},
				{5, "{", RoleNone, 2},
				{6, "b", RoleFunctionScopedDeclaration, 2},
				{7, "}", RoleNone, 2},
				{8, ")", RoleNone, 1},
				{9, "{", RoleNone, 0},
				{11, "c", RoleBlockScopedDeclaration, 0},
				{13, "a", RoleAccess, 0},
			},
			scopes: []Scope{{9, 16, true}, {2, 16, true}, {0, 16, true}},
		},
		{
			name:  "class members",
			input: "class A { x = 1; m() {} }",
			tokens: []tokenWant{
				{1, "A", RoleBlockScopedDeclaration, 0},
				{2, "{", RoleNone, 1},
				{3, "x", RoleObjectKey, 1},
				{7, "m", RoleObjectKey, 1},
				{8, "(", RoleNone, 2},
				{9, ")", RoleNone, 2},
				{12, "}", RoleNone, 1},
			},
			scopes: []Scope{{10, 12, true}, {8, 12, true}, {0, 13, true}},
		},
		{
			name:   "for loop",
			input:  "for (let i = 0; i < n; i++) {}",
			tokens: []tokenWant{{3, "i", RoleBlockScopedDeclaration, 0}, {9, "n", RoleAccess, 0}},
			scopes: []Scope{{14, 16, false}, {0, 16, false}, {0, 16, true}},
		},
		{
			name:  "catch clause",
			input: "try {} catch (e) {}",
			tokens: []tokenWant{
				{5, "e", RoleBlockScopedDeclaration, 0},
			},
			scopes: []Scope{{1, 3, false}, {7, 9, false}, {3, 9, false}, {0, 9, true}},
		},
		{
			name:  "imports and exports",
			input: "import a, {b as c} from 'd'; export {a as e};",
			tokens: []tokenWant{
				{1, "a", RoleBlockScopedDeclaration, 0},
				{4, "b", RoleNone, 0},
				{6, "c", RoleBlockScopedDeclaration, 0},
				{13, "a", RoleAccess, 0},
			},
		},
		{
			name:  "export specifier without alias",
			input: "export {a};",
			tokens: []tokenWant{
				{2, "a", RoleAccess, 0},
			},
		},
		{
			name:  "keyword coerced to name after dot",
			input: "a.default;",
			tokens: []tokenWant{
				{2, "default", RoleNone, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := mustParse(t, tt.input, tt.opts...)
			checkTokens(t, file.Tokens, tt.tokens)
			if tt.scopes != nil && !reflect.DeepEqual(file.Scopes, tt.scopes) {
				t.Errorf("Scopes = %v, want %v", file.Scopes, tt.scopes)
			}
		})
	}
}

func TestParseKeywordCoercion(t *testing.T) {
	file := mustParse(t, "a.default; x = {class: 1};")
	if got := file.Tokens[2].Type; got != TokenName {
		t.Errorf("Type of %q = %v, want %v", file.Tokens[2].Value, got, TokenName)
	}
	if got := file.Tokens[7].Type; got != TokenName {
		t.Errorf("Type of %q = %v, want %v", file.Tokens[7].Value, got, TokenName)
	}
}

// contextIDsPaired checks that every context id starts on an opening token
// and ends on the matching closing token, with every other use in between.
func contextIDsPaired(t *testing.T, tokens []Token) {
	t.Helper()
	closers := map[TokenType]TokenType{
		TokenParenL:    TokenParenR,
		TokenBraceL:    TokenBraceR,
		TokenBraceBarL: TokenBraceBarR,
	}
	first := map[int]int{}
	last := map[int]int{}
	for i, tok := range tokens {
		if tok.ContextID == 0 {
			continue
		}
		if _, ok := first[tok.ContextID]; !ok {
			first[tok.ContextID] = i
		}
		last[tok.ContextID] = i
	}
	for id, start := range first {
		open := tokens[start].Type
		want, ok := closers[open]
		if !ok {
			t.Errorf("context %d starts on %q, want an opening token", id, tokens[start].Value)
			continue
		}
		if got := tokens[last[id]].Type; got != want {
			t.Errorf("context %d ends on %v, want %v", id, got, want)
		}
		opens := 0
		for i := start; i <= last[id]; i++ {
			if tokens[i].ContextID == id && tokens[i].Type == open {
				opens++
			}
		}
		if opens != 1 {
			t.Errorf("context %d has %d opening tokens, want 1", id, opens)
		}
	}
	for id := 1; id <= len(first); id++ {
		if _, ok := first[id]; !ok {
			t.Errorf("context ids are not contiguous: %d missing of %d", id, len(first))
		}
	}
}

func TestContextIDPairing(t *testing.T) {
	tests := []struct {
		input string
		opts  []Option
	}{
		{"f(a, {b: [c], [d]: e}, function (g) { return {h}; });", nil},
		{"class A extends B { static x = {y: 1}; get z() { return f(1); } }", nil},
		{"((x = {a: 1}) => x)(y);", nil},
		{"async ({a}) => a; async({a});", nil},
		{"const f = <T,>(a: T): {x: T} => ({x: a});", []Option{WithTypeScript()}},
		{"function g(a: {| b: number |}): void { h({a}); }", []Option{WithFlow()}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := mustParse(t, tt.input, tt.opts...)
			contextIDsPaired(t, file.Tokens)
		})
	}
}

func TestContextIDsAfterArrowReparse(t *testing.T) {
	file := mustParse(t, "((x = {a: 1}) => x)(y);")
	checkTokens(t, file.Tokens, []tokenWant{
		{2, "x", RoleFunctionScopedDeclaration, 0},
		{4, "{", RoleNone, 1},
		{5, "a", RoleObjectKey, 1},
		{8, "}", RoleNone, 1},
		{13, "(", RoleNone, 2},
		{14, "y", RoleAccess, 0},
		{15, ")", RoleNone, 2},
	})
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := []string{
		"(a, b) => a; (a, b); async (c) => c; async(c);",
		"f((x = {a: 1}) => x, (y) => ({y}));",
		"const g = (a: number, b?: string): void => {};",
		"a < b > c; f<T>(x); new C<T>();",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			a := mustParse(t, input, WithTypeScript())
			b := mustParse(t, input, WithTypeScript())
			if !reflect.DeepEqual(a, b) {
				t.Errorf("two parses of %q differ", input)
			}
			contextIDsPaired(t, a.Tokens)
		})
	}
}

func TestSnapshotRestore(t *testing.T) {
	p := &Parser{input: "a + b; c;", nextContextID: 1}
	p.potentialArrowAt = -1
	p.scan()
	p.next()

	s := p.snapshot()
	p.next()
	p.last().ContextID = p.newContextID()
	p.pushScope(0, false)
	p.isType = true
	p.restore(s)

	if len(p.tokens) != 1 {
		t.Errorf("len(tokens) = %d, want 1", len(p.tokens))
	}
	if len(p.scopes) != 0 {
		t.Errorf("len(scopes) = %d, want 0", len(p.scopes))
	}
	if p.nextContextID != 1 {
		t.Errorf("nextContextID = %d, want 1", p.nextContextID)
	}
	if p.isType {
		t.Error("isType survived restore")
	}
	if got := p.value(); got != "+" {
		t.Errorf("lookahead = %q, want %q", got, "+")
	}
}

func TestTryParse(t *testing.T) {
	p := &Parser{input: "a b", nextContextID: 1}
	p.potentialArrowAt = -1
	p.scan()

	ok := p.tryParse(func() {
		p.next()
		p.expect(TokenSemi)
	})
	if ok {
		t.Fatal("tryParse() = true, want false")
	}
	if len(p.tokens) != 0 || p.value() != "a" {
		t.Errorf("state not restored: %d tokens, lookahead %q", len(p.tokens), p.value())
	}
}

func typeTokens(file *File) string {
	var parts []string
	for _, tok := range file.Tokens {
		if tok.IsType {
			parts = append(parts, tok.Value)
		}
	}
	return strings.Join(parts, " ")
}

func TestParseTypeTokens(t *testing.T) {
	tests := []struct {
		input string
		opts  []Option
		types string
	}{
		{"let x: number = 1;", []Option{WithTypeScript()}, ": number"},
		{"function f<T>(a?: T): void {}", []Option{WithTypeScript()}, "< T > ? : T : void"},
		{"interface I { a: string }", []Option{WithTypeScript()}, "interface I { a : string }"},
		{"type A = B | C;", []Option{WithTypeScript()}, "type A = B | C ;"},
		{"import type { X } from 'y';", []Option{WithTypeScript()}, "import type { X } from 'y' ;"},
		{"import {a, type B} from 'y';", []Option{WithTypeScript()}, "type B"},
		{"export type { X };", []Option{WithTypeScript()}, "export type { X } ;"},
		{"const y = x as any;", []Option{WithTypeScript()}, "as any"},
		{"const z = x as const;", []Option{WithTypeScript()}, "as const"},
		{"x!.y;", []Option{WithTypeScript()}, "!"},
		{"f<string>(a);", []Option{WithTypeScript()}, "< string >"},
		{"a < b;", []Option{WithTypeScript()}, ""},
		{"class C { private a: number; b = 2; }", []Option{WithTypeScript()}, "private a : number ;"},
		{"class D { constructor(private x: number) {} }", []Option{WithTypeScript()}, "private : number"},
		{"class E implements F, G {}", []Option{WithTypeScript()}, "implements F , G"},
		{"class H { [key: string]: any; }", []Option{WithTypeScript()}, "[ key : string ] : any ;"},
		{"declare const z: number;", []Option{WithTypeScript()}, "declare const z : number ;"},
		{"declare enum E { A }", []Option{WithTypeScript()}, "declare enum E { A }"},
		{"export interface J {}", []Option{WithTypeScript()}, "export interface J { }"},
		{"export function g(): void;", []Option{WithTypeScript()}, "export function g ( ) : void ;"},
		{"abstract class K { abstract m(): void; }", []Option{WithTypeScript()}, "abstract abstract m ( ) : void ;"},
		{"export as namespace Lib;", []Option{WithTypeScript()}, "export as namespace Lib ;"},
		{"let v!: string;", []Option{WithTypeScript()}, "! : string"},
		{"const f = async (a: T): Promise<T> => a;", []Option{WithTypeScript()}, ": T : Promise < T >"},
		{"class A extends B<T> {}", []Option{WithTypeScript()}, "< T >"},
		{"const C = class extends B<T> {};", []Option{WithTypeScript()}, "< T >"},
		{"export default interface I {}", []Option{WithTypeScript()}, "export default interface I { }"},
		{"function f(this: Window, a: number) {}", []Option{WithTypeScript()}, "this : Window , : number"},
		{"function f(this: Window) {}", []Option{WithTypeScript()}, "this : Window"},
		{"const g = async <T,>(x: T): Promise<T> => x;", []Option{WithTypeScript()}, "< T , > : T : Promise < T >"},
		{"async<T>(x);", []Option{WithTypeScript()}, "< T >"},
		{"const x: a => b = 2;", []Option{WithFlow()}, ": a => b"},
		{"type A<T> = ?number;", []Option{WithFlow()}, "type A < T > = ? number ;"},
		{"const f = (): number => 3;", []Option{WithFlow()}, ": number"},
		{"class C { +foo: number; }", []Option{WithFlow()}, "+ foo : number ;"},
		{"function m<A: B>(): void {}", []Option{WithFlow()}, "< A : B > : void"},
		{"import typeof d from 'e';", []Option{WithFlow()}, "import typeof d from 'e' ;"},
		{"import {typeof a as b} from 'c';", []Option{WithFlow()}, "typeof a as b"},
		{"export type * from 'a';", []Option{WithFlow()}, "export type * from 'a' ;"},
		{"opaque type T = string;", []Option{WithFlow()}, "opaque type T = string ;"},
		{"const v = (x: any);", []Option{WithFlow()}, ": any"},
		{"class A extends B<T> {}", []Option{WithFlow()}, "< T >"},
		{"function f(this: Window) {}", []Option{WithFlow()}, "this : Window"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := mustParse(t, tt.input, tt.opts...)
			if got := typeTokens(file); got != tt.types {
				t.Errorf("type tokens = %q, want %q", got, tt.types)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		opts    []Option
		message string
	}{
		{"function f(...a,) {}", nil, "A trailing comma is not permitted after the rest element"},
		{"let {...a,} = c;", nil, "A trailing comma is not permitted after the rest element"},
		{"let {...a, b} = c;", nil, "Cannot have multiple rest elements when destructuring"},
		{"x = (a, ...b);", nil, "Unexpected token"},
		{"x = `\\01`;", nil, "Invalid escape sequence in template"},
		{"enum E { A }", []Option{WithTypeScript()}, "TypeScript enums are not supported"},
		{"const enum E { A }", []Option{WithTypeScript()}, "TypeScript enums are not supported"},
		{"namespace N {}", []Option{WithTypeScript()}, "TypeScript namespaces are not supported"},
		{"x = {a b};", nil, "Unexpected token \"b\""},
		{"if (x {}", nil, "Unexpected token \"{\""},
		{"function () {}", nil, "Unexpected token \"(\""},
		{"<div></div>;", nil, "Unexpected token \"<\""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file, err := Parse(tt.input, tt.opts...)
			if file != nil {
				t.Errorf("Parse() file = %v, want nil", file)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse(%q) error = %v, want *SyntaxError", tt.input, err)
			}
			if se.Message != tt.message {
				t.Errorf("Message = %q, want %q", se.Message, tt.message)
			}
		})
	}
}

func TestParseAccepts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
	}{
		{"labels", "outer: for (;;) { break outer; }", nil},
		{"for of await", "async function f() { for await (const x of y) {} }", nil},
		{"for in", "for (var k in o) {}", nil},
		{"generator", "function* g() { yield 1; yield* h(); }", nil},
		{"class features", "class A extends B { #p = 1; static s; static { init(); } get #q() { return this.#p; } async *gen() {} }", nil},
		{"new target and import meta", "function F() { new.target; import.meta.url; import('x'); }", nil},
		{"switch", "switch (x) { case 1: y(); break; default: z(); }", nil},
		{"regexp after paren keyword", "if (/a/.test(s)) {}", nil},
		{"spread and rest", "const [a, , ...b] = [...c]; f(...d);", nil},
		{"exponent", "x **= 2 ** -y;", nil},
		{"asi", "let a = 1\nlet b = 2\na\n++b", nil},
		{"directives", "'use strict'; x;", nil},
		{"export forms", "export default function () {} export * as ns from 'm'; export const c = 1;", nil},
		{"jsx in attribute", "<A b={<c/>} d=\"e\" {...f}>{/* comment */}</A>;", []Option{WithJSX()}},
		{"jsx member names", "<a.b.c x:y=\"1\"></a.b.c>;", []Option{WithJSX()}},
		{"ts generics", "function f<T extends keyof U = never>(x: T[]): x is T { return true; }", []Option{WithTypeScript()}},
		{"ts mapped type", "type M = { readonly [K in keyof T]?: T[K] };", []Option{WithTypeScript()}},
		{"ts conditional type", "type C<T> = T extends string ? 'a' : T extends infer U ? U : never;", []Option{WithTypeScript()}},
		{"ts tuple", "type T = [a: string, b?: number, ...rest: boolean[]];", []Option{WithTypeScript()}},
		{"ts template type", "type T = `a${B}c`;", []Option{WithTypeScript()}},
		{"ts declare module", "declare module 'x' { export function f(): void; }", []Option{WithTypeScript()}},
		{"ts declare global", "declare global { interface Window { x: number } }", []Option{WithTypeScript()}},
		{"ts overloads", "function f(a: string): void;\nfunction f(a: any) {}", []Option{WithTypeScript()}},
		{"ts type assertion", "const x = <number>y;", []Option{WithTypeScript()}},
		{"ts generic arrow", "const id = <T>(x: T) => x;", []Option{WithTypeScript()}},
		{"ts satisfies", "const c = {} satisfies Config;", []Option{WithTypeScript()}},
		{"ts function types", "let f: (a: number, ...b: string[]) => void = g;", []Option{WithTypeScript()}},
		{"ts constructor types", "let c: new () => Foo; let d: abstract new () => Bar;", []Option{WithTypeScript()}},
		{"ts optional param arrow", "const f = (a?: number, b = 1) => a;", []Option{WithTypeScript()}},
		{"ts decorators", "@dec() class A { @prop x: number = 1; m(@inject() a: T) {} }", []Option{WithTypeScript()}},
		{"tsx", "const e = <Foo a={1 as number} />;", []Option{WithTypeScript(), WithJSX()}},
		{"flow function type params", "function p<T>(list: T[], test: (T, number, T[]) => ?boolean): [T[], T[]] { return []; }", []Option{WithFlow()}},
		{"flow declare", "declare function f(x: number): string; declare class A { m(): void }", []Option{WithFlow()}},
		{"flow declare module exports", "declare module.exports: { x: number };", []Option{WithFlow()}},
		{"flow spread object type", "type A = {| ...B, c: D |};", []Option{WithFlow()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input, tt.opts...); err != nil {
				t.Errorf("Parse(%q) error = %v", tt.input, err)
			}
		})
	}
}
