// Package parser tokenizes and parses JavaScript, with optional TypeScript,
// Flow and JSX syntax, into a flat annotated token stream.
//
// No syntax tree is built. Instead the parser records what later passes
// need on the tokens themselves:
//
//   - IsType marks tokens that exist only for the type system.
//   - ContextID pairs the open and close tokens of call argument lists,
//     object literals, class bodies and function parameter lists, and
//     tags the keys inside them.
//   - IdentifierRole says whether a name is accessed, declared or used as
//     an object key.
//
// Scopes are reported as token index ranges. Ambiguous constructs such as
// arrow function parameters are parsed optimistically and reparsed from a
// snapshot when a later token disambiguates them.
package parser
