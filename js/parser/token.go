package parser

import "fmt"

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNum
	TokenBigInt
	TokenRegexp
	TokenString
	TokenName
	TokenTemplate
	TokenInvalidTemplate
	TokenJSXName
	TokenJSXText

	// Punctuation
	TokenBracketL
	TokenBracketR
	TokenBraceL
	TokenBraceR
	TokenBraceBarL
	TokenBraceBarR
	TokenParenL
	TokenParenR
	TokenComma
	TokenSemi
	TokenColon
	TokenDoubleColon
	TokenDot
	TokenQuestion
	TokenQuestionDot
	TokenArrow
	TokenEllipsis
	TokenBackQuote
	TokenDollarBraceL
	TokenAt
	TokenHash

	// Operators
	TokenEq
	TokenAssign
	TokenIncDec
	TokenBang
	TokenTilde
	TokenNullishCoalescing
	TokenLogicalOR
	TokenLogicalAND
	TokenBitwiseOR
	TokenBitwiseXOR
	TokenBitwiseAND
	TokenEquality
	TokenLessThan
	TokenGreaterThan
	TokenRelational
	TokenBitShift
	TokenPlusMin
	TokenModulo
	TokenStar
	TokenSlash
	TokenExponent

	// Keywords
	TokenBreak
	TokenCase
	TokenCatch
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDo
	TokenElse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenReturn
	TokenSwitch
	TokenThrow
	TokenTry
	TokenVar
	TokenConst
	TokenWhile
	TokenWith
	TokenNew
	TokenThis
	TokenSuper
	TokenClass
	TokenExtends
	TokenExport
	TokenImport
	TokenYield
	TokenNull
	TokenTrue
	TokenFalse
	TokenIn
	TokenInstanceof
	TokenTypeof
	TokenVoid
	TokenDelete

	tokenTypeCount
)

// tokenInfo carries the grammar properties of a token type. binop is the
// binary operator precedence, zero for non-operators.
type tokenInfo struct {
	label            string
	keyword          bool
	startsExpr       bool
	isAssign         bool
	prefix           bool
	postfix          bool
	rightAssociative bool
	binop            int
}

var tokenInfos = [tokenTypeCount]tokenInfo{
	TokenEOF:             {label: "eof"},
	TokenNum:             {label: "num", startsExpr: true},
	TokenBigInt:          {label: "bigint", startsExpr: true},
	TokenRegexp:          {label: "regexp", startsExpr: true},
	TokenString:          {label: "string", startsExpr: true},
	TokenName:            {label: "name", startsExpr: true},
	TokenTemplate:        {label: "template"},
	TokenInvalidTemplate: {label: "invalidTemplate"},
	TokenJSXName:         {label: "jsxName"},
	TokenJSXText:         {label: "jsxText"},

	TokenBracketL:     {label: "[", startsExpr: true},
	TokenBracketR:     {label: "]"},
	TokenBraceL:       {label: "{", startsExpr: true},
	TokenBraceR:       {label: "}"},
	TokenBraceBarL:    {label: "{|", startsExpr: true},
	TokenBraceBarR:    {label: "|}"},
	TokenParenL:       {label: "(", startsExpr: true},
	TokenParenR:       {label: ")"},
	TokenComma:        {label: ","},
	TokenSemi:         {label: ";"},
	TokenColon:        {label: ":"},
	TokenDoubleColon:  {label: "::"},
	TokenDot:          {label: "."},
	TokenQuestion:     {label: "?"},
	TokenQuestionDot:  {label: "?."},
	TokenArrow:        {label: "=>"},
	TokenEllipsis:     {label: "..."},
	TokenBackQuote:    {label: "`", startsExpr: true},
	TokenDollarBraceL: {label: "${", startsExpr: true},
	TokenAt:           {label: "@"},
	TokenHash:         {label: "#", startsExpr: true},

	TokenEq:                {label: "=", isAssign: true},
	TokenAssign:            {label: "_=", isAssign: true},
	TokenIncDec:            {label: "++/--", prefix: true, postfix: true, startsExpr: true},
	TokenBang:              {label: "!", prefix: true, startsExpr: true},
	TokenTilde:             {label: "~", prefix: true, startsExpr: true},
	TokenNullishCoalescing: {label: "??", binop: 1},
	TokenLogicalOR:         {label: "||", binop: 1},
	TokenLogicalAND:        {label: "&&", binop: 2},
	TokenBitwiseOR:         {label: "|", binop: 3},
	TokenBitwiseXOR:        {label: "^", binop: 4},
	TokenBitwiseAND:        {label: "&", binop: 5},
	TokenEquality:          {label: "==/!=/===/!==", binop: 6},
	TokenLessThan:          {label: "<", binop: 7},
	TokenGreaterThan:       {label: ">", binop: 7},
	TokenRelational:        {label: "<=/>=", binop: 7},
	TokenBitShift:          {label: "<</>>/>>>", binop: 8},
	TokenPlusMin:           {label: "+/-", binop: 9, prefix: true, startsExpr: true},
	TokenModulo:            {label: "%", binop: 10},
	TokenStar:              {label: "*", binop: 10},
	TokenSlash:             {label: "/", binop: 10},
	TokenExponent:          {label: "**", binop: 11, rightAssociative: true},

	TokenBreak:      {label: "break", keyword: true},
	TokenCase:       {label: "case", keyword: true},
	TokenCatch:      {label: "catch", keyword: true},
	TokenContinue:   {label: "continue", keyword: true},
	TokenDebugger:   {label: "debugger", keyword: true},
	TokenDefault:    {label: "default", keyword: true},
	TokenDo:         {label: "do", keyword: true},
	TokenElse:       {label: "else", keyword: true},
	TokenFinally:    {label: "finally", keyword: true},
	TokenFor:        {label: "for", keyword: true},
	TokenFunction:   {label: "function", keyword: true, startsExpr: true},
	TokenIf:         {label: "if", keyword: true},
	TokenReturn:     {label: "return", keyword: true},
	TokenSwitch:     {label: "switch", keyword: true},
	TokenThrow:      {label: "throw", keyword: true},
	TokenTry:        {label: "try", keyword: true},
	TokenVar:        {label: "var", keyword: true},
	TokenConst:      {label: "const", keyword: true},
	TokenWhile:      {label: "while", keyword: true},
	TokenWith:       {label: "with", keyword: true},
	TokenNew:        {label: "new", keyword: true, startsExpr: true},
	TokenThis:       {label: "this", keyword: true, startsExpr: true},
	TokenSuper:      {label: "super", keyword: true, startsExpr: true},
	TokenClass:      {label: "class", keyword: true, startsExpr: true},
	TokenExtends:    {label: "extends", keyword: true},
	TokenExport:     {label: "export", keyword: true},
	TokenImport:     {label: "import", keyword: true, startsExpr: true},
	TokenYield:      {label: "yield", keyword: true, startsExpr: true},
	TokenNull:       {label: "null", keyword: true, startsExpr: true},
	TokenTrue:       {label: "true", keyword: true, startsExpr: true},
	TokenFalse:      {label: "false", keyword: true, startsExpr: true},
	TokenIn:         {label: "in", keyword: true, binop: 7},
	TokenInstanceof: {label: "instanceof", keyword: true, binop: 7},
	TokenTypeof:     {label: "typeof", keyword: true, prefix: true, startsExpr: true},
	TokenVoid:       {label: "void", keyword: true, prefix: true, startsExpr: true},
	TokenDelete:     {label: "delete", keyword: true, prefix: true, startsExpr: true},
}

// Label is the name transform passes use to match tokens. Keywords are
// labelled with their own text.
func (t TokenType) Label() string {
	if t < 0 || t >= tokenTypeCount {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenInfos[t].label
}

func (t TokenType) String() string {
	return t.Label()
}

func (t TokenType) IsKeyword() bool  { return t.valid() && tokenInfos[t].keyword }
func (t TokenType) StartsExpr() bool { return t.valid() && tokenInfos[t].startsExpr }
func (t TokenType) IsAssign() bool   { return t.valid() && tokenInfos[t].isAssign }
func (t TokenType) IsPrefix() bool   { return t.valid() && tokenInfos[t].prefix }
func (t TokenType) IsPostfix() bool  { return t.valid() && tokenInfos[t].postfix }

// Binop returns the binary precedence of the operator, or 0.
func (t TokenType) Binop() int {
	if !t.valid() {
		return 0
	}
	return tokenInfos[t].binop
}

func (t TokenType) IsRightAssociative() bool {
	return t.valid() && tokenInfos[t].rightAssociative
}

func (t TokenType) valid() bool {
	return t >= 0 && t < tokenTypeCount
}

var keywords = func() map[string]TokenType {
	m := make(map[string]TokenType)
	for t := TokenType(0); t < tokenTypeCount; t++ {
		if tokenInfos[t].keyword {
			m[tokenInfos[t].label] = t
		}
	}
	return m
}()

// LookupKeyword returns the keyword token type for word, or TokenName.
func LookupKeyword(word string) TokenType {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return TokenName
}

// IdentifierRole classifies how a name token is used. The zero value means
// the parser assigned no role.
type IdentifierRole int

const (
	RoleNone IdentifierRole = iota
	RoleAccess
	RoleObjectKey
	RoleObjectShorthand
	RoleFunctionScopedDeclaration
	RoleBlockScopedDeclaration
)

var identifierRoleNames = map[IdentifierRole]string{
	RoleNone:                      "",
	RoleAccess:                    "access",
	RoleObjectKey:                 "objectKey",
	RoleObjectShorthand:           "objectShorthand",
	RoleFunctionScopedDeclaration: "functionScopedDeclaration",
	RoleBlockScopedDeclaration:    "blockScopedDeclaration",
}

func (r IdentifierRole) String() string {
	if name, ok := identifierRoleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsDeclaration reports whether the role introduces a binding.
func (r IdentifierRole) IsDeclaration() bool {
	return r == RoleFunctionScopedDeclaration || r == RoleBlockScopedDeclaration
}

// Token is one lexical unit of the source. Start and End are byte offsets;
// Value is the raw source text of the token.
//
// After tokenization only Type (keyword to name coercion), ContextID and
// IdentifierRole change. IsType is fixed when the token is consumed, except
// for declarations that turn out to be bodiless signatures.
type Token struct {
	Type           TokenType
	Start          int
	End            int
	Value          string
	ContextID      int
	IdentifierRole IdentifierRole
	IsType         bool
}

// Scope is the half-open token range [StartTokenIndex, EndTokenIndex) of a
// function, block or loop head.
type Scope struct {
	StartTokenIndex int
	EndTokenIndex   int
	IsFunctionScope bool
}
