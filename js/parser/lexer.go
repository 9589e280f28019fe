package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
)

var identifierStart = []*unicode.RangeTable{unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl, unicode.Other_ID_Start}
var identifierContinue = []*unicode.RangeTable{unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue}

// next consumes the lookahead token and scans the one after it.
func (p *Parser) next() {
	p.pushToken()
	p.scan()
}

// nextJSXTag consumes the lookahead and scans inside a JSX tag.
func (p *Parser) nextJSXTag() {
	p.pushToken()
	p.scanJSXTag()
}

// nextJSXChild consumes the lookahead and scans JSX children.
func (p *Parser) nextJSXChild() {
	p.pushToken()
	p.scanJSXChild()
}

func (p *Parser) pushToken() {
	if p.typ == TokenEOF {
		p.unexpected()
	}
	p.tokens = append(p.tokens, Token{
		Type:   p.typ,
		Start:  p.start,
		End:    p.end,
		Value:  p.input[p.start:p.end],
		IsType: p.isType,
	})
}

func (p *Parser) peekByte(n int) byte {
	if p.pos+n < len(p.input) {
		return p.input[p.pos+n]
	}
	return 0
}

func (p *Parser) finishToken(t TokenType) {
	p.typ = t
	p.end = p.pos
}

// finishOp emits an operator of the given byte width.
func (p *Parser) finishOp(t TokenType, width int) {
	p.pos += width
	p.finishToken(t)
}

func (p *Parser) scan() {
	if p.templateChunk {
		p.readTemplateChunk()
		return
	}
	p.skipSpace()
	p.start = p.pos
	if p.pos >= len(p.input) {
		p.finishToken(TokenEOF)
		return
	}
	p.readToken()
}

func (p *Parser) skipSpace() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case parse.IsWhitespace(c) || c == '\v':
			p.pos++
		case c == '/' && p.peekByte(1) == '/':
			p.skipLineComment()
		case c == '/' && p.peekByte(1) == '*':
			p.skipBlockComment()
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(p.input[p.pos:])
			if r != '\uFEFF' && r != '\u2028' && r != '\u2029' && !unicode.Is(unicode.Zs, r) {
				return
			}
			p.pos += size
		default:
			return
		}
	}
}

func (p *Parser) skipLineComment() {
	for p.pos < len(p.input) && !parse.IsNewline(p.input[p.pos]) {
		if p.input[p.pos] == 0xE2 && (p.peekByte(1) == 0x80 && (p.peekByte(2) == 0xA8 || p.peekByte(2) == 0xA9)) {
			return
		}
		p.pos++
	}
}

func (p *Parser) skipBlockComment() {
	start := p.pos
	for i := p.pos + 2; i+1 < len(p.input); i++ {
		if p.input[i] == '*' && p.input[i+1] == '/' {
			p.pos = i + 2
			return
		}
	}
	p.raise(start, "Unterminated comment")
}

// skipHashbang skips a leading `#!` line.
func (p *Parser) skipHashbang() {
	if len(p.input) >= 2 && p.input[0] == '#' && p.input[1] == '!' {
		p.pos = 2
		p.skipLineComment()
	}
}

func (p *Parser) readToken() {
	c := p.input[p.pos]
	if p.afterChunk && c == '$' && p.peekByte(1) == '{' {
		p.afterChunk = false
		p.templateLevels = append(p.templateLevels, p.braceLevel)
		p.braceLevel++
		p.finishOp(TokenDollarBraceL, 2)
		return
	}
	if isIdentifierStartByte(c) || c == '\\' {
		p.readWord(false)
		return
	}
	if c >= utf8.RuneSelf {
		r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
		if unicode.IsOneOf(identifierStart, r) {
			p.readWord(false)
			return
		}
		p.raise(p.pos, "Unexpected character")
	}

	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		p.readNumber()
	case '"', '\'':
		p.readString(c)
	case '`':
		p.pos++
		if p.afterChunk {
			p.afterChunk = false
		} else {
			p.templateChunk = true
		}
		p.finishToken(TokenBackQuote)
	case '(':
		p.finishOp(TokenParenL, 1)
	case ')':
		p.finishOp(TokenParenR, 1)
	case ';':
		p.finishOp(TokenSemi, 1)
	case ',':
		p.finishOp(TokenComma, 1)
	case '[':
		p.finishOp(TokenBracketL, 1)
	case ']':
		p.finishOp(TokenBracketR, 1)
	case '{':
		p.braceLevel++
		if p.features.Flow && p.peekByte(1) == '|' {
			p.finishOp(TokenBraceBarL, 2)
		} else {
			p.finishOp(TokenBraceL, 1)
		}
	case '}':
		p.closeBrace(TokenBraceR, 1)
	case ':':
		if p.peekByte(1) == ':' {
			p.finishOp(TokenDoubleColon, 2)
		} else {
			p.finishOp(TokenColon, 1)
		}
	case '@':
		p.finishOp(TokenAt, 1)
	case '#':
		p.finishOp(TokenHash, 1)
	case '.':
		p.readDot()
	case '?':
		p.readQuestion()
	case '=':
		switch {
		case p.peekByte(1) == '>':
			p.finishOp(TokenArrow, 2)
		case p.peekByte(1) == '=' && p.peekByte(2) == '=':
			p.finishOp(TokenEquality, 3)
		case p.peekByte(1) == '=':
			p.finishOp(TokenEquality, 2)
		default:
			p.finishOp(TokenEq, 1)
		}
	case '!':
		switch {
		case p.peekByte(1) == '=' && p.peekByte(2) == '=':
			p.finishOp(TokenEquality, 3)
		case p.peekByte(1) == '=':
			p.finishOp(TokenEquality, 2)
		default:
			p.finishOp(TokenBang, 1)
		}
	case '~':
		p.finishOp(TokenTilde, 1)
	case '<':
		p.readLessThan()
	case '>':
		p.readGreaterThan()
	case '+', '-':
		switch p.peekByte(1) {
		case c:
			p.finishOp(TokenIncDec, 2)
		case '=':
			p.finishOp(TokenAssign, 2)
		default:
			p.finishOp(TokenPlusMin, 1)
		}
	case '*':
		switch {
		case p.peekByte(1) == '*' && p.peekByte(2) == '=':
			p.finishOp(TokenAssign, 3)
		case p.peekByte(1) == '*':
			p.finishOp(TokenExponent, 2)
		case p.peekByte(1) == '=':
			p.finishOp(TokenAssign, 2)
		default:
			p.finishOp(TokenStar, 1)
		}
	case '/':
		// Always an operator here. The grammar rescans it with readRegexp
		// where an expression is expected.
		if p.peekByte(1) == '=' {
			p.finishOp(TokenAssign, 2)
		} else {
			p.finishOp(TokenSlash, 1)
		}
	case '%':
		if p.peekByte(1) == '=' {
			p.finishOp(TokenAssign, 2)
		} else {
			p.finishOp(TokenModulo, 1)
		}
	case '&':
		switch {
		case p.peekByte(1) == '&' && p.peekByte(2) == '=':
			p.finishOp(TokenAssign, 3)
		case p.peekByte(1) == '&':
			p.finishOp(TokenLogicalAND, 2)
		case p.peekByte(1) == '=':
			p.finishOp(TokenAssign, 2)
		default:
			p.finishOp(TokenBitwiseAND, 1)
		}
	case '|':
		switch {
		case p.peekByte(1) == '|' && p.peekByte(2) == '=':
			p.finishOp(TokenAssign, 3)
		case p.peekByte(1) == '|':
			p.finishOp(TokenLogicalOR, 2)
		case p.peekByte(1) == '=':
			p.finishOp(TokenAssign, 2)
		case p.peekByte(1) == '}' && p.features.Flow:
			p.closeBrace(TokenBraceBarR, 2)
		default:
			p.finishOp(TokenBitwiseOR, 1)
		}
	case '^':
		if p.peekByte(1) == '=' {
			p.finishOp(TokenAssign, 2)
		} else {
			p.finishOp(TokenBitwiseXOR, 1)
		}
	default:
		p.raise(p.pos, "Unexpected character")
	}
}

// closeBrace emits a closing brace and resumes template scanning when it
// ends a `${` substitution.
func (p *Parser) closeBrace(t TokenType, width int) {
	p.braceLevel--
	if n := len(p.templateLevels); n > 0 && p.templateLevels[n-1] == p.braceLevel {
		p.templateLevels = p.templateLevels[:n-1]
		p.templateChunk = true
	}
	p.finishOp(t, width)
}

func (p *Parser) readDot() {
	next := p.peekByte(1)
	if next >= '0' && next <= '9' {
		p.readNumber()
		return
	}
	if next == '.' && p.peekByte(2) == '.' {
		p.finishOp(TokenEllipsis, 3)
		return
	}
	p.finishOp(TokenDot, 1)
}

func (p *Parser) readQuestion() {
	next := p.peekByte(1)
	switch {
	case next == '?' && p.peekByte(2) == '=':
		p.finishOp(TokenAssign, 3)
	case next == '?':
		p.finishOp(TokenNullishCoalescing, 2)
	case next == '.' && !(p.peekByte(2) >= '0' && p.peekByte(2) <= '9'):
		p.finishOp(TokenQuestionDot, 2)
	default:
		p.finishOp(TokenQuestion, 1)
	}
}

// readLessThan scans `<`. Inside types every angle bracket is its own
// token so that nested type arguments close one at a time.
func (p *Parser) readLessThan() {
	if p.isType {
		p.finishOp(TokenLessThan, 1)
		return
	}
	switch {
	case p.peekByte(1) == '<' && p.peekByte(2) == '=':
		p.finishOp(TokenAssign, 3)
	case p.peekByte(1) == '<':
		p.finishOp(TokenBitShift, 2)
	case p.peekByte(1) == '=':
		p.finishOp(TokenRelational, 2)
	default:
		p.finishOp(TokenLessThan, 1)
	}
}

func (p *Parser) readGreaterThan() {
	if p.isType {
		p.finishOp(TokenGreaterThan, 1)
		return
	}
	n := 1
	for n < 3 && p.peekByte(n) == '>' {
		n++
	}
	switch {
	case n > 1 && p.peekByte(n) == '=':
		p.finishOp(TokenAssign, n+1)
	case n > 1:
		p.finishOp(TokenBitShift, n)
	case p.peekByte(1) == '=':
		p.finishOp(TokenRelational, 2)
	default:
		p.finishOp(TokenGreaterThan, 1)
	}
}

func isIdentifierStartByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
}

func isIdentifierByte(c byte) bool {
	return isIdentifierStartByte(c) || c >= '0' && c <= '9'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// skipIdentifierChars advances over identifier characters, including
// `\u` escapes. allowDash accepts the `-` of JSX names.
func (p *Parser) skipIdentifierChars(allowDash bool) {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case isIdentifierByte(c) || allowDash && c == '-':
			p.pos++
		case c == '\\':
			p.skipUnicodeEscape()
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(p.input[p.pos:])
			if !unicode.IsOneOf(identifierContinue, r) && r != '\u200C' && r != '\u200D' {
				return
			}
			p.pos += size
		default:
			return
		}
	}
}

func (p *Parser) skipUnicodeEscape() {
	start := p.pos
	if p.peekByte(1) != 'u' {
		p.raise(start, "Invalid escape in identifier")
	}
	p.pos += 2
	if p.peekByte(0) == '{' {
		p.pos++
		for p.pos < len(p.input) && isHexDigit(p.input[p.pos]) {
			p.pos++
		}
		if p.peekByte(0) != '}' {
			p.raise(start, "Invalid escape in identifier")
		}
		p.pos++
		return
	}
	for i := 0; i < 4; i++ {
		if !isHexDigit(p.peekByte(0)) {
			p.raise(start, "Invalid escape in identifier")
		}
		p.pos++
	}
}

func (p *Parser) readWord(allowDash bool) {
	p.skipIdentifierChars(allowDash)
	p.finishToken(LookupKeyword(p.input[p.start:p.pos]))
}

func (p *Parser) readNumber() {
	isBigInt := false
	if p.input[p.pos] == '0' && (p.peekByte(1)|0x20 == 'x' || p.peekByte(1)|0x20 == 'o' || p.peekByte(1)|0x20 == 'b') {
		p.pos += 2
		for p.pos < len(p.input) && (isHexDigit(p.input[p.pos]) || p.input[p.pos] == '_') {
			p.pos++
		}
	} else {
		p.skipDigits()
		if p.peekByte(0) == '.' {
			p.pos++
			p.skipDigits()
		}
		if c := p.peekByte(0); c == 'e' || c == 'E' {
			p.pos++
			if c := p.peekByte(0); c == '+' || c == '-' {
				p.pos++
			}
			p.skipDigits()
		}
	}
	if p.peekByte(0) == 'n' {
		p.pos++
		isBigInt = true
	}
	if p.pos < len(p.input) && (isIdentifierStartByte(p.input[p.pos]) || p.input[p.pos] == '\\') {
		p.raise(p.pos, "Identifier directly after number")
	}
	if isBigInt {
		p.finishToken(TokenBigInt)
	} else {
		p.finishToken(TokenNum)
	}
}

func (p *Parser) skipDigits() {
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '_') {
		p.pos++
	}
}

func (p *Parser) readString(quote byte) {
	p.pos++
	for {
		if p.pos >= len(p.input) {
			p.raise(p.start, "Unterminated string constant")
		}
		c := p.input[p.pos]
		switch {
		case c == quote:
			p.pos++
			p.finishToken(TokenString)
			return
		case c == '\\':
			p.pos++
			if p.peekByte(0) == '\r' && p.peekByte(1) == '\n' {
				p.pos++
			}
			p.pos++
		case parse.IsNewline(c):
			p.raise(p.start, "Unterminated string constant")
		default:
			p.pos++
		}
	}
}

// readTemplateChunk scans the raw text of a template up to the closing
// backquote or the next `${`. Chunks holding a malformed escape are
// emitted as TokenInvalidTemplate, which only tagged templates accept.
func (p *Parser) readTemplateChunk() {
	p.templateChunk = false
	p.start = p.pos
	valid := true
	for {
		if p.pos >= len(p.input) {
			p.raise(p.start, "Unterminated template")
		}
		c := p.input[p.pos]
		if c == '`' || c == '$' && p.peekByte(1) == '{' {
			break
		}
		if c == '\\' {
			p.pos++
			if !p.skipTemplateEscape() {
				valid = false
			}
			continue
		}
		p.pos++
	}
	p.afterChunk = true
	if valid {
		p.finishToken(TokenTemplate)
	} else {
		p.finishToken(TokenInvalidTemplate)
	}
}

// skipTemplateEscape advances past the escape after a backslash and
// reports whether it is well formed.
func (p *Parser) skipTemplateEscape() bool {
	if p.pos >= len(p.input) {
		return true
	}
	c := p.input[p.pos]
	p.pos++
	switch {
	case c == 'x':
		return p.skipHex(2)
	case c == 'u':
		if p.peekByte(0) == '{' {
			p.pos++
			value := 0
			n := 0
			for p.pos < len(p.input) && isHexDigit(p.input[p.pos]) {
				value = value*16 + hexValue(p.input[p.pos])
				if value > 0x10FFFF {
					value = 0x110000
				}
				p.pos++
				n++
			}
			if n == 0 || p.peekByte(0) != '}' || value > 0x10FFFF {
				return false
			}
			p.pos++
			return true
		}
		return p.skipHex(4)
	case c == '0':
		return !isDigit(p.peekByte(0))
	case c >= '1' && c <= '9':
		return false
	case c == '\r':
		if p.peekByte(0) == '\n' {
			p.pos++
		}
	}
	return true
}

// skipHex consumes n hex digits, stopping at the first non-hex byte so the
// template terminator is never swallowed.
func (p *Parser) skipHex(n int) bool {
	for i := 0; i < n; i++ {
		if !isHexDigit(p.peekByte(0)) {
			return false
		}
		p.pos++
	}
	return true
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

// readRegexp rescans the current `/` or `/=` token as a regular
// expression literal.
func (p *Parser) readRegexp() {
	p.pos = p.start + 1
	inClass := false
	for {
		if p.pos >= len(p.input) || parse.IsNewline(p.input[p.pos]) {
			p.raise(p.start, "Unterminated regular expression")
		}
		c := p.input[p.pos]
		p.pos++
		if c == '\\' {
			if p.pos < len(p.input) && !parse.IsNewline(p.input[p.pos]) {
				p.pos++
			}
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' && inClass {
			inClass = false
		} else if c == '/' && !inClass {
			break
		}
	}
	p.skipIdentifierChars(false)
	p.finishToken(TokenRegexp)
}

// scanJSXTag scans one token inside `<...>`: names (which may contain
// dashes), attribute strings and the tag punctuation.
func (p *Parser) scanJSXTag() {
	p.skipSpace()
	p.start = p.pos
	if p.pos >= len(p.input) {
		p.finishToken(TokenEOF)
		return
	}
	c := p.input[p.pos]
	switch c {
	case '{':
		p.braceLevel++
		p.finishOp(TokenBraceL, 1)
	case '=':
		p.finishOp(TokenEq, 1)
	case '/':
		p.finishOp(TokenSlash, 1)
	case '>':
		p.finishOp(TokenGreaterThan, 1)
	case '<':
		p.finishOp(TokenLessThan, 1)
	case '.':
		p.finishOp(TokenDot, 1)
	case ':':
		p.finishOp(TokenColon, 1)
	case '"', '\'':
		p.pos++
		for p.pos < len(p.input) && p.input[p.pos] != c {
			p.pos++
		}
		if p.pos >= len(p.input) {
			p.raise(p.start, "Unterminated string constant")
		}
		p.pos++
		p.finishToken(TokenString)
	default:
		if isIdentifierStartByte(c) || c >= utf8.RuneSelf {
			p.skipIdentifierChars(true)
			if p.pos > p.start {
				p.finishToken(TokenJSXName)
				return
			}
		}
		p.raise(p.pos, "Unexpected character in JSX tag")
	}
}

// scanJSXChild scans element content: text up to the next `{` or `<`, or
// one of those two tokens.
func (p *Parser) scanJSXChild() {
	p.start = p.pos
	if p.pos >= len(p.input) {
		p.raise(p.pos, "Unterminated JSX contents")
	}
	switch p.input[p.pos] {
	case '{':
		p.braceLevel++
		p.finishOp(TokenBraceL, 1)
	case '<':
		p.finishOp(TokenLessThan, 1)
	default:
		for p.pos < len(p.input) && p.input[p.pos] != '{' && p.input[p.pos] != '<' {
			p.pos++
		}
		p.finishToken(TokenJSXText)
	}
}
