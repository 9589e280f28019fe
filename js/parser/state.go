package parser

import (
	"slices"
	"strings"
)

// cursor is the scanner position plus the lookahead token it produced.
type cursor struct {
	pos   int
	typ   TokenType
	start int
	end   int

	braceLevel     int
	templateLevels []int
	templateChunk  bool
	afterChunk     bool
}

// flags is the contextual parsing state that speculation must roll back.
type flags struct {
	inGenerator        bool
	inPropertyName     bool
	inDeclare          bool
	potentialArrowAt   int
	isType             bool
	noAnonFunctionType bool
}

// snapshot captures everything needed to rewind the parser. Token and scope
// slices only grow between a snapshot and its restore, so their lengths are
// enough.
type snapshot struct {
	tokens        int
	scopes        int
	nextContextID int
	cursor        cursor
	flags         flags
}

func (p *Parser) snapshot() snapshot {
	c := p.cursor
	c.templateLevels = slices.Clone(c.templateLevels)
	return snapshot{
		tokens:        len(p.tokens),
		scopes:        len(p.scopes),
		nextContextID: p.nextContextID,
		cursor:        c,
		flags:         p.flags,
	}
}

// restore rewinds to s. Restoring nextContextID as well keeps the ids of a
// successful reparse identical to a parse without backtracking.
func (p *Parser) restore(s snapshot) {
	p.tokens = p.tokens[:s.tokens]
	p.scopes = p.scopes[:s.scopes]
	p.nextContextID = s.nextContextID
	p.cursor = s.cursor
	p.cursor.templateLevels = slices.Clone(s.cursor.templateLevels)
	p.flags = s.flags
}

// tryParse runs fn speculatively. When fn raises a syntax error the state
// is rewound and tryParse reports false.
func (p *Parser) tryParse(fn func()) (ok bool) {
	s := p.snapshot()
	defer func() {
		if r := recover(); r != nil {
			if _, isSyntax := r.(*SyntaxError); !isSyntax {
				panic(r)
			}
			p.restore(s)
			ok = false
		}
	}()
	fn()
	return true
}

func (p *Parser) newContextID() int {
	id := p.nextContextID
	p.nextContextID++
	return id
}

// last returns the most recently consumed token.
func (p *Parser) last() *Token {
	return &p.tokens[len(p.tokens)-1]
}

func (p *Parser) pushScope(startTokenIndex int, isFunctionScope bool) {
	p.scopes = append(p.scopes, Scope{
		StartTokenIndex: startTokenIndex,
		EndTokenIndex:   len(p.tokens),
		IsFunctionScope: isFunctionScope,
	})
}

// markTypeFrom flags every token consumed since index as type-only.
func (p *Parser) markTypeFrom(index int) {
	for i := index; i < len(p.tokens); i++ {
		p.tokens[i].IsType = true
	}
}

func (p *Parser) pushTypeContext() bool {
	old := p.isType
	p.isType = true
	return old
}

func (p *Parser) popTypeContext(old bool) {
	p.isType = old
}

func (p *Parser) hasTypes() bool {
	return p.features.TypeScript || p.features.Flow
}

// value is the source text of the lookahead token.
func (p *Parser) value() string {
	return p.input[p.start:p.end]
}

func (p *Parser) match(t TokenType) bool {
	return p.typ == t
}

func (p *Parser) eat(t TokenType) bool {
	if p.typ == t {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(t TokenType) {
	if !p.eat(t) {
		p.unexpected()
	}
}

func (p *Parser) isContextual(name string) bool {
	return p.typ == TokenName && p.value() == name
}

func (p *Parser) eatContextual(name string) bool {
	if p.isContextual(name) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expectContextual(name string) {
	if !p.eatContextual(name) {
		p.unexpected()
	}
}

// isIdentifierLike reports whether the lookahead can be read as a name,
// keywords included.
func (p *Parser) isIdentifierLike() bool {
	return p.typ == TokenName || p.typ.IsKeyword()
}

// lastTokenEnd is the end offset of the last consumed token.
func (p *Parser) lastTokenEnd() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].End
}

func (p *Parser) hasPrecedingLineBreak() bool {
	gap := p.input[p.lastTokenEnd():p.start]
	return strings.ContainsAny(gap, "\n\r\u2028\u2029")
}

func (p *Parser) canInsertSemicolon() bool {
	return p.match(TokenEOF) || p.match(TokenBraceR) || p.hasPrecedingLineBreak()
}

// isLineTerminator consumes an optional semicolon and reports whether the
// statement may end here.
func (p *Parser) isLineTerminator() bool {
	return p.eat(TokenSemi) || p.canInsertSemicolon()
}

func (p *Parser) semicolon() {
	if !p.isLineTerminator() {
		p.unexpected()
	}
}

// peek describes the token after the lookahead without consuming anything.
type peek struct {
	typ   TokenType
	value string
	// lineBreak is set when a newline separates the two tokens.
	lineBreak bool
}

func (p *Parser) lookahead() peek {
	if p.match(TokenEOF) {
		return peek{typ: TokenEOF}
	}
	s := p.snapshot()
	defer p.restore(s)
	p.next()
	return peek{typ: p.typ, value: p.value(), lineBreak: p.hasPrecedingLineBreak()}
}
