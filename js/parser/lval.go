package parser

// accessibilityModifiers may prefix TypeScript constructor parameters and
// class members.
var accessibilityModifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"readonly":  true,
	"override":  true,
}

func (p *Parser) parseSpread() {
	p.next()
	p.parseMaybeAssign(false, nil)
}

func (p *Parser) parseRest(isBlockScope bool) {
	p.next()
	p.parseBindingAtom(isBlockScope)
}

func (p *Parser) parseBindingIdentifier(isBlockScope bool) {
	p.parseIdentifier()
	if isBlockScope {
		p.last().IdentifierRole = RoleBlockScopedDeclaration
	} else {
		p.last().IdentifierRole = RoleFunctionScopedDeclaration
	}
}

func (p *Parser) parseBindingAtom(isBlockScope bool) {
	switch p.typ {
	case TokenThis:
		p.next()
	case TokenBracketL:
		p.next()
		p.parseBindingList(TokenBracketR, isBlockScope, true, false)
	case TokenBraceL:
		p.parseObj(true, isBlockScope)
	default:
		p.parseBindingIdentifier(isBlockScope)
	}
}

// parseBindingList parses pattern elements up to and including close.
// allowModifiers admits TypeScript parameter properties.
func (p *Parser) parseBindingList(close TokenType, isBlockScope, allowEmpty, allowModifiers bool) {
	first := true
	for !p.eat(close) {
		if first {
			first = false
		} else {
			p.expect(TokenComma)
			if p.eat(close) {
				break
			}
		}
		if allowEmpty && p.match(TokenComma) {
			continue
		}
		if close == TokenParenR && p.hasTypes() && p.match(TokenThis) {
			first = p.parseThisParam(allowModifiers, isBlockScope)
			continue
		}
		if p.match(TokenEllipsis) {
			p.parseRest(isBlockScope)
			p.parseAssignableListItemTypes()
			if p.match(TokenComma) && p.lookahead().typ == close {
				p.raise(p.start, "A trailing comma is not permitted after the rest element")
			}
			p.expect(close)
			break
		}
		p.parseAssignableListItem(allowModifiers, isBlockScope)
	}
}

// parseThisParam parses a `this: T` parameter. It only types the function,
// so the whole parameter and its trailing comma are type tokens. It reports
// whether the comma was consumed.
func (p *Parser) parseThisParam(allowModifiers, isBlockScope bool) bool {
	start := len(p.tokens)
	p.parseAssignableListItem(allowModifiers, isBlockScope)
	hasComma := p.eat(TokenComma)
	p.markTypeFrom(start)
	return hasComma
}

func (p *Parser) parseAssignableListItem(allowModifiers, isBlockScope bool) {
	if p.match(TokenAt) {
		p.parseDecorators()
	}
	if p.features.TypeScript && allowModifiers {
		p.parseParameterModifiers()
	}
	p.parseBindingAtom(isBlockScope)
	p.parseAssignableListItemTypes()
	p.parseMaybeDefault(isBlockScope, true)
}

// parseParameterModifiers consumes `private readonly` and friends as type
// tokens. A modifier name directly followed by punctuation is the parameter
// itself.
func (p *Parser) parseParameterModifiers() {
	for p.typ == TokenName && accessibilityModifiers[p.value()] {
		la := p.lookahead()
		if la.typ != TokenName && la.typ != TokenBraceL && la.typ != TokenBracketL && la.typ != TokenThis {
			return
		}
		old := p.pushTypeContext()
		p.next()
		p.popTypeContext(old)
	}
}

func (p *Parser) parseAssignableListItemTypes() {
	if !p.hasTypes() {
		return
	}
	if p.match(TokenQuestion) {
		old := p.pushTypeContext()
		p.next()
		p.popTypeContext(old)
	}
	if p.match(TokenColon) {
		p.parseTypeAnnotation()
	}
}

// parseMaybeDefault parses an optional `= default` after a binding. When
// leftAlreadyParsed is false the binding itself is parsed first.
func (p *Parser) parseMaybeDefault(isBlockScope, leftAlreadyParsed bool) {
	if !leftAlreadyParsed {
		p.parseBindingAtom(isBlockScope)
	}
	if !p.eat(TokenEq) {
		return
	}
	p.parseMaybeAssign(false, nil)
}
