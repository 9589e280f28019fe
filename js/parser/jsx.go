package parser

// parseJSXElement parses an element or fragment starting at the lookahead
// `<` and leaves the token after it scanned in normal mode.
func (p *Parser) parseJSXElement() {
	p.nextJSXTag()
	p.parseJSXElementAfterOpen(false)
}

// parseJSXElementAfterOpen parses the rest of an element whose `<` has been
// consumed. Nested elements finish by scanning children of their parent;
// the outermost one returns to ordinary tokens.
func (p *Parser) parseJSXElementAfterOpen(nested bool) {
	if p.match(TokenGreaterThan) {
		// Fragment.
		p.nextJSXChild()
	} else {
		p.parseJSXElementName()
		p.parseJSXAttributes()
		if p.match(TokenSlash) {
			p.nextJSXTag()
			p.finishJSXTag(nested)
			return
		}
		p.expectJSX(TokenGreaterThan, p.nextJSXChild)
	}

	for {
		switch p.typ {
		case TokenJSXText:
			p.nextJSXChild()
		case TokenBraceL:
			p.next()
			if p.match(TokenEllipsis) {
				p.parseSpread()
			} else if !p.match(TokenBraceR) {
				p.parseExpression(false)
			}
			p.expectJSX(TokenBraceR, p.nextJSXChild)
		case TokenLessThan:
			p.nextJSXTag()
			if p.match(TokenSlash) {
				p.nextJSXTag()
				if !p.match(TokenGreaterThan) {
					p.parseJSXElementName()
				}
				p.finishJSXTag(nested)
				return
			}
			p.parseJSXElementAfterOpen(true)
		default:
			p.unexpected()
		}
	}
}

// finishJSXTag consumes the closing `>` of a tag that ends an element.
func (p *Parser) finishJSXTag(nested bool) {
	if nested {
		p.expectJSX(TokenGreaterThan, p.nextJSXChild)
	} else {
		p.expect(TokenGreaterThan)
	}
}

func (p *Parser) expectJSX(t TokenType, advance func()) {
	if !p.match(t) {
		p.unexpected()
	}
	advance()
}

// parseJSXElementName parses `a`, `a.b.c` or `ns:a`.
func (p *Parser) parseJSXElementName() {
	p.expectJSX(TokenJSXName, p.nextJSXTag)
	if p.match(TokenColon) {
		p.nextJSXTag()
		p.expectJSX(TokenJSXName, p.nextJSXTag)
		return
	}
	for p.match(TokenDot) {
		p.nextJSXTag()
		p.expectJSX(TokenJSXName, p.nextJSXTag)
	}
}

func (p *Parser) parseJSXAttributes() {
	for !p.match(TokenSlash) && !p.match(TokenGreaterThan) {
		switch p.typ {
		case TokenBraceL:
			p.next()
			p.expect(TokenEllipsis)
			p.parseMaybeAssign(false, nil)
			p.expectJSX(TokenBraceR, p.nextJSXTag)
		case TokenJSXName:
			p.nextJSXTag()
			if p.match(TokenColon) {
				p.nextJSXTag()
				p.expectJSX(TokenJSXName, p.nextJSXTag)
			}
			if p.match(TokenEq) {
				p.nextJSXTag()
				p.parseJSXAttributeValue()
			}
		default:
			p.unexpected()
		}
	}
}

func (p *Parser) parseJSXAttributeValue() {
	switch p.typ {
	case TokenString:
		p.nextJSXTag()
	case TokenBraceL:
		p.next()
		p.parseMaybeAssign(false, nil)
		p.expectJSX(TokenBraceR, p.nextJSXTag)
	case TokenLessThan:
		p.nextJSXTag()
		p.parseJSXElementAfterOpen(false)
		// The element ended in normal mode; rescan what follows as part of
		// the tag.
		if p.match(TokenBraceL) {
			p.braceLevel--
		}
		p.pos = p.start
		p.scanJSXTag()
	default:
		p.unexpected()
	}
}
