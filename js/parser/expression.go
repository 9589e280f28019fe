package parser

// precRelational is the precedence of `<`, `in` and the TypeScript `as`
// and `satisfies` operators.
const precRelational = 7

func (p *Parser) parseExpression(noIn bool) {
	p.parseMaybeAssign(noIn, nil)
	for p.eat(TokenComma) {
		p.parseMaybeAssign(noIn, nil)
	}
}

// parseMaybeAssign parses an assignment expression and reports whether it
// was an arrow function. afterLeftParse runs on the left-hand side before
// any assignment operator; parenthesized lists use it for type annotations.
func (p *Parser) parseMaybeAssign(noIn bool, afterLeftParse func()) bool {
	if p.match(TokenYield) && p.inGenerator {
		p.parseYield(noIn)
		if afterLeftParse != nil {
			afterLeftParse()
		}
		return false
	}
	if p.match(TokenParenL) || p.match(TokenName) || p.match(TokenYield) {
		p.potentialArrowAt = p.start
	}

	wasArrow := p.parseMaybeConditional(noIn)
	if afterLeftParse != nil {
		afterLeftParse()
	}
	if p.typ.IsAssign() {
		p.next()
		p.parseMaybeAssign(noIn, nil)
		return false
	}
	return wasArrow
}

func (p *Parser) parseMaybeConditional(noIn bool) bool {
	if p.parseExprOps(noIn) {
		return true
	}
	p.parseConditional(noIn)
	return false
}

func (p *Parser) parseConditional(noIn bool) {
	if !p.match(TokenQuestion) {
		return
	}
	if p.hasTypes() {
		// `(x?: T) =>` and `(x?) =>` reach here while the parameter list is
		// still being parsed as a parenthesized expression.
		switch p.lookahead().typ {
		case TokenColon, TokenComma, TokenParenR, TokenEq:
			old := p.pushTypeContext()
			p.next()
			p.popTypeContext(old)
			return
		}
	}
	p.next()
	p.parseMaybeAssign(false, nil)
	p.expect(TokenColon)
	p.parseMaybeAssign(noIn, nil)
}

func (p *Parser) parseExprOps(noIn bool) bool {
	if p.parseMaybeUnary() {
		return true
	}
	p.parseExprOp(-1, noIn)
	return false
}

// parseExprOp is the precedence climbing loop. The left operand has already
// been parsed.
func (p *Parser) parseExprOp(minPrec int, noIn bool) {
	if p.features.TypeScript && precRelational > minPrec && !p.hasPrecedingLineBreak() &&
		(p.isContextual("as") || p.isContextual("satisfies")) {
		old := p.pushTypeContext()
		p.next()
		if p.match(TokenConst) {
			p.next()
		} else {
			p.parseType()
		}
		p.popTypeContext(old)
		p.parseExprOp(minPrec, noIn)
		return
	}

	prec := p.typ.Binop()
	if prec > 0 && (!noIn || !p.match(TokenIn)) && prec > minPrec {
		op := p.typ
		p.next()
		p.parseMaybeUnary()
		if op.IsRightAssociative() {
			p.parseExprOp(prec-1, noIn)
		} else {
			p.parseExprOp(prec, noIn)
		}
		p.parseExprOp(minPrec, noIn)
	}
}

func (p *Parser) parseMaybeUnary() bool {
	if p.features.TypeScript && !p.features.JSX && p.match(TokenLessThan) {
		p.parseTypeAssertionOrGenericArrow()
		return false
	}
	if p.typ.IsPrefix() {
		p.next()
		p.parseMaybeUnary()
		return false
	}
	if p.parseExprSubscripts() {
		return true
	}
	for p.typ.IsPostfix() && !p.canInsertSemicolon() {
		p.next()
	}
	return false
}

func (p *Parser) parseExprSubscripts() bool {
	if p.parseExprAtom() {
		return true
	}
	p.parseSubscripts(false)
	return false
}

func (p *Parser) parseSubscripts(noCalls bool) {
	for !p.parseSubscript(noCalls) {
	}
}

// parseSubscript parses one member access, call or tagged template and
// reports whether the chain has ended.
func (p *Parser) parseSubscript(noCalls bool) bool {
	if p.features.TypeScript && p.match(TokenBang) && !p.hasPrecedingLineBreak() {
		old := p.pushTypeContext()
		p.next()
		p.popTypeContext(old)
		return false
	}
	if p.features.TypeScript && p.match(TokenLessThan) {
		if p.tryParse(func() {
			p.parseTypeArguments()
			if !(p.match(TokenParenL) && !noCalls) && !p.match(TokenBackQuote) {
				p.unexpected()
			}
		}) {
			return false
		}
	}

	switch {
	case !noCalls && p.match(TokenDoubleColon):
		p.next()
		p.parseNoCallExpr()
		return false
	case p.match(TokenQuestionDot):
		p.next()
		switch {
		case p.eat(TokenParenL):
			p.parseCallArguments()
		case p.eat(TokenBracketL):
			p.parseExpression(false)
			p.expect(TokenBracketR)
		default:
			p.parseMaybePrivateName()
		}
		return false
	case p.eat(TokenDot):
		p.parseMaybePrivateName()
		return false
	case p.eat(TokenBracketL):
		p.parseExpression(false)
		p.expect(TokenBracketR)
		return false
	case !noCalls && p.match(TokenParenL):
		possibleAsync := p.atPossibleAsync()
		var s snapshot
		if possibleAsync {
			s = p.snapshot()
		}
		p.next()
		p.parseCallArguments()
		if possibleAsync && p.shouldParseAsyncArrow() {
			// The call was really an async arrow's parameter list.
			p.restore(s)
			p.parseAsyncArrowFromCall(len(p.tokens))
			return true
		}
		return false
	case p.match(TokenBackQuote):
		p.parseTemplate(true)
		return false
	}
	return true
}

// parseCallArguments parses an argument list whose `(` was just consumed
// and stamps the pair with a fresh context id.
func (p *Parser) parseCallArguments() {
	id := p.newContextID()
	p.last().ContextID = id
	first := true
	for !p.eat(TokenParenR) {
		if first {
			first = false
		} else {
			p.expect(TokenComma)
			if p.eat(TokenParenR) {
				break
			}
		}
		p.parseExprListItem(false)
	}
	p.last().ContextID = id
}

func (p *Parser) atPossibleAsync() bool {
	last := p.last()
	return last.Type == TokenName && last.Value == "async" && !p.canInsertSemicolon()
}

func (p *Parser) shouldParseAsyncArrow() bool {
	if p.match(TokenArrow) {
		return !p.hasPrecedingLineBreak()
	}
	return p.hasTypes() && p.match(TokenColon) && p.typedArrowAhead()
}

// typedArrowAhead reports whether a return type annotation followed by
// `=>` starts at the lookahead `:`.
func (p *Parser) typedArrowAhead() bool {
	s := p.snapshot()
	defer p.restore(s)
	return p.tryParse(func() {
		p.parseArrowReturnType()
		if !p.match(TokenArrow) {
			p.unexpected()
		}
	})
}

func (p *Parser) parseAsyncArrowFromCall(startTokenIndex int) {
	p.parseFunctionParams(false, 0)
	if p.hasTypes() && p.match(TokenColon) {
		p.parseArrowReturnType()
	}
	p.expect(TokenArrow)
	p.parseArrowExpression(startTokenIndex)
}

func (p *Parser) parseNoCallExpr() {
	p.parseExprAtom()
	p.parseSubscripts(true)
}

// parseExprAtom parses a primary expression and reports whether it was an
// arrow function.
func (p *Parser) parseExprAtom() bool {
	canBeArrow := p.potentialArrowAt == p.start

	switch p.typ {
	case TokenSlash, TokenAssign:
		if p.typ == TokenAssign && p.input[p.start] != '/' {
			p.unexpected()
		}
		p.readRegexp()
		p.next()
		return false

	case TokenSuper, TokenThis, TokenRegexp, TokenNum, TokenBigInt, TokenString,
		TokenNull, TokenTrue, TokenFalse:
		p.next()
		return false

	case TokenImport:
		p.next()
		if p.eat(TokenDot) {
			p.parseIdentifier()
		}
		return false

	case TokenYield, TokenName:
		if p.match(TokenYield) && p.inGenerator {
			p.unexpected()
		}
		return p.parseNameAtom(canBeArrow)

	case TokenDo:
		p.next()
		p.parseBlock(false)
		return false

	case TokenParenL:
		return p.parseParenAndDistinguishExpression(canBeArrow)

	case TokenBracketL:
		p.next()
		p.parseExprList(TokenBracketR, true)
		return false

	case TokenBraceL:
		p.parseObj(false, false)
		return false

	case TokenFunction:
		p.parseFunctionExpression()
		return false

	case TokenAt:
		p.parseDecorators()
		p.parseClass(false, true)
		return false

	case TokenClass:
		p.parseClass(false, true)
		return false

	case TokenNew:
		p.parseNew()
		return false

	case TokenBackQuote:
		p.parseTemplate(false)
		return false

	case TokenLessThan:
		if p.features.JSX {
			p.parseJSXElement()
			return false
		}

	case TokenHash:
		// `#x in obj`
		p.next()
		p.parseIdentifier()
		return false
	}

	p.unexpected()
	return false
}

func (p *Parser) parseNameAtom(canBeArrow bool) bool {
	startTokenIndex := len(p.tokens)
	name := p.value()
	p.parseIdentifier()

	switch {
	case name == "await" && p.typ.StartsExpr():
		p.parseMaybeUnary()
		return false
	case name == "async" && p.match(TokenFunction) && !p.canInsertSemicolon():
		p.next()
		p.parseFunction(startTokenIndex, false, true)
		return false
	case canBeArrow && name == "async" && p.hasTypes() && p.match(TokenLessThan) && !p.canInsertSemicolon():
		if p.tryParse(p.parseGenericArrow) {
			return true
		}
	case canBeArrow && name == "async" && p.match(TokenName) && !p.canInsertSemicolon():
		p.parseBindingIdentifier(false)
		p.expect(TokenArrow)
		p.parseArrowExpression(startTokenIndex)
		return true
	case canBeArrow && !p.canInsertSemicolon() && p.match(TokenArrow):
		p.last().IdentifierRole = RoleFunctionScopedDeclaration
		p.next()
		p.parseArrowExpression(startTokenIndex)
		return true
	}
	p.last().IdentifierRole = RoleAccess
	return false
}

// parseParenAndDistinguishExpression parses `( ... )` as an expression
// first. If an arrow follows, that attempt is discarded and the same
// tokens are reparsed as a parameter list.
func (p *Parser) parseParenAndDistinguishExpression(canBeArrow bool) bool {
	s := p.snapshot()
	startTokenIndex := len(p.tokens)
	p.expect(TokenParenL)

	first := true
	spreadStart, trailingCommaStart := -1, -1
	for !p.match(TokenParenR) {
		if first {
			first = false
		} else {
			p.expect(TokenComma)
			if p.match(TokenParenR) {
				trailingCommaStart = p.start
				break
			}
		}
		if p.match(TokenEllipsis) {
			spreadStart = p.start
			p.parseRest(false)
			p.parseParenItem()
			if p.match(TokenComma) && p.lookahead().typ == TokenParenR {
				p.raise(p.start, "A trailing comma is not permitted after the rest element")
			}
			break
		}
		p.parseMaybeAssign(false, p.parseParenItem)
	}
	p.expect(TokenParenR)

	if canBeArrow && !p.canInsertSemicolon() && p.arrowFollows() {
		p.restore(s)
		p.parseFunctionParams(false, 0)
		if p.hasTypes() && p.match(TokenColon) {
			p.parseArrowReturnType()
		}
		p.expect(TokenArrow)
		p.parseArrowExpression(startTokenIndex)
		return true
	}

	if trailingCommaStart >= 0 {
		p.unexpectedAt(trailingCommaStart)
	}
	if spreadStart >= 0 {
		p.unexpectedAt(spreadStart)
	}
	return false
}

func (p *Parser) arrowFollows() bool {
	if p.match(TokenArrow) {
		return true
	}
	return p.hasTypes() && p.match(TokenColon) && p.typedArrowAhead()
}

// parseParenItem handles the type annotation of a parenthesized item,
// either a Flow type cast or an arrow parameter seen before the arrow.
func (p *Parser) parseParenItem() {
	if p.hasTypes() && p.match(TokenColon) {
		p.parseTypeAnnotation()
	}
}

func (p *Parser) parseNew() {
	p.expect(TokenNew)
	if p.eat(TokenDot) {
		p.parseIdentifier()
		return
	}
	p.parseNoCallExpr()
	if p.features.TypeScript && p.match(TokenLessThan) {
		p.tryParse(p.parseTypeArguments)
	}
	if p.eat(TokenParenL) {
		p.parseCallArguments()
	}
}

func (p *Parser) parseTemplate(isTagged bool) {
	p.expect(TokenBackQuote)
	p.parseTemplateElement(isTagged)
	for !p.match(TokenBackQuote) {
		p.expect(TokenDollarBraceL)
		p.parseExpression(false)
		p.expect(TokenBraceR)
		p.parseTemplateElement(isTagged)
	}
	p.next()
}

func (p *Parser) parseTemplateElement(isTagged bool) {
	if p.match(TokenInvalidTemplate) && !isTagged {
		p.raise(p.start, "Invalid escape sequence in template")
	}
	if !p.match(TokenTemplate) && !p.match(TokenInvalidTemplate) {
		p.unexpected()
	}
	p.next()
}

// parseObj parses an object literal or object pattern. The braces and
// every key get a shared context id.
func (p *Parser) parseObj(isPattern, isBlockScope bool) {
	id := p.newContextID()
	p.expect(TokenBraceL)
	p.last().ContextID = id

	first := true
	for !p.eat(TokenBraceR) {
		if first {
			first = false
		} else {
			p.expect(TokenComma)
			if p.eat(TokenBraceR) {
				break
			}
		}

		if p.match(TokenEllipsis) {
			if isPattern {
				p.parseRest(isBlockScope)
				if p.match(TokenComma) {
					if p.lookahead().typ == TokenBraceR {
						p.raise(p.start, "A trailing comma is not permitted after the rest element")
					}
					p.raise(p.start, "Cannot have multiple rest elements when destructuring")
				}
			} else {
				p.parseSpread()
			}
			continue
		}

		isGenerator := false
		if !isPattern {
			isGenerator = p.eat(TokenStar)
		}
		if !isPattern && p.isContextual("async") {
			if isGenerator {
				p.unexpected()
			}
			la := p.lookahead()
			if !la.lineBreak && la.typ != TokenColon && la.typ != TokenParenL && la.typ != TokenBraceR &&
				la.typ != TokenEq && la.typ != TokenComma && la.typ != TokenLessThan {
				p.next()
				isGenerator = p.eat(TokenStar)
			}
		}

		p.parsePropertyName(id)
		p.parseObjPropValue(isGenerator, isPattern, isBlockScope, id)
	}
	p.last().ContextID = id
}

func (p *Parser) isGetterOrSetterMethod(isPattern bool) bool {
	key := p.last()
	if isPattern || key.Type != TokenName || (key.Value != "get" && key.Value != "set") {
		return false
	}
	return p.match(TokenString) || p.match(TokenNum) || p.match(TokenBracketL) ||
		p.match(TokenHash) || p.isIdentifierLike()
}

func (p *Parser) parseObjPropValue(isGenerator, isPattern, isBlockScope bool, objectContextID int) {
	if p.parseObjectMethod(isGenerator, isPattern, objectContextID) {
		return
	}
	p.parseObjectProperty(isPattern, isBlockScope)
}

func (p *Parser) parseObjectMethod(isGenerator, isPattern bool, objectContextID int) bool {
	functionStart := len(p.tokens)
	if p.match(TokenParenL) || p.hasTypes() && p.match(TokenLessThan) {
		if isPattern {
			p.unexpected()
		}
		p.parseMethod(functionStart, isGenerator, false)
		return true
	}
	if p.isGetterOrSetterMethod(isPattern) {
		p.parsePropertyName(objectContextID)
		p.parseMethod(len(p.tokens), false, false)
		return true
	}
	return false
}

func (p *Parser) parseObjectProperty(isPattern, isBlockScope bool) {
	if p.eat(TokenColon) {
		if isPattern {
			p.parseMaybeDefault(isBlockScope, false)
		} else {
			p.parseMaybeAssign(false, nil)
		}
		return
	}

	key := p.last()
	if key.Type != TokenName {
		p.unexpected()
	}
	if isPattern {
		if isBlockScope {
			key.IdentifierRole = RoleBlockScopedDeclaration
		} else {
			key.IdentifierRole = RoleFunctionScopedDeclaration
		}
	} else {
		key.IdentifierRole = RoleObjectShorthand
	}
	p.parseMaybeDefault(isBlockScope, true)
}

// parsePropertyName parses a plain or computed key and tags it with the
// enclosing object's context id.
func (p *Parser) parsePropertyName(objectContextID int) {
	if p.eat(TokenBracketL) {
		p.last().ContextID = objectContextID
		p.parseMaybeAssign(false, nil)
		p.expect(TokenBracketR)
		p.last().ContextID = objectContextID
		return
	}
	if p.match(TokenNum) || p.match(TokenString) || p.match(TokenBigInt) {
		p.next()
	} else {
		p.parseMaybePrivateName()
	}
	key := p.last()
	key.IdentifierRole = RoleObjectKey
	key.ContextID = objectContextID
}

// parseMethod parses the parameters and body of an object or class method.
// It reports whether a body was present.
func (p *Parser) parseMethod(functionStart int, isGenerator, isConstructor bool) bool {
	funcContextID := p.newContextID()
	oldInGenerator := p.inGenerator
	p.inGenerator = isGenerator
	startTokenIndex := len(p.tokens)
	p.parseFunctionParams(isConstructor, funcContextID)
	hasBody := p.parseFunctionBodyAndFinish()
	p.pushScope(startTokenIndex, true)
	p.inGenerator = oldInGenerator
	return hasBody
}

// parseArrowExpression parses the body of an arrow whose parameters and
// `=>` have been consumed. The scope starts at startTokenIndex.
func (p *Parser) parseArrowExpression(startTokenIndex int) {
	oldInGenerator := p.inGenerator
	p.inGenerator = false
	p.parseFunctionBody(true)
	p.inGenerator = oldInGenerator
	p.pushScope(startTokenIndex, true)
}

func (p *Parser) parseFunctionBody(allowExpression bool) {
	if allowExpression && !p.match(TokenBraceL) {
		p.parseMaybeAssign(false, nil)
		return
	}
	p.parseBlock(true)
}

func (p *Parser) parseExprList(close TokenType, allowEmpty bool) {
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
		p.parseExprListItem(allowEmpty)
	}
}

func (p *Parser) parseExprListItem(allowEmpty bool) {
	switch {
	case allowEmpty && p.match(TokenComma):
	case p.match(TokenEllipsis):
		p.parseSpread()
		p.parseParenItem()
	default:
		p.parseMaybeAssign(false, p.parseParenItem)
	}
}

// parseIdentifier consumes a name. Keywords are accepted and coerced to
// TokenName since callers only reach here where a name is valid.
func (p *Parser) parseIdentifier() {
	if !p.isIdentifierLike() {
		p.unexpected()
	}
	p.next()
	p.last().Type = TokenName
}

func (p *Parser) parseMaybePrivateName() {
	p.eat(TokenHash)
	p.parseIdentifier()
}

func (p *Parser) parseYield(noIn bool) {
	p.next()
	if !p.match(TokenSemi) && !p.canInsertSemicolon() && (p.match(TokenStar) || p.typ.StartsExpr()) {
		p.eat(TokenStar)
		p.parseMaybeAssign(noIn, nil)
	}
}

func (p *Parser) parseFunctionExpression() {
	startTokenIndex := len(p.tokens)
	p.expect(TokenFunction)
	p.parseFunction(startTokenIndex, false, true)
}

func (p *Parser) parseDecorators() {
	for p.eat(TokenAt) {
		if p.eat(TokenParenL) {
			p.parseExpression(false)
			p.expect(TokenParenR)
		} else {
			p.parseIdentifier()
			p.last().IdentifierRole = RoleAccess
			for p.eat(TokenDot) {
				p.parseIdentifier()
			}
		}
		if p.eat(TokenParenL) {
			p.parseCallArguments()
		}
	}
}

// parseTypeAssertionOrGenericArrow handles a leading `<` in TypeScript
// files without JSX: either `<T>(x) => x` or the cast `<T>x`.
func (p *Parser) parseTypeAssertionOrGenericArrow() {
	if p.tryParse(p.parseGenericArrow) {
		return
	}
	old := p.pushTypeContext()
	p.expect(TokenLessThan)
	p.parseType()
	p.expect(TokenGreaterThan)
	p.popTypeContext(old)
	p.parseMaybeUnary()
}

// parseGenericArrow parses `<T>(params) => body`. It raises when the
// parentheses do not start an arrow, so callers run it under tryParse.
func (p *Parser) parseGenericArrow() {
	p.parseTypeParameters()
	if !p.match(TokenParenL) || !p.parseParenAndDistinguishExpression(true) {
		p.unexpected()
	}
}
