package parser

// Type syntax is shared between TypeScript and Flow. Everything parsed here
// runs in type context, so each consumed token is flagged IsType. The entry
// points push the type context themselves; the inner productions assume it.

func (p *Parser) parseTypeAnnotation() {
	old := p.pushTypeContext()
	p.expect(TokenColon)
	p.parseType()
	p.popTypeContext(old)
}

// parseReturnType parses `: T` after a parameter list, including type
// predicates.
func (p *Parser) parseReturnType() {
	old := p.pushTypeContext()
	p.expect(TokenColon)
	p.parseTypeOrTypePredicate()
	p.popTypeContext(old)
}

// parseArrowReturnType parses the return type of an arrow function. An
// unparenthesized Flow function type is not allowed there since its `=>`
// would be taken from the arrow.
func (p *Parser) parseArrowReturnType() {
	old := p.pushTypeContext()
	oldNoAnon := p.noAnonFunctionType
	p.noAnonFunctionType = true
	p.expect(TokenColon)
	p.parseTypeOrTypePredicate()
	p.noAnonFunctionType = oldNoAnon
	p.popTypeContext(old)
}

// parseTypeArguments parses `<A, B>` at expression level.
func (p *Parser) parseTypeArguments() {
	old := p.pushTypeContext()
	p.parseTypeArgumentsInType()
	p.popTypeContext(old)
}

func (p *Parser) parseTypeArgumentsInType() {
	oldNoAnon := p.noAnonFunctionType
	p.noAnonFunctionType = false
	p.expect(TokenLessThan)
	for !p.eat(TokenGreaterThan) {
		p.parseType()
		if !p.match(TokenGreaterThan) {
			p.expect(TokenComma)
		}
	}
	p.noAnonFunctionType = oldNoAnon
}

// parseTypeParameters parses a declaration's `<T extends U = V>` list.
func (p *Parser) parseTypeParameters() {
	old := p.pushTypeContext()
	oldNoAnon := p.noAnonFunctionType
	p.noAnonFunctionType = false
	p.expect(TokenLessThan)
	for !p.eat(TokenGreaterThan) {
		if p.features.TypeScript {
			p.eat(TokenConst)
			p.eat(TokenIn)
			if p.isContextual("out") && p.lookahead().typ == TokenName {
				p.next()
			}
		}
		if p.features.Flow && p.match(TokenPlusMin) {
			p.next()
		}
		p.parseIdentifier()
		if p.eat(TokenExtends) {
			p.parseType()
		}
		if p.features.Flow && p.eat(TokenColon) {
			p.parseType()
		}
		if p.eat(TokenEq) {
			p.parseType()
		}
		if !p.match(TokenGreaterThan) {
			p.expect(TokenComma)
		}
	}
	p.noAnonFunctionType = oldNoAnon
	p.popTypeContext(old)
}

func (p *Parser) parseTypeOrTypePredicate() {
	if p.features.TypeScript {
		if p.isContextual("asserts") {
			la := p.lookahead()
			if (la.typ == TokenName || la.typ == TokenThis) && !la.lineBreak {
				p.next()
				p.next()
				if p.eatContextual("is") {
					p.parseType()
				}
				return
			}
		}
		if p.match(TokenName) || p.match(TokenThis) {
			la := p.lookahead()
			if la.typ == TokenName && la.value == "is" && !la.lineBreak {
				p.next()
				p.next()
				p.parseType()
				return
			}
		}
	}
	p.parseType()
	if p.features.Flow && p.match(TokenModulo) && p.lookahead().value == "checks" {
		p.next()
		p.next()
	}
}

func (p *Parser) parseType() {
	p.parseNonConditionalType()
	if p.features.TypeScript && p.match(TokenExtends) && !p.hasPrecedingLineBreak() {
		p.next()
		p.parseNonConditionalType()
		p.expect(TokenQuestion)
		p.parseType()
		p.expect(TokenColon)
		p.parseType()
	}
}

func (p *Parser) parseNonConditionalType() {
	switch {
	case p.match(TokenLessThan):
		p.parseFunctionType()
		return
	case p.match(TokenParenL):
		if p.tryParse(p.parseFunctionType) {
			return
		}
	case p.match(TokenNew):
		p.next()
		p.parseFunctionType()
		return
	case p.features.TypeScript && p.isContextual("abstract") && p.lookahead().typ == TokenNew:
		p.next()
		p.next()
		p.parseFunctionType()
		return
	}
	p.parseUnionType()
}

// parseFunctionType parses `<T>(a: A, b?: B) => R`.
func (p *Parser) parseFunctionType() {
	if p.match(TokenLessThan) {
		p.parseTypeParameters()
	}
	p.expect(TokenParenL)
	p.parseFunctionTypeParams()
	p.expect(TokenArrow)
	oldNoAnon := p.noAnonFunctionType
	p.noAnonFunctionType = false
	p.parseTypeOrTypePredicate()
	p.noAnonFunctionType = oldNoAnon
}

// parseFunctionTypeParams parses the parameters of a function type or
// signature up to and including `)`. Flow parameters may be unnamed.
func (p *Parser) parseFunctionTypeParams() {
	oldNoAnon := p.noAnonFunctionType
	p.noAnonFunctionType = false
	for !p.eat(TokenParenR) {
		p.eat(TokenEllipsis)
		named := false
		if p.isIdentifierLike() {
			if la := p.lookahead().typ; la == TokenColon || la == TokenQuestion {
				named = true
			}
		}
		if named {
			p.next()
			p.eat(TokenQuestion)
			if p.eat(TokenColon) {
				p.parseType()
			}
		} else {
			p.parseType()
			if p.eat(TokenColon) {
				p.parseType()
			}
		}
		if !p.match(TokenParenR) {
			p.expect(TokenComma)
		}
	}
	p.noAnonFunctionType = oldNoAnon
}

func (p *Parser) parseUnionType() {
	p.eat(TokenBitwiseOR)
	p.parseIntersectionType()
	for p.eat(TokenBitwiseOR) {
		p.parseIntersectionType()
	}
}

func (p *Parser) parseIntersectionType() {
	p.eat(TokenBitwiseAND)
	p.parseAnonFunctionWithoutParens()
	for p.eat(TokenBitwiseAND) {
		p.parseAnonFunctionWithoutParens()
	}
}

// parseAnonFunctionWithoutParens handles the Flow shorthand `A => B`.
func (p *Parser) parseAnonFunctionWithoutParens() {
	p.parseTypeOperator()
	if p.features.Flow && !p.noAnonFunctionType && p.eat(TokenArrow) {
		p.parseType()
	}
}

func (p *Parser) parseTypeOperator() {
	switch {
	case p.features.TypeScript && (p.isContextual("keyof") || p.isContextual("unique") || p.isContextual("readonly")):
		if la := p.lookahead().typ; la != TokenComma && la != TokenParenR && la != TokenBracketR &&
			la != TokenGreaterThan && la != TokenSemi && la != TokenEq && la != TokenBraceR {
			p.next()
			p.parseTypeOperator()
			return
		}
	case p.features.TypeScript && p.isContextual("infer"):
		p.next()
		p.parseIdentifier()
		return
	case p.features.Flow && p.match(TokenQuestion):
		p.next()
		p.parseTypeOperator()
		return
	}
	p.parsePostfixType()
}

func (p *Parser) parsePostfixType() {
	p.parsePrimaryType()
	for !p.hasPrecedingLineBreak() && p.eat(TokenBracketL) {
		if !p.eat(TokenBracketR) {
			p.parseType()
			p.expect(TokenBracketR)
		}
	}
}

func (p *Parser) parsePrimaryType() {
	switch p.typ {
	case TokenName:
		p.parseTypeReference()
	case TokenTypeof:
		p.next()
		if p.match(TokenImport) {
			p.parseImportType()
			return
		}
		p.parseIdentifier()
		for p.eat(TokenDot) {
			p.parseIdentifier()
		}
		if p.match(TokenLessThan) && !p.hasPrecedingLineBreak() {
			p.parseTypeArgumentsInType()
		}
	case TokenImport:
		p.parseImportType()
	case TokenVoid, TokenNull, TokenThis, TokenTrue, TokenFalse, TokenString, TokenNum,
		TokenBigInt, TokenStar:
		p.next()
	case TokenPlusMin:
		p.next()
		if !p.match(TokenNum) && !p.match(TokenBigInt) {
			p.unexpected()
		}
		p.next()
	case TokenBackQuote:
		p.parseTemplateType()
	case TokenBraceL:
		p.parseObjectType(TokenBraceL, TokenBraceR)
	case TokenBraceBarL:
		p.parseObjectType(TokenBraceBarL, TokenBraceBarR)
	case TokenBracketL:
		p.parseTupleType()
	case TokenParenL:
		oldNoAnon := p.noAnonFunctionType
		p.noAnonFunctionType = false
		p.next()
		p.parseType()
		p.expect(TokenParenR)
		p.noAnonFunctionType = oldNoAnon
	default:
		if !p.typ.IsKeyword() {
			p.unexpected()
		}
		p.next()
	}
}

// parseTypeReference parses a possibly qualified, possibly generic name.
func (p *Parser) parseTypeReference() {
	p.parseIdentifier()
	for p.eat(TokenDot) {
		p.parseIdentifier()
	}
	if p.match(TokenLessThan) && !p.hasPrecedingLineBreak() {
		p.parseTypeArgumentsInType()
	}
}

// parseHeritageList parses the type list of `extends` or `implements`.
func (p *Parser) parseHeritageList() {
	p.parseTypeReference()
	for p.eat(TokenComma) {
		p.parseTypeReference()
	}
}

func (p *Parser) parseImportType() {
	p.expect(TokenImport)
	p.expect(TokenParenL)
	p.expect(TokenString)
	p.expect(TokenParenR)
	for p.eat(TokenDot) {
		p.parseIdentifier()
	}
	if p.match(TokenLessThan) && !p.hasPrecedingLineBreak() {
		p.parseTypeArgumentsInType()
	}
}

func (p *Parser) parseTemplateType() {
	p.expect(TokenBackQuote)
	p.parseTemplateElement(false)
	for !p.match(TokenBackQuote) {
		p.expect(TokenDollarBraceL)
		p.parseType()
		p.expect(TokenBraceR)
		p.parseTemplateElement(false)
	}
	p.next()
}

func (p *Parser) parseTupleType() {
	oldNoAnon := p.noAnonFunctionType
	p.noAnonFunctionType = false
	p.expect(TokenBracketL)
	for !p.eat(TokenBracketR) {
		p.eat(TokenEllipsis)
		if p.isIdentifierLike() {
			switch p.lookahead().typ {
			case TokenColon:
				p.next()
				p.next()
			case TokenQuestion:
				// Either `name?: T` or the optional element `T?`.
				p.next()
				p.next()
				if p.eat(TokenColon) {
					p.parseType()
				}
				if !p.match(TokenBracketR) {
					p.expect(TokenComma)
				}
				continue
			}
		}
		p.parseType()
		p.eat(TokenQuestion)
		if !p.match(TokenBracketR) {
			p.expect(TokenComma)
		}
	}
	p.noAnonFunctionType = oldNoAnon
}

// parseObjectType parses object types, interface bodies, TypeScript mapped
// types and Flow exact objects.
func (p *Parser) parseObjectType(open, close TokenType) {
	oldNoAnon := p.noAnonFunctionType
	p.noAnonFunctionType = false
	p.expect(open)
	for !p.eat(close) {
		p.parseTypeMember(close)
		if !p.eat(TokenComma) && !p.eat(TokenSemi) && !p.match(close) && !p.hasPrecedingLineBreak() {
			p.unexpected()
		}
	}
	p.noAnonFunctionType = oldNoAnon
}

func (p *Parser) parseTypeMember(close TokenType) {
	if p.features.Flow && p.eat(TokenEllipsis) {
		if !p.match(close) && !p.match(TokenComma) && !p.match(TokenSemi) {
			p.parseType()
		}
		return
	}

	for {
		if p.match(TokenPlusMin) {
			p.next()
			continue
		}
		if p.isContextual("readonly") || p.isContextual("static") || p.isContextual("proto") {
			if la := p.lookahead().typ; !isMemberNameEnd(la) && la != TokenComma && la != close {
				p.next()
				continue
			}
		}
		break
	}

	switch {
	case p.match(TokenParenL) || p.match(TokenLessThan):
		p.parseSignatureMember()
		return
	case p.match(TokenNew):
		if la := p.lookahead().typ; la == TokenParenL || la == TokenLessThan {
			p.next()
			p.parseSignatureMember()
			return
		}
	case p.eat(TokenBracketL):
		p.parseIndexMemberKey()
		if p.match(TokenPlusMin) {
			p.next()
		}
		p.eat(TokenQuestion)
		if p.match(TokenParenL) || p.match(TokenLessThan) {
			p.parseSignatureMember()
			return
		}
		if p.eat(TokenColon) {
			p.parseType()
		}
		return
	}

	if !p.match(TokenString) && !p.match(TokenNum) && !p.isIdentifierLike() {
		p.unexpected()
	}
	if p.isContextual("get") || p.isContextual("set") {
		if la := p.lookahead().typ; la == TokenName || la.IsKeyword() || la == TokenString || la == TokenNum {
			p.next()
		}
	}
	p.next()
	p.eat(TokenQuestion)
	if p.match(TokenParenL) || p.match(TokenLessThan) {
		p.parseSignatureMember()
		return
	}
	if p.eat(TokenColon) {
		p.parseType()
	}
}

// parseIndexMemberKey parses what follows `[` in an object type: an index
// signature `k: K`, a mapped key `K in T as U`, a Flow indexer type or a
// computed name.
func (p *Parser) parseIndexMemberKey() {
	if p.isIdentifierLike() {
		switch p.lookahead().typ {
		case TokenColon:
			p.next()
			p.next()
			p.parseType()
			p.expect(TokenBracketR)
			return
		case TokenIn:
			p.next()
			p.next()
			p.parseType()
			if p.eatContextual("as") {
				p.parseType()
			}
			p.expect(TokenBracketR)
			return
		}
	}
	p.parseType()
	p.expect(TokenBracketR)
}

func (p *Parser) parseSignatureMember() {
	if p.match(TokenLessThan) {
		p.parseTypeParameters()
	}
	p.expect(TokenParenL)
	p.parseFunctionTypeParams()
	if p.eat(TokenColon) {
		p.parseTypeOrTypePredicate()
	}
}

// isIndexSignatureStart reports whether the `[` of a class member opens an
// index signature such as `[key: string]: T`.
func (p *Parser) isIndexSignatureStart() bool {
	s := p.snapshot()
	defer p.restore(s)
	p.next()
	if !p.isIdentifierLike() {
		return false
	}
	p.next()
	return p.match(TokenColon)
}

func (p *Parser) parseIndexSignature() {
	p.expect(TokenBracketL)
	p.parseIndexMemberKey()
	if p.match(TokenColon) {
		p.parseTypeAnnotation()
	}
}

func (p *Parser) parseTypeAlias() {
	old := p.pushTypeContext()
	p.next()
	p.parseIdentifier()
	if p.match(TokenLessThan) {
		p.parseTypeParameters()
	}
	if p.eat(TokenEq) {
		p.parseType()
	} else if !p.inDeclare {
		p.unexpected()
	}
	p.semicolon()
	p.popTypeContext(old)
}

func (p *Parser) parseOpaqueType() {
	old := p.pushTypeContext()
	p.next()
	p.expectContextual("type")
	p.parseIdentifier()
	if p.match(TokenLessThan) {
		p.parseTypeParameters()
	}
	if p.eat(TokenColon) {
		p.parseType()
	}
	if p.eat(TokenEq) {
		p.parseType()
	}
	p.semicolon()
	p.popTypeContext(old)
}

func (p *Parser) parseInterface() {
	old := p.pushTypeContext()
	p.next()
	p.parseIdentifier()
	if p.match(TokenLessThan) {
		p.parseTypeParameters()
	}
	if p.eat(TokenExtends) {
		p.parseHeritageList()
	}
	p.parseObjectType(TokenBraceL, TokenBraceR)
	p.popTypeContext(old)
}

// parseDeclare parses an ambient `declare` statement. The whole statement
// is type-only, and bodiless functions and methods are accepted inside it.
func (p *Parser) parseDeclare() {
	old := p.pushTypeContext()
	oldInDeclare := p.inDeclare
	p.inDeclare = true
	p.next()

	switch {
	case p.features.Flow && p.isContextual("module") && p.lookahead().typ == TokenDot:
		p.next()
		p.next()
		p.parseIdentifier()
		p.parseTypeAnnotation()
		p.semicolon()
	case p.isContextual("global") || p.isContextual("module") || p.isContextual("namespace"):
		p.parseModuleDeclaration()
	case p.features.Flow && p.eat(TokenExport):
		if p.eat(TokenDefault) && !p.match(TokenFunction) && !p.match(TokenClass) {
			p.parseType()
			p.semicolon()
		} else {
			p.parseStatement()
		}
	case p.match(TokenConst) && p.lookahead().value == "enum":
		p.next()
		p.parseEnum()
	case p.isContextual("enum"):
		p.parseEnum()
	default:
		p.parseStatement()
	}

	p.inDeclare = oldInDeclare
	p.popTypeContext(old)
}

// parseModuleDeclaration parses `module "x" { ... }`, `namespace A.B {}`
// or `global {}` inside an ambient declaration.
func (p *Parser) parseModuleDeclaration() {
	isGlobal := p.isContextual("global")
	p.next()
	if !isGlobal {
		if p.match(TokenString) {
			p.next()
		} else {
			p.parseIdentifier()
			for p.eat(TokenDot) {
				p.parseIdentifier()
			}
		}
	}
	if p.match(TokenBraceL) {
		p.parseModuleBlock()
	} else {
		p.semicolon()
	}
}

func (p *Parser) parseModuleBlock() {
	p.expect(TokenBraceL)
	p.parseBlockBody(TokenBraceR)
	p.next()
}

// parseEnum parses an ambient enum body. Enums with runtime values are
// rejected before reaching here.
func (p *Parser) parseEnum() {
	p.next()
	p.parseIdentifier()
	p.expect(TokenBraceL)
	for !p.eat(TokenBraceR) {
		if p.match(TokenString) {
			p.next()
		} else {
			p.parseIdentifier()
		}
		if p.eat(TokenEq) {
			p.parseMaybeAssign(false, nil)
		}
		if !p.match(TokenBraceR) {
			p.expect(TokenComma)
		}
	}
}
