package parser

// parseBlockBody parses statements until end, which is left unconsumed.
func (p *Parser) parseBlockBody(end TokenType) {
	for !p.match(end) {
		if p.match(TokenEOF) {
			p.unexpected()
		}
		p.parseStatement()
	}
}

func (p *Parser) parseBlock(isFunctionScope bool) {
	startTokenIndex := len(p.tokens)
	p.expect(TokenBraceL)
	p.parseBlockBody(TokenBraceR)
	p.next()
	p.pushScope(startTokenIndex, isFunctionScope)
}

func (p *Parser) parseStatement() {
	if p.match(TokenAt) {
		p.parseDecorators()
	}

	switch p.typ {
	case TokenBreak, TokenContinue:
		p.next()
		if !p.isLineTerminator() {
			p.parseIdentifier()
			p.semicolon()
		}
	case TokenDebugger:
		p.next()
		p.semicolon()
	case TokenDo:
		p.next()
		p.parseStatement()
		p.expect(TokenWhile)
		p.parseParenExpression()
		p.eat(TokenSemi)
	case TokenFor:
		p.parseForStatement()
	case TokenFunction:
		startTokenIndex := len(p.tokens)
		p.next()
		p.parseFunction(startTokenIndex, true, false)
	case TokenClass:
		p.parseClass(true, false)
	case TokenIf:
		p.next()
		p.parseParenExpression()
		p.parseStatement()
		if p.eat(TokenElse) {
			p.parseStatement()
		}
	case TokenReturn:
		p.next()
		if !p.isLineTerminator() {
			p.parseExpression(false)
			p.semicolon()
		}
	case TokenSwitch:
		p.parseSwitchStatement()
	case TokenThrow:
		p.next()
		p.parseExpression(false)
		p.semicolon()
	case TokenTry:
		p.parseTryStatement()
	case TokenConst, TokenVar:
		kind := p.typ
		if kind == TokenConst && p.features.TypeScript && p.lookahead().value == "enum" {
			if !p.inDeclare {
				p.raise(p.start, "TypeScript enums are not supported")
			}
			p.next()
			p.parseEnum()
			return
		}
		p.next()
		p.parseVar(false, kind == TokenConst)
		p.semicolon()
	case TokenWhile, TokenWith:
		p.next()
		p.parseParenExpression()
		p.parseStatement()
	case TokenBraceL:
		p.parseBlock(false)
	case TokenSemi:
		p.next()
	case TokenImport:
		if la := p.lookahead().typ; la == TokenParenL || la == TokenDot {
			p.parseExpressionStatement()
			return
		}
		p.parseImport()
	case TokenExport:
		p.parseExport()
	case TokenName:
		if p.parseContextualStatement() {
			return
		}
		p.parseExpressionStatement()
	default:
		p.parseExpressionStatement()
	}
}

// parseContextualStatement handles statements introduced by a contextual
// keyword such as `let`, `async` or `type`. It reports false when the name
// starts an ordinary expression.
func (p *Parser) parseContextualStatement() bool {
	la := p.lookahead()
	switch p.value() {
	case "let":
		if la.typ == TokenName || la.typ == TokenBracketL || la.typ == TokenBraceL || la.typ == TokenYield {
			p.next()
			p.parseVar(false, true)
			p.semicolon()
			return true
		}
	case "async":
		if la.typ == TokenFunction && !la.lineBreak {
			startTokenIndex := len(p.tokens)
			p.next()
			p.next()
			p.parseFunction(startTokenIndex, true, false)
			return true
		}
	case "type":
		if p.hasTypes() && la.typ == TokenName && !la.lineBreak {
			p.parseTypeAlias()
			return true
		}
	case "interface":
		if p.hasTypes() && la.typ == TokenName && !la.lineBreak {
			p.parseInterface()
			return true
		}
	case "opaque":
		if p.features.Flow && la.value == "type" && !la.lineBreak {
			p.parseOpaqueType()
			return true
		}
	case "declare":
		if p.hasTypes() && !la.lineBreak && (la.typ.IsKeyword() || la.typ == TokenName) {
			p.parseDeclare()
			return true
		}
	case "abstract":
		if p.features.TypeScript && la.typ == TokenClass && !la.lineBreak {
			old := p.pushTypeContext()
			p.next()
			p.popTypeContext(old)
			p.parseClass(true, false)
			return true
		}
	case "enum":
		if p.features.TypeScript && la.typ == TokenName && !la.lineBreak {
			if !p.inDeclare {
				p.raise(p.start, "TypeScript enums are not supported")
			}
			p.parseEnum()
			return true
		}
	case "namespace", "module":
		if p.features.TypeScript && (la.typ == TokenName || la.typ == TokenString) && !la.lineBreak {
			if !p.inDeclare {
				p.raise(p.start, "TypeScript namespaces are not supported")
			}
			p.parseModuleDeclaration()
			return true
		}
	case "global":
		if p.inDeclare && la.typ == TokenBraceL {
			p.parseModuleDeclaration()
			return true
		}
	}
	return false
}

// parseExpressionStatement parses an expression statement, or a labeled
// statement when the expression is a lone identifier followed by `:`.
func (p *Parser) parseExpressionStatement() {
	startTokenIndex := len(p.tokens)
	p.parseExpression(false)
	if len(p.tokens) == startTokenIndex+1 && p.last().Type == TokenName && p.eat(TokenColon) {
		p.parseStatement()
		return
	}
	p.semicolon()
}

func (p *Parser) parseParenExpression() {
	p.expect(TokenParenL)
	p.parseExpression(false)
	p.expect(TokenParenR)
}

func (p *Parser) parseSwitchStatement() {
	p.next()
	p.parseParenExpression()
	startTokenIndex := len(p.tokens)
	p.expect(TokenBraceL)
	for !p.eat(TokenBraceR) {
		if p.match(TokenCase) || p.match(TokenDefault) {
			isCase := p.match(TokenCase)
			p.next()
			if isCase {
				p.parseExpression(false)
			}
			p.expect(TokenColon)
			continue
		}
		p.parseStatement()
	}
	p.pushScope(startTokenIndex, false)
}

func (p *Parser) parseTryStatement() {
	p.next()
	p.parseBlock(false)
	if p.match(TokenCatch) {
		startTokenIndex := len(p.tokens)
		p.next()
		if p.eat(TokenParenL) {
			p.parseBindingAtom(true)
			if p.hasTypes() && p.match(TokenColon) {
				p.parseTypeAnnotation()
			}
			p.expect(TokenParenR)
		}
		p.parseBlock(false)
		p.pushScope(startTokenIndex, false)
	}
	if p.eat(TokenFinally) {
		p.parseBlock(false)
	}
}

func (p *Parser) parseVar(isFor, isBlockScope bool) {
	for {
		p.parseVarHead(isBlockScope)
		if p.eat(TokenEq) {
			p.parseMaybeAssign(isFor, nil)
		}
		if !p.eat(TokenComma) {
			return
		}
	}
}

func (p *Parser) parseVarHead(isBlockScope bool) {
	p.parseBindingAtom(isBlockScope)
	if p.features.TypeScript && p.match(TokenBang) {
		old := p.pushTypeContext()
		p.next()
		p.popTypeContext(old)
	}
	if p.hasTypes() && p.match(TokenColon) {
		p.parseTypeAnnotation()
	}
}

func (p *Parser) isLetDeclaration() bool {
	if !p.isContextual("let") {
		return false
	}
	la := p.lookahead().typ
	return la == TokenName || la == TokenBracketL || la == TokenBraceL
}

// parseForStatement parses every `for` form. The loop head and body form
// one non-function scope.
func (p *Parser) parseForStatement() {
	startTokenIndex := len(p.tokens)
	p.next()
	p.eatContextual("await")
	p.expect(TokenParenL)

	switch {
	case p.match(TokenSemi):
		p.parseFor()
	case p.match(TokenVar) || p.match(TokenConst) || p.isLetDeclaration():
		isBlockScope := !p.match(TokenVar)
		p.next()
		p.parseVar(true, isBlockScope)
		if p.match(TokenIn) || p.isContextual("of") {
			p.parseForIn()
		} else {
			p.parseFor()
		}
	default:
		p.parseExpression(true)
		if p.match(TokenIn) || p.isContextual("of") {
			p.parseForIn()
		} else {
			p.parseFor()
		}
	}
	p.pushScope(startTokenIndex, false)
}

func (p *Parser) parseFor() {
	p.expect(TokenSemi)
	if !p.match(TokenSemi) {
		p.parseExpression(false)
	}
	p.expect(TokenSemi)
	if !p.match(TokenParenR) {
		p.parseExpression(false)
	}
	p.expect(TokenParenR)
	p.parseStatement()
}

func (p *Parser) parseForIn() {
	isIn := p.match(TokenIn)
	p.next()
	if isIn {
		p.parseExpression(false)
	} else {
		p.parseMaybeAssign(false, nil)
	}
	p.expect(TokenParenR)
	p.parseStatement()
}

// parseFunction parses a function after its `function` keyword. A
// TypeScript signature without a body is retroactively marked as a type
// from startTokenIndex on.
func (p *Parser) parseFunction(startTokenIndex int, isStatement, optionalID bool) {
	isGenerator := p.eat(TokenStar)
	if !p.match(TokenParenL) && !p.match(TokenLessThan) {
		p.parseBindingIdentifier(false)
	} else if isStatement && !optionalID {
		p.unexpected()
	}

	funcContextID := p.newContextID()
	oldInGenerator := p.inGenerator
	p.inGenerator = isGenerator
	paramsStart := len(p.tokens)
	p.parseFunctionParams(false, funcContextID)
	hasBody := p.parseFunctionBodyAndFinish()
	p.inGenerator = oldInGenerator
	p.pushScope(paramsStart, true)
	if !hasBody {
		p.markTypeFrom(startTokenIndex)
	}
}

// parseFunctionParams parses optional type parameters and the parameter
// list. A nonzero funcContextID is stamped on the parentheses.
func (p *Parser) parseFunctionParams(allowModifiers bool, funcContextID int) {
	if p.hasTypes() && p.match(TokenLessThan) {
		p.parseTypeParameters()
	}
	p.expect(TokenParenL)
	if funcContextID != 0 {
		p.last().ContextID = funcContextID
	}
	p.parseBindingList(TokenParenR, false, false, allowModifiers)
	if funcContextID != 0 {
		p.last().ContextID = funcContextID
	}
}

// parseFunctionBodyAndFinish parses the return type and the body. It
// reports false for a bodiless declaration, as in overloads, abstract
// methods and ambient declarations.
func (p *Parser) parseFunctionBodyAndFinish() bool {
	if p.hasTypes() && p.match(TokenColon) {
		p.parseReturnType()
	}
	if !p.match(TokenBraceL) && (p.features.TypeScript || p.inDeclare) {
		if p.match(TokenSemi) || p.canInsertSemicolon() {
			old := p.pushTypeContext()
			p.eat(TokenSemi)
			p.popTypeContext(old)
			return false
		}
	}
	p.parseFunctionBody(false)
	return true
}

// parseClass parses a class declaration or expression. The body braces and
// member keys share a context id.
func (p *Parser) parseClass(isStatement, optionalID bool) {
	p.expect(TokenClass)
	if p.isIdentifierLike() && !p.match(TokenExtends) && !p.isContextual("implements") {
		p.parseBindingIdentifier(true)
	} else if isStatement && !optionalID {
		p.unexpected()
	}
	if p.hasTypes() && p.match(TokenLessThan) {
		p.parseTypeParameters()
	}
	if p.eat(TokenExtends) {
		p.parseExprSubscripts()
		if p.hasTypes() && p.match(TokenLessThan) {
			p.parseTypeArguments()
		}
	}
	if p.hasTypes() && p.isContextual("implements") {
		old := p.pushTypeContext()
		p.next()
		p.parseHeritageList()
		p.popTypeContext(old)
	}
	p.parseClassBody()
}

func (p *Parser) parseClassBody() {
	id := p.newContextID()
	p.expect(TokenBraceL)
	p.last().ContextID = id
	for !p.eat(TokenBraceR) {
		if p.eat(TokenSemi) {
			continue
		}
		memberStart := len(p.tokens)
		if p.match(TokenAt) {
			p.parseDecorators()
		}
		p.parseClassMember(id, memberStart)
	}
	p.last().ContextID = id
}

// isMemberNameEnd reports whether a token ends a class member name, so the
// preceding word is the member name rather than a modifier.
func isMemberNameEnd(t TokenType) bool {
	switch t {
	case TokenParenL, TokenEq, TokenSemi, TokenColon, TokenBraceR, TokenQuestion,
		TokenBang, TokenLessThan, TokenEOF:
		return true
	}
	return false
}

func (p *Parser) parseClassMember(classContextID, memberStart int) {
	isStatic := false
	declared := false
	for p.typ == TokenName {
		la := p.lookahead()
		if isMemberNameEnd(la.typ) {
			break
		}
		name := p.value()
		switch {
		case p.features.TypeScript && (accessibilityModifiers[name] || name == "abstract" || name == "declare"):
			declared = declared || name == "declare"
			old := p.pushTypeContext()
			p.next()
			p.popTypeContext(old)
			continue
		case name == "static" && !isStatic:
			if la.typ == TokenBraceL {
				p.next()
				p.parseBlock(false)
				return
			}
			isStatic = true
			p.next()
			continue
		}
		break
	}

	if p.features.TypeScript && p.match(TokenBracketL) && p.isIndexSignatureStart() {
		old := p.pushTypeContext()
		p.parseIndexSignature()
		p.eat(TokenComma)
		p.semicolon()
		p.popTypeContext(old)
		p.markTypeFrom(memberStart)
		return
	}
	if p.features.Flow && p.match(TokenPlusMin) {
		old := p.pushTypeContext()
		p.next()
		p.popTypeContext(old)
	}

	isGenerator := p.eat(TokenStar)
	isAccessor := false
	if !isGenerator && p.typ == TokenName {
		name := p.value()
		la := p.lookahead()
		if (name == "async" || name == "get" || name == "set") && !isMemberNameEnd(la.typ) && !la.lineBreak {
			p.next()
			isAccessor = name != "async"
			if name == "async" {
				isGenerator = p.eat(TokenStar)
			}
		}
	}

	p.parsePropertyName(classContextID)
	key := p.last()
	isConstructor := !isStatic && key.Type == TokenName && key.Value == "constructor"

	if p.hasTypes() && (p.match(TokenQuestion) || p.features.TypeScript && p.match(TokenBang)) {
		old := p.pushTypeContext()
		p.next()
		p.popTypeContext(old)
	}

	if p.match(TokenParenL) || p.match(TokenLessThan) || isAccessor {
		if !p.parseMethod(len(p.tokens), isGenerator, isConstructor) {
			p.markTypeFrom(memberStart)
		}
		return
	}

	// Class field.
	if p.hasTypes() && p.match(TokenColon) {
		p.parseTypeAnnotation()
	}
	hasInitializer := false
	if p.eat(TokenEq) {
		hasInitializer = true
		p.parseMaybeAssign(false, nil)
	}
	p.semicolon()
	if declared || p.hasTypes() && !hasInitializer {
		p.markTypeFrom(memberStart)
	}
}

func (p *Parser) parseImport() {
	startTokenIndex := len(p.tokens)
	p.expect(TokenImport)
	if p.hasTypes() && p.atTypeImportKeyword() {
		la := p.lookahead()
		if la.typ == TokenBraceL || la.typ == TokenStar || la.typ == TokenName && la.value != "from" ||
			la.typ == TokenName && la.value == "from" && p.fromIsBinding() {
			old := p.pushTypeContext()
			p.next()
			p.parseImportRest()
			p.popTypeContext(old)
			p.markTypeFrom(startTokenIndex)
			return
		}
	}
	p.parseImportRest()
}

// fromIsBinding distinguishes `import type from "x"` (a default import
// named type) from `import type from from "x"`.
func (p *Parser) fromIsBinding() bool {
	s := p.snapshot()
	defer p.restore(s)
	p.next()
	p.next()
	return p.isContextual("from")
}

func (p *Parser) atTypeImportKeyword() bool {
	return p.isContextual("type") || p.features.Flow && p.match(TokenTypeof)
}

func (p *Parser) parseImportRest() {
	if p.match(TokenString) {
		p.next()
		p.parseImportAttributes()
		p.semicolon()
		return
	}
	p.parseImportSpecifiers()
	p.expectContextual("from")
	p.expect(TokenString)
	p.parseImportAttributes()
	p.semicolon()
}

func (p *Parser) parseImportAttributes() {
	if (p.match(TokenWith) || p.isContextual("assert")) && !p.hasPrecedingLineBreak() {
		p.next()
		p.parseObj(false, false)
	}
}

func (p *Parser) parseImportSpecifiers() {
	if p.match(TokenName) {
		p.parseBindingIdentifier(true)
		if !p.eat(TokenComma) {
			return
		}
	}
	if p.eat(TokenStar) {
		p.expectContextual("as")
		p.parseBindingIdentifier(true)
		return
	}
	p.expect(TokenBraceL)
	for !p.eat(TokenBraceR) {
		if !p.parseModuleSpecifier(true) && !p.match(TokenBraceR) {
			p.expect(TokenComma)
		}
	}
}

// parseModuleSpecifier parses one import or export specifier. A `type`
// specifier is consumed together with its trailing comma as type tokens,
// in which case it reports true.
func (p *Parser) parseModuleSpecifier(isImport bool) bool {
	if p.hasTypes() && p.atTypeImportKeyword() {
		la := p.lookahead()
		if la.typ == TokenName || la.typ.IsKeyword() || la.typ == TokenString {
			old := p.pushTypeContext()
			p.next()
			p.parseModuleSpecifierName(isImport)
			p.eat(TokenComma)
			p.popTypeContext(old)
			return true
		}
	}
	p.parseModuleSpecifierName(isImport)
	return false
}

// parseModuleSpecifierName parses `a`, `a as b` or a string name. The local
// name of an export is an access; that of an import is a declaration.
func (p *Parser) parseModuleSpecifierName(isImport bool) {
	if p.match(TokenString) {
		p.next()
	} else {
		p.parseIdentifier()
		if !isImport {
			p.last().IdentifierRole = RoleAccess
		}
	}
	if p.eatContextual("as") {
		if isImport {
			p.parseBindingIdentifier(true)
		} else if p.match(TokenString) {
			p.next()
		} else {
			p.parseIdentifier()
		}
		return
	}
	if isImport {
		p.last().IdentifierRole = RoleBlockScopedDeclaration
	}
}

func (p *Parser) parseExport() {
	startTokenIndex := len(p.tokens)
	p.expect(TokenExport)

	switch {
	case p.hasTypes() && p.isContextual("type") && p.exportTypeList():
		old := p.pushTypeContext()
		p.next()
		if p.eat(TokenStar) {
			p.expectContextual("from")
			p.expect(TokenString)
		} else {
			p.parseExportSpecifiers()
			if p.eatContextual("from") {
				p.expect(TokenString)
			}
		}
		p.semicolon()
		p.popTypeContext(old)
		p.markTypeFrom(startTokenIndex)
		return

	case p.eat(TokenStar):
		if p.eatContextual("as") {
			if p.match(TokenString) {
				p.next()
			} else {
				p.parseIdentifier()
			}
		}
		p.expectContextual("from")
		p.expect(TokenString)
		p.parseImportAttributes()
		p.semicolon()

	case p.eat(TokenDefault):
		switch {
		case p.match(TokenFunction):
			start := len(p.tokens)
			p.next()
			p.parseFunction(start, true, true)
		case p.isContextual("async") && p.lookahead().typ == TokenFunction:
			start := len(p.tokens)
			p.next()
			p.next()
			p.parseFunction(start, true, true)
		case p.match(TokenClass):
			p.parseClass(true, true)
		case p.match(TokenAt):
			p.parseDecorators()
			p.parseClass(true, true)
		case p.hasTypes() && p.isContextual("interface") && p.lookahead().typ == TokenName:
			p.parseInterface()
			p.markTypeFrom(startTokenIndex)
			return
		case p.features.TypeScript && p.isContextual("abstract") && p.lookahead().typ == TokenClass:
			p.parseStatement()
		default:
			p.parseMaybeAssign(false, nil)
			p.semicolon()
		}

	case p.match(TokenBraceL):
		p.parseExportSpecifiers()
		if p.eatContextual("from") {
			p.expect(TokenString)
			p.parseImportAttributes()
		}
		p.semicolon()

	case p.features.TypeScript && p.match(TokenEq):
		p.next()
		p.parseExpression(false)
		p.semicolon()

	case p.features.TypeScript && p.isContextual("as"):
		old := p.pushTypeContext()
		p.next()
		p.expectContextual("namespace")
		p.parseIdentifier()
		p.semicolon()
		p.popTypeContext(old)
		p.markTypeFrom(startTokenIndex)
		return

	default:
		p.parseStatement()
	}

	// `export` in front of a type-only declaration goes with it.
	for i := startTokenIndex + 1; i < len(p.tokens); i++ {
		if !p.tokens[i].IsType {
			return
		}
	}
	p.tokens[startTokenIndex].IsType = true
}

// exportTypeList reports whether `type` after `export` starts a type-only
// re-export list rather than a type alias.
func (p *Parser) exportTypeList() bool {
	la := p.lookahead().typ
	return la == TokenBraceL || la == TokenStar
}

func (p *Parser) parseExportSpecifiers() {
	p.expect(TokenBraceL)
	for !p.eat(TokenBraceR) {
		if !p.parseModuleSpecifier(false) && !p.match(TokenBraceR) {
			p.expect(TokenComma)
		}
	}
}
