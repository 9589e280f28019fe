package parser

// Features selects the syntax extensions the parser accepts.
type Features struct {
	TypeScript bool
	Flow       bool
	JSX        bool
}

// File is the result of a successful parse.
type File struct {
	Path   string
	Source string
	Tokens []Token
	Scopes []Scope
}

// Parser turns source text into an annotated token stream. The tokenizer is
// driven by the grammar: the lookahead token lives in the embedded cursor
// and is appended to tokens when consumed.
type Parser struct {
	input    string
	file     string
	features Features

	tokens        []Token
	scopes        []Scope
	nextContextID int

	cursor
	flags
}

// Option configures a Parser.
type Option func(*Parser)

// WithFile sets the file name reported in syntax errors.
func WithFile(filename string) Option {
	return func(p *Parser) {
		p.file = filename
	}
}

// WithFeatures enables TypeScript, Flow or JSX syntax.
func WithFeatures(features Features) Option {
	return func(p *Parser) {
		p.features = features
	}
}

// WithTypeScript enables TypeScript syntax.
func WithTypeScript() Option {
	return func(p *Parser) {
		p.features.TypeScript = true
	}
}

// WithFlow enables Flow syntax.
func WithFlow() Option {
	return func(p *Parser) {
		p.features.Flow = true
	}
}

// WithJSX enables JSX elements and fragments.
func WithJSX() Option {
	return func(p *Parser) {
		p.features.JSX = true
	}
}

// Parse tokenizes and parses source in one pass. Comments and whitespace
// are not tokens; they remain in the gaps between token offsets.
func Parse(source string, opts ...Option) (file *File, err error) {
	p := &Parser{
		input:         source,
		nextContextID: 1,
	}
	p.potentialArrowAt = -1
	for _, opt := range opts {
		opt(p)
	}

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			file, err = nil, se
		}
	}()

	p.parseTopLevel()
	return &File{
		Path:   p.file,
		Source: source,
		Tokens: p.tokens,
		Scopes: p.scopes,
	}, nil
}

func (p *Parser) parseTopLevel() {
	p.skipHashbang()
	p.scan()
	p.parseBlockBody(TokenEOF)
	p.pushScope(0, true)
}
