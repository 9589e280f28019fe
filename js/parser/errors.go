package parser

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// SyntaxError reports source the parser could not accept. Line and Column
// are 1-based; Context is a caret excerpt of the offending line.
type SyntaxError struct {
	File    string
	Pos     int
	Line    int
	Column  int
	Message string
	Context string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func (p *Parser) newSyntaxError(pos int, msg string) *SyntaxError {
	if pos > len(p.input) {
		pos = len(p.input)
	}
	line, col, context := parse.Position(strings.NewReader(p.input), pos)
	return &SyntaxError{
		File:    p.file,
		Pos:     pos,
		Line:    line,
		Column:  col,
		Message: msg,
		Context: context,
	}
}

// raise aborts the parse. Parse and tryParse recover the panic.
func (p *Parser) raise(pos int, msg string) {
	panic(p.newSyntaxError(pos, msg))
}

func (p *Parser) unexpected() {
	p.unexpectedAt(p.start)
}

func (p *Parser) unexpectedAt(pos int) {
	if pos >= len(p.input) {
		p.raise(pos, "Unexpected end of input")
	}
	if pos == p.start && p.end > p.start {
		p.raise(pos, fmt.Sprintf("Unexpected token %q", p.value()))
	}
	p.raise(pos, "Unexpected token")
}
