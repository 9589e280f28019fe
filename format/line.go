package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/sucre/js/parser"
)

// LineEncoder writes one tab-separated line per token followed by one line
// per scope. Empty columns are written as "-".
type LineEncoder struct {
	w    io.Writer
	file *parser.File
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(file *parser.File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder

	for i, tok := range e.file.Tokens {
		fmt.Fprintf(&sb, "%d\t%d:%d\t%s\t%s\t%s\t%s\n",
			i,
			tok.Start,
			tok.End,
			tok.Type.Label(),
			strconv.Quote(tok.Value),
			orDash(e.contextIDStr(tok)),
			orDash(e.flagsStr(tok)),
		)
	}

	for _, s := range e.file.Scopes {
		kind := "block"
		if s.IsFunctionScope {
			kind = "function"
		}
		fmt.Fprintf(&sb, "scope\t%d:%d\t%s\n", s.StartTokenIndex, s.EndTokenIndex, kind)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) contextIDStr(tok parser.Token) string {
	if tok.ContextID == 0 {
		return ""
	}
	return "ctx=" + strconv.Itoa(tok.ContextID)
}

func (e *LineEncoder) flagsStr(tok parser.Token) string {
	var flags []string
	if tok.IdentifierRole != parser.RoleNone {
		flags = append(flags, tok.IdentifierRole.String())
	}
	if tok.IsType {
		flags = append(flags, "type")
	}
	return strings.Join(flags, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
