package format

import (
	"encoding"

	"github.com/dhamidi/sucre/js/parser"
)

// Encoder writes an annotated token stream in some textual form.
type Encoder interface {
	encoding.TextMarshaler
	Encode(file *parser.File) error
}
