package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sucre/js/parser"
)

type JSONEncoder struct {
	w    io.Writer
	file *parser.File
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(file *parser.File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.buildFileData(), "", "  ")
}

type jsonFile struct {
	Path   string      `json:"path,omitempty"`
	Tokens []jsonToken `json:"tokens"`
	Scopes []jsonScope `json:"scopes"`
}

type jsonToken struct {
	Type      string `json:"type"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Value     string `json:"value"`
	ContextID int    `json:"contextId,omitempty"`
	Role      string `json:"role,omitempty"`
	IsType    bool   `json:"isType,omitempty"`
}

type jsonScope struct {
	StartTokenIndex int  `json:"startTokenIndex"`
	EndTokenIndex   int  `json:"endTokenIndex"`
	IsFunctionScope bool `json:"isFunctionScope"`
}

func (e *JSONEncoder) buildFileData() jsonFile {
	f := e.file
	return jsonFile{
		Path:   f.Path,
		Tokens: buildTokens(f.Tokens),
		Scopes: buildScopes(f.Scopes),
	}
}

func buildTokens(tokens []parser.Token) []jsonToken {
	result := make([]jsonToken, len(tokens))
	for i, tok := range tokens {
		result[i] = jsonToken{
			Type:      tok.Type.Label(),
			Start:     tok.Start,
			End:       tok.End,
			Value:     tok.Value,
			ContextID: tok.ContextID,
			Role:      tok.IdentifierRole.String(),
			IsType:    tok.IsType,
		}
	}
	return result
}

func buildScopes(scopes []parser.Scope) []jsonScope {
	result := make([]jsonScope, len(scopes))
	for i, s := range scopes {
		result[i] = jsonScope{
			StartTokenIndex: s.StartTokenIndex,
			EndTokenIndex:   s.EndTokenIndex,
			IsFunctionScope: s.IsFunctionScope,
		}
	}
	return result
}
