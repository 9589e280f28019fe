package transform

import (
	"fmt"
	"strings"

	"github.com/dhamidi/sucre/js/parser"
)

// InternalError reports a transform pass that used a TokenProcessor
// incorrectly. It signals a bug in the pass, not in the program being
// transformed.
type InternalError struct {
	Op      string
	Index   int
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s at token %d: %s", e.Op, e.Index, e.Message)
}

// Snapshot records a TokenProcessor position for later rollback.
type Snapshot struct {
	OutputLength int
	TokenIndex   int
}

// TokenProcessor replays an annotated token stream against its source and
// accumulates rewritten output. Each token is consumed exactly once by a
// copy, replace or remove call; the whitespace and comments preceding a token
// travel with it.
type TokenProcessor struct {
	code   string
	tokens []parser.Token
	out    []byte
	index  int
}

// NewTokenProcessor returns a processor positioned at the first token.
func NewTokenProcessor(code string, tokens []parser.Token) *TokenProcessor {
	return &TokenProcessor{code: code, tokens: tokens}
}

func (tp *TokenProcessor) fail(op, format string, args ...any) {
	panic(&InternalError{Op: op, Index: tp.index, Message: fmt.Sprintf(format, args...)})
}

func (tp *TokenProcessor) Snapshot() Snapshot {
	return Snapshot{OutputLength: len(tp.out), TokenIndex: tp.index}
}

// Restore rewinds the output buffer and cursor to s.
func (tp *TokenProcessor) Restore(s Snapshot) {
	tp.out = tp.out[:s.OutputLength]
	tp.index = s.TokenIndex
}

func (tp *TokenProcessor) Reset() {
	tp.out = tp.out[:0]
	tp.index = 0
}

// ResultCodeIndex is the current length of the output.
func (tp *TokenProcessor) ResultCodeIndex() int {
	return len(tp.out)
}

// CodeInsertedSinceIndex returns the output produced after a
// ResultCodeIndex mark.
func (tp *TokenProcessor) CodeInsertedSinceIndex(mark int) string {
	return string(tp.out[mark:])
}

// MatchesAtIndex reports whether the tokens starting at index have the
// given types. Indexes outside the stream never match.
func (tp *TokenProcessor) MatchesAtIndex(index int, types ...parser.TokenType) bool {
	if index < 0 {
		return false
	}
	for i, t := range types {
		if index+i >= len(tp.tokens) || tp.tokens[index+i].Type != t {
			return false
		}
	}
	return true
}

func (tp *TokenProcessor) MatchesAtRelativeIndex(relative int, types ...parser.TokenType) bool {
	return tp.MatchesAtIndex(tp.index+relative, types...)
}

func (tp *TokenProcessor) Matches(types ...parser.TokenType) bool {
	return tp.MatchesAtIndex(tp.index, types...)
}

func (tp *TokenProcessor) MatchesNameAtIndex(index int, name string) bool {
	return tp.MatchesAtIndex(index, parser.TokenName) && tp.tokens[index].Value == name
}

func (tp *TokenProcessor) MatchesNameAtRelativeIndex(relative int, name string) bool {
	return tp.MatchesNameAtIndex(tp.index+relative, name)
}

func (tp *TokenProcessor) MatchesName(name string) bool {
	return tp.MatchesNameAtIndex(tp.index, name)
}

// MatchesKeyword reports whether the current token is a real use of the
// keyword name, as opposed to a property access or object key spelled the
// same way.
func (tp *TokenProcessor) MatchesKeyword(name string) bool {
	if tp.index >= len(tp.tokens) || tp.MatchesAtRelativeIndex(-1, parser.TokenDot) {
		return false
	}
	tok := tp.tokens[tp.index]
	if tok.IdentifierRole == parser.RoleObjectKey {
		return false
	}
	return tok.Type.Label() == name || (tok.Type == parser.TokenName && tok.Value == name)
}

// MatchesContextIDAndLabel reports whether the current token has type t and
// belongs to the construct identified by contextID.
func (tp *TokenProcessor) MatchesContextIDAndLabel(t parser.TokenType, contextID int) bool {
	return tp.Matches(t) && tp.tokens[tp.index].ContextID == contextID
}

// PreviousWhitespace is the source between the previous token and the
// current one, comments included.
func (tp *TokenProcessor) PreviousWhitespace() string {
	return tp.code[tp.gapStart():tp.tokens[tp.index].Start]
}

func (tp *TokenProcessor) gapStart() int {
	if tp.index > 0 {
		return tp.tokens[tp.index-1].End
	}
	return 0
}

func (tp *TokenProcessor) checkCurrent(op string) {
	if tp.index >= len(tp.tokens) {
		tp.fail(op, "Unexpectedly reached end of input.")
	}
}

func (tp *TokenProcessor) ReplaceToken(text string) {
	tp.checkCurrent("ReplaceToken")
	tp.out = append(tp.out, tp.PreviousWhitespace()...)
	tp.out = append(tp.out, text...)
	tp.index++
}

// ReplaceTokenTrimmingLeftWhitespace is ReplaceToken with spaces and tabs
// dropped from the preceding gap. Line breaks survive so line numbers stay
// stable.
func (tp *TokenProcessor) ReplaceTokenTrimmingLeftWhitespace(text string) {
	tp.checkCurrent("ReplaceTokenTrimmingLeftWhitespace")
	tp.out = append(tp.out, trimHorizontal(tp.PreviousWhitespace())...)
	tp.out = append(tp.out, text...)
	tp.index++
}

func trimHorizontal(s string) string {
	if !strings.ContainsAny(s, " \t") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
}

// RemoveInitialToken drops the current token but keeps its leading gap
// verbatim. Used for the first token of a stream.
func (tp *TokenProcessor) RemoveInitialToken() {
	tp.ReplaceToken("")
}

func (tp *TokenProcessor) RemoveToken() {
	tp.ReplaceTokenTrimmingLeftWhitespace("")
}

// ExpectToken asserts the current token has type t without consuming it.
func (tp *TokenProcessor) ExpectToken(t parser.TokenType) {
	if tp.index >= len(tp.tokens) || tp.tokens[tp.index].Type != t {
		tp.fail("ExpectToken", "Expected token %s", t.Label())
	}
}

func (tp *TokenProcessor) CopyExpectedToken(t parser.TokenType) {
	if tp.index >= len(tp.tokens) || tp.tokens[tp.index].Type != t {
		tp.fail("CopyExpectedToken", "Expected token %s", t.Label())
	}
	tp.CopyToken()
}

// CopyToken appends the current token and its leading gap unchanged.
func (tp *TokenProcessor) CopyToken() {
	tp.checkCurrent("CopyToken")
	tp.out = append(tp.out, tp.code[tp.gapStart():tp.tokens[tp.index].End]...)
	tp.index++
}

func (tp *TokenProcessor) AppendCode(code string) {
	tp.out = append(tp.out, code...)
}

func (tp *TokenProcessor) CurrentToken() parser.Token {
	tp.checkCurrent("CurrentToken")
	return tp.tokens[tp.index]
}

func (tp *TokenProcessor) CurrentTokenCode() string {
	tok := tp.CurrentToken()
	return tp.code[tok.Start:tok.End]
}

func (tp *TokenProcessor) TokenAtRelativeIndex(relative int) parser.Token {
	i := tp.index + relative
	if i < 0 || i >= len(tp.tokens) {
		tp.fail("TokenAtRelativeIndex", "token index %d out of range", i)
	}
	return tp.tokens[i]
}

func (tp *TokenProcessor) CurrentIndex() int {
	return tp.index
}

// NextToken advances without producing output. Passes that emit code
// should consume tokens with CopyToken or RemoveToken instead.
func (tp *TokenProcessor) NextToken() {
	if tp.index == len(tp.tokens) {
		tp.fail("NextToken", "Unexpectedly reached end of input.")
	}
	tp.index++
}

func (tp *TokenProcessor) PreviousToken() {
	if tp.index == 0 {
		tp.fail("PreviousToken", "already at the first token")
	}
	tp.index--
}

func (tp *TokenProcessor) IsAtEnd() bool {
	return tp.index == len(tp.tokens)
}

// Finish appends the source after the last token and returns the output.
// Every token must have been consumed.
func (tp *TokenProcessor) Finish() string {
	if tp.index != len(tp.tokens) {
		tp.fail("Finish", "Tried to finish processing tokens before reaching the end.")
	}
	tail := 0
	if len(tp.tokens) > 0 {
		tail = tp.tokens[len(tp.tokens)-1].End
	}
	tp.out = append(tp.out, tp.code[tail:]...)
	return string(tp.out)
}
