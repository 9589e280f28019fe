package transform

import (
	"github.com/dhamidi/sucre/js/parser"
)

// Run drives fn over a fresh TokenProcessor and returns the finished
// output. Misuse of the processor inside fn is returned as *InternalError;
// any other panic propagates.
func Run(source string, tokens []parser.Token, fn func(*TokenProcessor)) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InternalError)
			if !ok {
				panic(r)
			}
			out, err = "", ie
		}
	}()

	tp := NewTokenProcessor(source, tokens)
	fn(tp)
	return tp.Finish(), nil
}

// CopyAll consumes every remaining token unchanged.
func CopyAll(tp *TokenProcessor) {
	for !tp.IsAtEnd() {
		tp.CopyToken()
	}
}

// EraseTypes removes every token the parser flagged as type syntax and
// copies the rest.
func EraseTypes(tp *TokenProcessor) {
	for !tp.IsAtEnd() {
		if !tp.CurrentToken().IsType {
			tp.CopyToken()
			continue
		}
		if tp.CurrentIndex() == 0 {
			tp.RemoveInitialToken()
		} else {
			tp.RemoveToken()
		}
	}
}
