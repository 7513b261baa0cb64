package parser

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMoreData is returned by Tokenizer.Next when the buffered input
// ends before a complete token; feed more bytes and retry.
var ErrMoreData = errors.New("need more data")

// SyntaxError reports malformed XML input.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("xml syntax error at input offset %d: %s", e.Offset, e.Msg)
	}
	return "xml syntax error: " + e.Msg
}
