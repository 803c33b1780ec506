package pdxtext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/pdxtext/i18n"
	"github.com/reoring/pdxtext/internal/tape"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError        = "parse_error"
	CodeUnterminatedQuote = tape.CodeUnterminatedQuote
	CodeUnclosedContainer = tape.CodeUnclosedContainer
	CodeMissingValue      = tape.CodeMissingValue
	CodeMaxDepth          = tape.CodeMaxDepth
	CodeInvalidTape       = tape.CodeInvalidTape
	CodeSinkError         = "sink_error"
	CodeDecompress        = "decompress_error"
	CodeTruncated         = "truncated"
	CodeWriterFinished    = "writer_finished"
	CodeUnkeyedOperator   = "unkeyed_operator"
)

// Error is a failure surfaced by parsing, loading or writing.
type Error struct {
	Code   string // One of the codes listed above.
	Offset int64  // Byte offset in the input (-1 when unknown).
	Detail string // Optional: context appended to the translated message.
	Cause  error  // Optional: underlying error.
}

// Error returns the localized message for Code. Causes are not included; use
// ErrorChain for the full chain.
func (e *Error) Error() string {
	var data map[string]string
	if e.Detail != "" {
		data = map[string]string{"detail": e.Detail}
	}
	msg := i18n.T(e.Code, data)
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// ErrWriterFinished is returned by Writer calls made after Finish.
var ErrWriterFinished = &Error{Code: CodeWriterFinished, Offset: -1}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ErrorChain flattens err and its causes into one line, joining each cause
// with ". Caused by: ".
func ErrorChain(err error) string {
	if err == nil {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString(err.Error())
	for {
		e, ok := err.(*Error)
		if !ok || e.Cause == nil {
			break
		}
		err = e.Cause
		b.WriteString(". Caused by: ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// fromSyntax converts a tokenizer failure into the public error chain.
func fromSyntax(err error) error {
	var se *tape.SyntaxError
	if !errors.As(err, &se) {
		return &Error{Code: CodeParseError, Offset: -1, Cause: err}
	}
	cause := &Error{Code: se.Code, Offset: int64(se.Offset), Detail: se.Msg}
	return &Error{Code: CodeParseError, Offset: -1, Detail: "failed to tokenize document", Cause: cause}
}
