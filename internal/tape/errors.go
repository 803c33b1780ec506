package tape

import "fmt"

// Syntax error codes. They match the codes exposed by the root package.
const (
	CodeUnterminatedQuote = "unterminated_quote"
	CodeUnclosedContainer = "unclosed_container"
	CodeMissingValue      = "missing_value"
	CodeMaxDepth          = "max_depth"
	CodeInvalidTape       = "invalid_tape"
	CodeParseError        = "parse_error"
)

// SyntaxError reports a tokenization failure at a byte offset (-1 when the
// failure is not tied to a position).
type SyntaxError struct {
	Code   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Code
	}
	if e.Offset < 0 {
		return msg
	}
	return fmt.Sprintf("%s at offset %d", msg, e.Offset)
}
