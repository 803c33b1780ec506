package tape

import "fmt"

// Kind represents the kind of a tape token.
type Kind uint8

const (
	KindUnquoted Kind = iota
	KindQuoted
	KindArray
	KindObject
	KindHiddenObject
	KindHeader
	KindOperator
	KindEnd
	KindParameter
	KindUndefinedParameter
)

var kindNames = [...]string{
	KindUnquoted:           "unquoted",
	KindQuoted:             "quoted",
	KindArray:              "array",
	KindObject:             "object",
	KindHiddenObject:       "hidden_object",
	KindHeader:             "header",
	KindOperator:           "operator",
	KindEnd:                "end",
	KindParameter:          "parameter",
	KindUndefinedParameter: "undefined_parameter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsContainer reports whether tokens of this kind are closed by an End token.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject || k == KindHiddenObject
}

// IsScalar reports whether the kind carries scalar bytes.
func (k Kind) IsScalar() bool { return k == KindUnquoted || k == KindQuoted }

// IsKey reports whether a token of this kind may open an object member.
func (k Kind) IsKey() bool {
	return k == KindUnquoted || k == KindQuoted || k == KindParameter || k == KindUndefinedParameter
}

// Operator is a relational qualifier placed between a key and its value.
type Operator uint8

const (
	OpNone Operator = iota
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
)

// Symbol returns the operator as written in object context.
func (o Operator) Symbol() string {
	switch o {
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpEqual:
		return "=="
	}
	return ""
}

// Name returns the canonical upper-case operator name.
func (o Operator) Name() string {
	switch o {
	case OpLess:
		return "LESS_THAN"
	case OpLessEqual:
		return "LESS_THAN_EQUAL"
	case OpGreater:
		return "GREATER_THAN"
	case OpGreaterEqual:
		return "GREATER_THAN_EQUAL"
	case OpEqual:
		return "EQUAL"
	}
	return ""
}

func (o Operator) String() string { return o.Name() }

// Token is a single entry of the tape. Pair links a container opener and its
// End token in both directions. Lo and Hi delimit the token bytes for scalars,
// headers and parameters (quotes and brackets excluded).
type Token struct {
	Kind Kind
	Op   Operator
	Pair int
	Lo   int
	Hi   int
}

// Root addresses the implicit top-level object of a tape.
const Root = -1

// Tape is the ordered token stream of one document. Tokens only reference the
// data buffer, which must not be modified while the tape is in use.
type Tape struct {
	data []byte
	toks []Token
}

func (t *Tape) Data() []byte      { return t.data }
func (t *Tape) Tokens() []Token   { return t.toks }
func (t *Tape) Len() int          { return len(t.toks) }
func (t *Tape) Token(i int) Token { return t.toks[i] }

// Bytes returns the byte span of token i.
func (t *Tape) Bytes(i int) []byte {
	tok := t.toks[i]
	return t.data[tok.Lo:tok.Hi]
}

// Validate checks that every container is paired with an End in LIFO order
// and that spans stay inside data.
func Validate(data []byte, toks []Token) error {
	var stack []int
	for i, tok := range toks {
		switch {
		case tok.Kind.IsContainer():
			if tok.Pair <= i || tok.Pair >= len(toks) {
				return &SyntaxError{Code: CodeInvalidTape, Offset: -1, Msg: fmt.Sprintf("token %d: container end index %d out of range", i, tok.Pair)}
			}
			stack = append(stack, i)
		case tok.Kind == KindEnd:
			n := len(stack)
			if n == 0 || stack[n-1] != tok.Pair || toks[tok.Pair].Pair != i {
				return &SyntaxError{Code: CodeInvalidTape, Offset: -1, Msg: fmt.Sprintf("token %d: unbalanced end", i)}
			}
			stack = stack[:n-1]
		case tok.Kind == KindHeader:
			if i+1 >= len(toks) || !toks[i+1].Kind.IsContainer() {
				return &SyntaxError{Code: CodeInvalidTape, Offset: -1, Msg: fmt.Sprintf("token %d: header without container", i)}
			}
		}
		if tok.Kind != KindEnd && !tok.Kind.IsContainer() && tok.Kind != KindOperator {
			if tok.Lo < 0 || tok.Hi < tok.Lo || tok.Hi > len(data) {
				return &SyntaxError{Code: CodeInvalidTape, Offset: -1, Msg: fmt.Sprintf("token %d: span out of range", i)}
			}
		}
	}
	if len(stack) > 0 {
		return &SyntaxError{Code: CodeInvalidTape, Offset: -1, Msg: fmt.Sprintf("token %d: container never closed", stack[len(stack)-1])}
	}
	return nil
}

// bounds returns the half-open token range of the members of container open.
func (t *Tape) bounds(open int) (int, int) {
	if open == Root {
		return 0, len(t.toks)
	}
	return open + 1, t.toks[open].Pair
}

// Next returns the index following the value that starts at i.
func (t *Tape) Next(i int) int {
	switch tok := t.toks[i]; {
	case tok.Kind.IsContainer():
		return tok.Pair + 1
	case tok.Kind == KindHeader && i+1 < len(t.toks):
		return t.Next(i + 1)
	}
	return i + 1
}

// IsEmpty reports whether container open has no members.
func (t *Tape) IsEmpty(open int) bool {
	lo, hi := t.bounds(open)
	return lo == hi
}

// Entry is one key/value member of an object-like container. Value points at
// a Header token when the member holds a header pair.
type Entry struct {
	Key   int
	Op    Operator
	Value int
}

// Fields splits the members of container open into key/value entries and a
// remainder. The remainder starts at the first member that cannot be read as
// a key followed by a value; a single trailing array produced by the
// tokenizer is flattened into its elements.
func (t *Tape) Fields(open int) (entries []Entry, rest []int) {
	lo, hi := t.bounds(open)
	i := lo
	for i < hi {
		tok := t.toks[i]
		if !tok.Kind.IsKey() {
			break
		}
		e := Entry{Key: i}
		j := i + 1
		if j < hi && t.toks[j].Kind == KindOperator {
			e.Op = t.toks[j].Op
			j++
		}
		if j >= hi {
			break
		}
		e.Value = j
		entries = append(entries, e)
		i = t.Next(j)
	}
	for j := i; j < hi; j = t.Next(j) {
		if t.toks[j].Kind == KindOperator {
			continue
		}
		rest = append(rest, j)
	}
	if len(rest) == 1 && t.toks[rest[0]].Kind == KindArray {
		rest = t.Elems(rest[0])
	}
	return entries, rest
}

// Elems returns the value token indices of array container open.
func (t *Tape) Elems(open int) []int {
	lo, hi := t.bounds(open)
	var out []int
	for i := lo; i < hi; i = t.Next(i) {
		if t.toks[i].Kind == KindOperator {
			continue
		}
		out = append(out, i)
	}
	return out
}
