package tape

// DefaultMaxDepth bounds container nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

// Options controls tokenization.
type Options struct {
	// MaxDepth limits container nesting. Zero selects DefaultMaxDepth and a
	// negative value disables the limit.
	MaxDepth int
}

type mode uint8

const (
	modeObject  mode = iota // expecting a key
	modeArray               // expecting a value
	modePending             // container opened, kind not decided yet
	modeHidden              // undelimited object inside an array
	modeTrailer             // values that follow the last key of an object
)

type frame struct {
	mode   mode
	open   int
	closer byte // '}' or ']' (parameter bodies); 0 at the top level
}

type scanner struct {
	data  []byte
	pos   int
	toks  []Token
	stack []frame
	max   int
}

// Parse tokenizes data into a tape and checks its container pairing. The
// tape keeps references into data.
func Parse(data []byte, opt Options) (*Tape, error) {
	s := &scanner{data: data, max: opt.MaxDepth}
	if s.max == 0 {
		s.max = DefaultMaxDepth
	}
	s.toks = make([]Token, 0, len(data)/6+1)
	s.stack = append(s.stack, frame{mode: modeObject, open: Root})
	if err := s.run(); err != nil {
		return nil, err
	}
	if err := Validate(data, s.toks); err != nil {
		return nil, err
	}
	return &Tape{data: data, toks: s.toks}, nil
}

func (s *scanner) run() error {
	for {
		s.skipSpace()
		f := s.stack[len(s.stack)-1]
		if s.pos >= len(s.data) {
			if len(s.stack) == 1 {
				return nil
			}
			if f.closer == 0 {
				s.close()
				continue
			}
			return s.errAt(CodeUnclosedContainer, len(s.data))
		}
		c := s.data[s.pos]
		if f.closer != 0 && c == f.closer {
			if f.mode != modeTrailer && f.mode != modeHidden {
				s.pos++
			}
			s.close()
			continue
		}
		if c == '}' {
			// unmatched closing brace
			s.pos++
			continue
		}
		var err error
		switch f.mode {
		case modeObject:
			err = s.objectItem(f.closer)
		case modeArray, modeTrailer:
			err = s.arrayItem(f.closer)
		case modeHidden:
			err = s.hiddenItem()
		case modePending:
			err = s.decide()
		}
		if err != nil {
			return err
		}
	}
}

func (s *scanner) objectItem(closer byte) error {
	switch {
	case s.data[s.pos] == '{':
		if s.skipEmpty() {
			return nil
		}
		return s.push(modeTrailer, closer, KindArray)
	case s.isParameter():
		return s.parameter()
	}
	start := s.pos
	key, err := s.scalar()
	if err != nil {
		return err
	}
	op, ok := s.operator()
	if !ok {
		s.pos = start
		return s.push(modeTrailer, closer, KindArray)
	}
	s.appendKey(key, op)
	return s.value()
}

func (s *scanner) arrayItem(closer byte) error {
	switch {
	case s.data[s.pos] == '{':
		s.pos++
		return s.push(modePending, '}', KindArray)
	case s.isParameter():
		// a parameter block among values opens an undelimited object
		if err := s.push(modeHidden, closer, KindHiddenObject); err != nil {
			return err
		}
		return s.parameter()
	}
	start := s.pos
	tok, err := s.scalar()
	if err != nil {
		return err
	}
	if _, ok := s.operator(); ok {
		s.pos = start
		return s.push(modeHidden, closer, KindHiddenObject)
	}
	s.toks = append(s.toks, tok)
	return nil
}

func (s *scanner) hiddenItem() error {
	if s.isParameter() {
		return s.parameter()
	}
	if s.data[s.pos] == '{' {
		return s.closeHidden()
	}
	start := s.pos
	key, err := s.scalar()
	if err != nil {
		return err
	}
	op, ok := s.operator()
	if !ok {
		s.pos = start
		return s.closeHidden()
	}
	s.appendKey(key, op)
	return s.value()
}

// closeHidden ends an undelimited object. An object that never received a
// member would be reopened at the same position, so it is rejected.
func (s *scanner) closeHidden() error {
	if f := s.stack[len(s.stack)-1]; len(s.toks) == f.open+1 {
		return &SyntaxError{Code: CodeParseError, Offset: s.pos, Msg: "empty undelimited object"}
	}
	s.close()
	return nil
}

// decide fixes the kind of a freshly opened container from its first member.
func (s *scanner) decide() error {
	f := &s.stack[len(s.stack)-1]
	switch {
	case s.data[s.pos] == '{':
		f.mode = modeArray
		return nil
	case s.isParameter():
		f.mode = modeObject
		s.toks[f.open].Kind = KindObject
		return nil
	}
	start := s.pos
	if _, err := s.scalar(); err != nil {
		return err
	}
	_, ok := s.operator()
	s.pos = start
	if ok {
		f.mode = modeObject
		s.toks[f.open].Kind = KindObject
	} else {
		f.mode = modeArray
	}
	return nil
}

func (s *scanner) value() error {
	s.skipSpace()
	if s.pos >= len(s.data) {
		return s.errAt(CodeMissingValue, s.pos)
	}
	c := s.data[s.pos]
	switch {
	case c == '{':
		s.pos++
		return s.push(modePending, '}', KindArray)
	case c == '}' || c == s.closer():
		return s.errAt(CodeMissingValue, s.pos)
	}
	tok, err := s.scalar()
	if err != nil {
		return err
	}
	if tok.Kind == KindUnquoted && s.headerAhead(tok) {
		s.toks = append(s.toks, Token{Kind: KindHeader, Lo: tok.Lo, Hi: tok.Hi})
		s.pos++
		return s.push(modePending, '}', KindArray)
	}
	s.toks = append(s.toks, tok)
	return nil
}

// headerAhead reports whether an unquoted value is a header name such as the
// rgb in "color = rgb { 1 2 3 }". On success pos is left on the brace.
func (s *scanner) headerAhead(tok Token) bool {
	if !isIdentStart(s.data[tok.Lo]) {
		return false
	}
	j := s.spaceEnd(s.pos, false)
	if j >= len(s.data) || s.data[j] != '{' {
		return false
	}
	k := s.spaceEnd(j+1, true)
	if k >= len(s.data) || s.data[k] == '}' {
		return false
	}
	s.pos = j
	return true
}

func (s *scanner) isParameter() bool {
	return s.data[s.pos] == '[' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '['
}

// parameter reads a "[[name] body]" definition in key position.
func (s *scanner) parameter() error {
	start := s.pos
	s.pos += 2
	kind := KindParameter
	if s.pos < len(s.data) && s.data[s.pos] == '!' {
		kind = KindUndefinedParameter
		s.pos++
	}
	lo := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != ']' {
		if c := s.data[s.pos]; isSpace(c) || c == '{' || c == '}' {
			return &SyntaxError{Code: CodeParseError, Offset: start, Msg: "malformed parameter name"}
		}
		s.pos++
	}
	if s.pos >= len(s.data) {
		return &SyntaxError{Code: CodeParseError, Offset: start, Msg: "unterminated parameter"}
	}
	s.toks = append(s.toks, Token{Kind: kind, Lo: lo, Hi: s.pos})
	s.pos++
	return s.push(modePending, ']', KindArray)
}

func (s *scanner) appendKey(key Token, op Operator) {
	s.toks = append(s.toks, key)
	if op != OpNone {
		s.toks = append(s.toks, Token{Kind: KindOperator, Op: op})
	}
}

// operator consumes an assignment or relational operator that follows the
// current position. Plain assignment reports OpNone with ok set.
func (s *scanner) operator() (Operator, bool) {
	save := s.pos
	s.skipSpace()
	if s.pos >= len(s.data) {
		s.pos = save
		return OpNone, false
	}
	var next byte
	if s.pos+1 < len(s.data) {
		next = s.data[s.pos+1]
	}
	switch s.data[s.pos] {
	case '=':
		if next == '=' {
			s.pos += 2
			return OpEqual, true
		}
		s.pos++
		return OpNone, true
	case '<':
		if next == '=' {
			s.pos += 2
			return OpLessEqual, true
		}
		s.pos++
		return OpLess, true
	case '>':
		if next == '=' {
			s.pos += 2
			return OpGreaterEqual, true
		}
		s.pos++
		return OpGreater, true
	}
	s.pos = save
	return OpNone, false
}

// scalar reads a quoted or unquoted scalar at pos.
func (s *scanner) scalar() (Token, error) {
	if s.data[s.pos] == '"' {
		start := s.pos + 1
		for i := start; i < len(s.data); i++ {
			switch s.data[i] {
			case '\\':
				i++
			case '"':
				s.pos = i + 1
				return Token{Kind: KindQuoted, Lo: start, Hi: i}, nil
			}
		}
		return Token{}, s.errAt(CodeUnterminatedQuote, start-1)
	}
	start := s.pos
	closer := s.closer()
	for s.pos < len(s.data) && !isBoundary(s.data[s.pos], closer) {
		s.pos++
	}
	if s.pos == start {
		// a lone operator byte where a scalar is expected, as in "==x"
		s.pos++
	}
	return Token{Kind: KindUnquoted, Lo: start, Hi: s.pos}, nil
}

func (s *scanner) push(m mode, closer byte, kind Kind) error {
	if s.max > 0 && len(s.stack) > s.max {
		return s.errAt(CodeMaxDepth, s.pos)
	}
	s.stack = append(s.stack, frame{mode: m, open: len(s.toks), closer: closer})
	s.toks = append(s.toks, Token{Kind: kind})
	return nil
}

func (s *scanner) close() {
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	end := len(s.toks)
	// "[[name] value]" holds a bare scalar rather than a container
	if f.closer == ']' && (f.mode == modeArray || f.mode == modePending) &&
		end == f.open+2 && s.toks[f.open+1].Kind.IsScalar() {
		s.toks[f.open] = s.toks[f.open+1]
		s.toks = s.toks[:f.open+1]
		return
	}
	s.toks[f.open].Pair = end
	s.toks = append(s.toks, Token{Kind: KindEnd, Pair: f.open})
}

// closer returns the byte that ends the innermost frame.
func (s *scanner) closer() byte { return s.stack[len(s.stack)-1].closer }

// skipEmpty consumes an empty "{ }" at pos.
func (s *scanner) skipEmpty() bool {
	j := s.spaceEnd(s.pos+1, true)
	if j < len(s.data) && s.data[j] == '}' {
		s.pos = j + 1
		return true
	}
	return false
}

func (s *scanner) skipSpace() { s.pos = s.spaceEnd(s.pos, true) }

// spaceEnd returns the first index at or after i that is not whitespace
// (or part of a comment when comments is set).
func (s *scanner) spaceEnd(i int, comments bool) int {
	for i < len(s.data) {
		c := s.data[i]
		switch {
		case isSpace(c):
			i++
		case c == '#' && comments:
			for i < len(s.data) && s.data[i] != '\n' {
				i++
			}
		default:
			return i
		}
	}
	return i
}

func (s *scanner) errAt(code string, off int) error {
	return &SyntaxError{Code: code, Offset: off}
}

func isSpace(c byte) bool { return c <= ' ' }

func isBoundary(c, closer byte) bool {
	switch c {
	case '{', '}', '=', '<', '>', '#', '"':
		return true
	case ']':
		return closer == ']'
	}
	return isSpace(c)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
