package pdxtext

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
)

type frameKind uint8

const (
	frameRoot frameKind = iota
	frameObject
	frameArray
	frameHidden
)

type writeFrame struct {
	kind   frameKind
	depth  int // braces enclosing the members
	n      int // items written, keys and values alike
	mixed  bool
	glue   bool   // an operator was just written
	header bool   // a header was just written; its container follows directly
	lead   string // separator owed before the first key of a hidden object
}

// WriterOpt configures a Writer.
type WriterOpt struct {
	// Encoding is applied by WriteValue to text taken from a value tree.
	// Bytes passed to WriteQuoted and friends are written as is.
	Encoding Encoding
}

// Writer emits the text grammar from discrete calls. Calls must balance
// every container start with exactly one WriteEnd; nesting is not
// validated. A Writer is not safe for concurrent use.
type Writer struct {
	sink    io.Writer
	bw      *bufio.Writer // nil when writing to the internal buffer
	buf     *bytes.Buffer
	enc     Encoding
	stack   []writeFrame
	scratch []byte
	err     error
	done    bool
}

// NewWriter returns a Writer that streams to w. Output is buffered until
// Finish.
func NewWriter(w io.Writer, opts ...WriterOpt) *Writer {
	bw := bufio.NewWriter(w)
	return newWriter(bw, bw, nil, opts)
}

// NewBufferWriter returns a Writer whose output is returned by Finish.
func NewBufferWriter(opts ...WriterOpt) *Writer {
	buf := &bytes.Buffer{}
	return newWriter(buf, nil, buf, opts)
}

func newWriter(sink io.Writer, bw *bufio.Writer, buf *bytes.Buffer, opts []WriterOpt) *Writer {
	var opt WriterOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return &Writer{
		sink:    sink,
		bw:      bw,
		buf:     buf,
		enc:     opt.Encoding,
		stack:   []writeFrame{{kind: frameRoot}},
		scratch: make([]byte, 0, 64),
	}
}

// Encoding reports the encoding WriteValue applies to text.
func (w *Writer) Encoding() Encoding { return w.enc }

func (w *Writer) top() *writeFrame { return &w.stack[len(w.stack)-1] }

// begin writes the separator owed before the next item of the innermost
// container and counts the item.
func (w *Writer) begin() {
	f := w.top()
	if f.header {
		f.header = false
		return
	}
	switch {
	case f.glue:
		f.glue = false
	case f.mixed || f.kind == frameArray:
		switch {
		case f.n > 0:
			w.scratch = append(w.scratch, ' ')
		case f.kind != frameRoot:
			w.newline(f.depth)
		}
	case f.n%2 == 1:
		w.scratch = append(w.scratch, '=')
	case f.kind == frameRoot:
		if f.n > 0 {
			w.scratch = append(w.scratch, '\n')
		}
	case f.kind == frameHidden:
		if f.n == 0 {
			w.scratch = append(w.scratch, f.lead...)
		} else {
			w.scratch = append(w.scratch, ' ')
		}
	default:
		w.newline(f.depth)
	}
	f.n++
}

func (w *Writer) newline(depth int) {
	w.scratch = append(w.scratch, '\n')
	for i := 0; i < depth; i++ {
		w.scratch = append(w.scratch, ' ', ' ')
	}
}

func (w *Writer) check() error {
	if w.done {
		return ErrWriterFinished
	}
	return w.err
}

// flush hands the scratch bytes to the sink. The first sink error sticks.
func (w *Writer) flush() error {
	if len(w.scratch) == 0 {
		return nil
	}
	_, err := w.sink.Write(w.scratch)
	w.scratch = w.scratch[:0]
	if err != nil {
		w.err = &Error{Code: CodeSinkError, Offset: -1, Cause: err}
	}
	return w.err
}

func (w *Writer) item(b []byte) error {
	if err := w.check(); err != nil {
		return err
	}
	w.begin()
	w.scratch = append(w.scratch, b...)
	return w.flush()
}

func (w *Writer) open(kind frameKind) error {
	if err := w.check(); err != nil {
		return err
	}
	depth := w.top().depth
	w.begin()
	w.scratch = append(w.scratch, '{')
	w.stack = append(w.stack, writeFrame{kind: kind, depth: depth + 1})
	return w.flush()
}

// WriteObjectStart opens a braced object.
func (w *Writer) WriteObjectStart() error { return w.open(frameObject) }

// WriteArrayStart opens a braced array.
func (w *Writer) WriteArrayStart() error { return w.open(frameArray) }

// WriteHiddenObjectStart opens an object without braces inside an array:
// its pairs follow the preceding elements on the same line.
func (w *Writer) WriteHiddenObjectStart() error {
	if err := w.check(); err != nil {
		return err
	}
	parent := w.top()
	mark := len(w.scratch)
	w.begin()
	lead := string(w.scratch[mark:])
	w.scratch = w.scratch[:mark]
	w.stack = append(w.stack, writeFrame{kind: frameHidden, depth: parent.depth, lead: lead})
	return nil
}

// StartMixedMode switches the innermost container to space separated items
// where operators, including '=', join their neighbours.
func (w *Writer) StartMixedMode() error {
	if err := w.check(); err != nil {
		return err
	}
	w.top().mixed = true
	return nil
}

// WriteEnd closes the innermost container.
func (w *Writer) WriteEnd() error {
	if err := w.check(); err != nil {
		return err
	}
	if len(w.stack) == 1 {
		return nil
	}
	f := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if f.kind == frameHidden {
		return nil
	}
	if f.n > 0 {
		w.newline(f.depth - 1)
	}
	w.scratch = append(w.scratch, '}')
	return w.flush()
}

// WriteOperator writes a relational operator in place of the '=' that would
// separate a key from its value. In object context OpEqual renders as
// "=="; inside an array it switches to mixed mode and renders as '='.
func (w *Writer) WriteOperator(op Operator) error {
	if err := w.check(); err != nil {
		return err
	}
	f := w.top()
	if f.kind == frameArray {
		f.mixed = true
	}
	sym := op.Symbol()
	if f.mixed && op == OpEqual {
		sym = "="
	}
	w.scratch = append(w.scratch, sym...)
	f.glue = true
	return w.flush()
}

func (w *Writer) WriteBool(b bool) error {
	if b {
		return w.item([]byte("yes"))
	}
	return w.item([]byte("no"))
}

func (w *Writer) WriteI32(v int32) error { return w.WriteI64(int64(v)) }
func (w *Writer) WriteU32(v uint32) error { return w.WriteU64(uint64(v)) }

func (w *Writer) WriteI64(v int64) error {
	var b [24]byte
	return w.item(strconv.AppendInt(b[:0], v, 10))
}

func (w *Writer) WriteU64(v uint64) error {
	var b [24]byte
	return w.item(strconv.AppendUint(b[:0], v, 10))
}

func (w *Writer) WriteF32(v float32) error { return w.item(appendGameFloat(nil, float64(v), 32)) }
func (w *Writer) WriteF64(v float64) error { return w.item(appendGameFloat(nil, v, 64)) }

// appendGameFloat writes f in plain decimal notation, keeping a fractional
// part so the value reads back as a float.
func appendGameFloat(dst []byte, f float64, bits int) []byte {
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'f', -1, bits)
	if bytes.IndexByte(dst[start:], '.') < 0 {
		dst = append(dst, '.', '0')
	}
	return dst
}

// WriteQuoted writes b in double quotes, escaping '"' and '\'.
func (w *Writer) WriteQuoted(b []byte) error {
	out := make([]byte, 0, len(b)+2)
	out = append(out, '"')
	for _, c := range b {
		if c == '"' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	out = append(out, '"')
	return w.item(out)
}

func (w *Writer) WriteUnquoted(b []byte) error { return w.item(b) }

// WriteHeader writes the name of a header pair such as "rgb"; the container
// written next becomes its value.
func (w *Writer) WriteHeader(b []byte) error {
	if err := w.check(); err != nil {
		return err
	}
	w.begin()
	w.scratch = append(w.scratch, b...)
	w.scratch = append(w.scratch, ' ')
	w.top().header = true
	return w.flush()
}

// WriteDate writes d as Y.M.D, or Y.M.D.H when d carries an hour.
func (w *Writer) WriteDate(d Date) error {
	var b [32]byte
	return w.item(d.AppendText(b[:0]))
}

// Finish flushes buffered output and ends the Writer. For NewBufferWriter
// the accumulated output is returned; for NewWriter the bytes are nil. Only
// the first call succeeds.
func (w *Writer) Finish() ([]byte, error) {
	if w.done {
		return nil, ErrWriterFinished
	}
	w.done = true
	if w.err != nil {
		return nil, w.err
	}
	if w.bw != nil {
		if err := w.bw.Flush(); err != nil {
			w.err = &Error{Code: CodeSinkError, Offset: -1, Cause: err}
			return nil, w.err
		}
		return nil, nil
	}
	return w.buf.Bytes(), nil
}
