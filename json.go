package pdxtext

import (
	"bytes"
	"math"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/pdxtext/codec"
	"github.com/reoring/pdxtext/internal/scalar"
	"github.com/reoring/pdxtext/internal/tape"
)

// maxSafeInteger is the largest integer every JSON consumer reads exactly.
const maxSafeInteger = 1 << 53

// JSON renders the document straight from the token stream. Integers beyond
// ±2^53 are rendered as strings so that float based JSON readers keep every
// digit.
func (d *Document) JSON(opts ...JSONOpt) ([]byte, error) {
	var opt JSONOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	w := &jsonWriter{
		r:     reader{t: d.tape, enc: d.enc, narrow: d.narrow},
		mode:  opt.Mode,
		dates: opt.Dates,
		buf:   make([]byte, 0, len(d.tape.Data())),
	}
	if err := w.object(tape.Root); err != nil {
		return nil, err
	}
	if !opt.Pretty {
		return w.buf, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, w.buf, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

type jsonWriter struct {
	r     reader
	mode  DuplicateKeyMode
	dates DateFormat
	buf   []byte
}

func (w *jsonWriter) object(open int) error {
	if w.mode == DuplicateGroup {
		return w.groupedObject(open)
	}
	entries, rest := w.r.t.Fields(open)
	if w.mode == DuplicateTyped {
		return w.typedObject(entries, rest)
	}
	w.buf = append(w.buf, '{')
	for i, e := range entries {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		if err := w.member(w.r.key(e.Key), e); err != nil {
			return err
		}
	}
	return w.closeObject(len(entries) > 0, rest)
}

// groupedObject renders the fields the materializer would build, so that the
// JSON and the Value tree agree on duplicate and remainder handling.
func (w *jsonWriter) groupedObject(open int) error {
	w.buf = append(w.buf, '{')
	for i, f := range w.r.fields(open) {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		w.buf = appendString(w.buf, f.key)
		w.buf = append(w.buf, ':')
		many := f.size() > 1
		if many {
			w.buf = append(w.buf, '[')
		}
		for j, e := range f.entries {
			if j > 0 {
				w.buf = append(w.buf, ',')
			}
			if err := w.entry(e); err != nil {
				return err
			}
		}
		if f.rest != nil {
			if len(f.entries) > 0 {
				w.buf = append(w.buf, ',')
			}
			if err := w.list(f.rest); err != nil {
				return err
			}
		}
		if many {
			w.buf = append(w.buf, ']')
		}
	}
	w.buf = append(w.buf, '}')
	return nil
}

// closeObject writes the remainder member, if any, and the closing brace.
// Preserve mode keeps it apart from a real remainder key.
func (w *jsonWriter) closeObject(comma bool, rest []int) error {
	if len(rest) > 0 {
		if comma {
			w.buf = append(w.buf, ',')
		}
		w.buf = appendString(w.buf, RemainderKey)
		w.buf = append(w.buf, ':')
		if err := w.list(rest); err != nil {
			return err
		}
	}
	w.buf = append(w.buf, '}')
	return nil
}

func (w *jsonWriter) typedObject(entries []tape.Entry, rest []int) error {
	w.buf = append(w.buf, `{"type":"obj","val":[`...)
	for i, e := range entries {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		w.buf = append(w.buf, '[')
		w.buf = appendString(w.buf, w.r.key(e.Key))
		w.buf = append(w.buf, ',')
		if err := w.entry(e); err != nil {
			return err
		}
		w.buf = append(w.buf, ']')
	}
	if len(rest) > 0 {
		if len(entries) > 0 {
			w.buf = append(w.buf, ',')
		}
		if err := w.list(rest); err != nil {
			return err
		}
	}
	w.buf = append(w.buf, "]}"...)
	return nil
}

func (w *jsonWriter) member(key string, e tape.Entry) error {
	w.buf = appendString(w.buf, key)
	w.buf = append(w.buf, ':')
	return w.entry(e)
}

func (w *jsonWriter) entry(e tape.Entry) error {
	if e.Op == tape.OpNone {
		return w.value(e.Value)
	}
	w.buf = append(w.buf, '{')
	w.buf = appendString(w.buf, e.Op.Name())
	w.buf = append(w.buf, ':')
	if err := w.value(e.Value); err != nil {
		return err
	}
	w.buf = append(w.buf, '}')
	return nil
}

// list renders token values as a plain JSON array.
func (w *jsonWriter) list(idx []int) error {
	w.buf = append(w.buf, '[')
	for j, i := range idx {
		if j > 0 {
			w.buf = append(w.buf, ',')
		}
		if err := w.value(i); err != nil {
			return err
		}
	}
	w.buf = append(w.buf, ']')
	return nil
}

func (w *jsonWriter) value(i int) error {
	switch tok := w.r.t.Token(i); tok.Kind {
	case tape.KindUnquoted, tape.KindQuoted:
		return w.scalar(i)
	case tape.KindArray:
		if w.r.t.IsEmpty(i) {
			if w.mode == DuplicateTyped {
				w.buf = append(w.buf, `{"type":"obj","val":[]}`...)
			} else {
				w.buf = append(w.buf, '{', '}')
			}
			return nil
		}
		if w.mode != DuplicateTyped {
			return w.list(w.r.t.Elems(i))
		}
		w.buf = append(w.buf, `{"type":"array","val":`...)
		if err := w.list(w.r.t.Elems(i)); err != nil {
			return err
		}
		w.buf = append(w.buf, '}')
	case tape.KindObject, tape.KindHiddenObject:
		return w.object(i)
	case tape.KindHeader:
		w.buf = append(w.buf, '{')
		w.buf = appendString(w.buf, w.r.text(i))
		w.buf = append(w.buf, ':')
		if err := w.value(i + 1); err != nil {
			return err
		}
		w.buf = append(w.buf, '}')
	case tape.KindParameter, tape.KindUndefinedParameter:
		w.buf = appendString(w.buf, w.r.key(i))
	default:
		w.buf = append(w.buf, "null"...)
	}
	return nil
}

func (w *jsonWriter) scalar(i int) error {
	res := w.r.coerce(i)
	switch res.Kind {
	case scalar.KindBool:
		w.buf = strconv.AppendBool(w.buf, res.Bool)
		return nil
	case scalar.KindInt:
		if res.Int >= -maxSafeInteger && res.Int <= maxSafeInteger {
			w.buf = strconv.AppendInt(w.buf, res.Int, 10)
			return nil
		}
	case scalar.KindUint:
		if res.Uint <= maxSafeInteger {
			w.buf = strconv.AppendUint(w.buf, res.Uint, 10)
			return nil
		}
	case scalar.KindFloat:
		return w.float(res.Float)
	case scalar.KindDate:
		if w.dates == DateRFC3339 {
			s, err := codec.DateRFC3339().Encode(res.Date)
			if err != nil {
				return err
			}
			w.buf = appendString(w.buf, s)
			return nil
		}
	}
	w.buf = appendString(w.buf, w.r.text(i))
	return nil
}

func (w *jsonWriter) float(f float64) error {
	b, err := appendFloat(w.buf, f)
	if err != nil {
		return err
	}
	w.buf = b
	return nil
}

func appendFloat(dst []byte, f float64) ([]byte, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return append(dst, "null"...), nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}

func appendString(dst []byte, s string) []byte {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		// strings always marshal; keep the output well-formed regardless
		return strconv.AppendQuote(dst, s)
	}
	return append(dst, b...)
}

// MarshalJSON renders a materialized value. Objects keep field order, dates
// use their game form and operators become {"LESS_THAN": value} style
// objects.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendValueJSON(nil, v)
}

func appendValueJSON(dst []byte, v Value) ([]byte, error) {
	var err error
	switch v.kind {
	case KindBool:
		return strconv.AppendBool(dst, v.b), nil
	case KindInt:
		return strconv.AppendInt(dst, v.i, 10), nil
	case KindUint:
		return strconv.AppendUint(dst, v.u, 10), nil
	case KindFloat:
		return appendFloat(dst, v.f)
	case KindDate:
		return appendString(dst, v.d.String()), nil
	case KindString:
		return appendString(dst, v.s), nil
	case KindParameter:
		return appendString(dst, parameterText(v.s, v.b)), nil
	case KindOperator:
		dst = append(dst, '{')
		dst = appendString(dst, v.op.Name())
		dst = append(dst, ':')
		if dst, err = appendValueJSON(dst, *v.operand); err != nil {
			return nil, err
		}
		return append(dst, '}'), nil
	case KindArray:
		dst = append(dst, '[')
		for i, e := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			if dst, err = appendValueJSON(dst, e); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case KindObject:
		dst = append(dst, '{')
		for i, f := range v.obj.Fields() {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, f.Key)
			dst = append(dst, ':')
			if dst, err = appendValueJSON(dst, f.Value); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return append(dst, "null"...), nil
}

// parameterText renders a parameter reference as "[name]" or "[!name]".
func parameterText(name string, defined bool) string {
	if defined {
		return "[" + name + "]"
	}
	return "[!" + name + "]"
}
