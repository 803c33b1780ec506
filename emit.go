package pdxtext

import (
	"github.com/reoring/pdxtext/internal/textenc"
)

// WriteValue re-emits a value tree through w. An object value given while w
// waits for a key at the top level, such as the result of Document.Root, is
// written as bare members; anything else is written as a single value.
//
// Repeated keys that were grouped into an array come back as one array
// valued field, except when an element carries an operator: such a group is
// written as repeated pairs so that each operator stays next to its key.
// Re-tokenizing the output with the same narrowing reproduces an equal tree.
// Null values are skipped. An operator value that is not held by a key, or
// by an array held by a key, fails with CodeUnkeyedOperator.
func WriteValue(w *Writer, v Value) error {
	if v.kind == KindObject && len(w.stack) == 1 && w.top().n%2 == 0 {
		return writeMembers(w, v.obj)
	}
	return writeItem(w, v)
}

func writeMembers(w *Writer, o *Object) error {
	for _, f := range o.Fields() {
		if err := writeField(w, f.Key, f.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeField(w *Writer, key string, v Value) error {
	switch {
	case v.kind == KindNull:
		return nil
	case v.kind == KindArray && anyOperator(v.arr):
		for _, e := range v.arr {
			if err := writeField(w, key, e); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeKey(w, key); err != nil {
		return err
	}
	if v.kind == KindOperator {
		if err := w.WriteOperator(v.op); err != nil {
			return err
		}
		return writeItem(w, *v.operand)
	}
	return writeItem(w, v)
}

func anyOperator(vs []Value) bool {
	for _, e := range vs {
		if e.kind == KindOperator {
			return true
		}
	}
	return false
}

func writeKey(w *Writer, key string) error {
	b := textenc.Encode(w.enc, key)
	if bareKey(b) {
		return w.WriteUnquoted(b)
	}
	return w.WriteQuoted(b)
}

// bareKey reports whether b reads back as the same key without quotes.
func bareKey(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == ':', c == '@', c == '-', c == '\'':
		case c >= 0x80:
		default:
			return false
		}
	}
	return true
}

func writeItem(w *Writer, v Value) error {
	switch v.kind {
	case KindBool:
		return w.WriteBool(v.b)
	case KindInt:
		return w.WriteI64(v.i)
	case KindUint:
		return w.WriteU64(v.u)
	case KindFloat:
		return w.WriteF64(v.f)
	case KindDate:
		return w.WriteDate(v.d)
	case KindString:
		return w.WriteQuoted(textenc.Encode(w.enc, v.s))
	case KindParameter:
		return w.WriteQuoted(textenc.Encode(w.enc, parameterText(v.s, v.b)))
	case KindOperator:
		return &Error{Code: CodeUnkeyedOperator, Offset: -1, Detail: v.op.Name()}
	case KindArray:
		if err := w.WriteArrayStart(); err != nil {
			return err
		}
		for _, e := range v.arr {
			if e.kind == KindNull {
				continue
			}
			if err := writeItem(w, e); err != nil {
				return err
			}
		}
		return w.WriteEnd()
	case KindObject:
		if err := w.WriteObjectStart(); err != nil {
			return err
		}
		if err := writeMembers(w, v.obj); err != nil {
			return err
		}
		return w.WriteEnd()
	}
	return nil
}
