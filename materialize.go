package pdxtext

import (
	"github.com/reoring/pdxtext/internal/scalar"
	"github.com/reoring/pdxtext/internal/tape"
	"github.com/reoring/pdxtext/internal/textenc"
)

// RemainderKey names the field that collects values trailing the last key
// of an object.
const RemainderKey = "remainder"

// reader materializes tape tokens. Recursion depth is bounded by the
// tokenizer's nesting limit.
type reader struct {
	t      *tape.Tape
	enc    Encoding
	narrow TypeNarrowing
}

// text decodes the bytes of token i.
func (r reader) text(i int) string {
	return textenc.Decode(r.enc, r.t.Bytes(i), r.t.Token(i).Kind == tape.KindQuoted)
}

// key renders a key token; parameters become "[name]" or "[!name]".
func (r reader) key(i int) string {
	switch r.t.Token(i).Kind {
	case tape.KindParameter:
		return parameterText(r.text(i), true)
	case tape.KindUndefinedParameter:
		return parameterText(r.text(i), false)
	}
	return r.text(i)
}

func (r reader) coerce(i int) scalar.Result {
	if r.narrow == NarrowNone || (r.narrow == NarrowUnquoted && r.t.Token(i).Kind == tape.KindQuoted) {
		return scalar.Result{}
	}
	return scalar.Classify(r.t.Bytes(i))
}

func (r reader) scalar(i int) Value {
	res := r.coerce(i)
	switch res.Kind {
	case scalar.KindBool:
		return BoolValue(res.Bool)
	case scalar.KindInt:
		return IntValue(res.Int)
	case scalar.KindUint:
		return UintValue(res.Uint)
	case scalar.KindFloat:
		return FloatValue(res.Float)
	case scalar.KindDate:
		return DateValue(res.Date)
	}
	return StringValue(r.text(i))
}

func (r reader) value(i int) Value {
	switch tok := r.t.Token(i); tok.Kind {
	case tape.KindUnquoted, tape.KindQuoted:
		return r.scalar(i)
	case tape.KindArray:
		if r.t.IsEmpty(i) {
			return ObjectValue(NewObject())
		}
		elems := r.t.Elems(i)
		out := make([]Value, len(elems))
		for j, e := range elems {
			out[j] = r.value(e)
		}
		return ArrayValue(out...)
	case tape.KindObject, tape.KindHiddenObject:
		return ObjectValue(r.object(i))
	case tape.KindHeader:
		o := NewObject()
		o.Set(r.text(i), r.value(i+1))
		return ObjectValue(o)
	case tape.KindParameter:
		return ParameterValue(r.text(i), true)
	case tape.KindUndefinedParameter:
		return ParameterValue(r.text(i), false)
	}
	return Value{}
}

func (r reader) entry(e tape.Entry) Value {
	v := r.value(e.Value)
	if e.Op != tape.OpNone {
		return OperatorValue(e.Op, v)
	}
	return v
}

func (r reader) remainder(rest []int) Value {
	out := make([]Value, len(rest))
	for j, i := range rest {
		out[j] = r.value(i)
	}
	return ArrayValue(out...)
}

// field is one member of a grouped object: every entry whose key decodes to
// the same text, plus the remainder when the key is RemainderKey.
type field struct {
	key     string
	entries []tape.Entry
	rest    []int
}

// size reports how many values the field holds.
func (f field) size() int {
	if f.rest != nil {
		return len(f.entries) + 1
	}
	return len(f.entries)
}

// fields groups the members of container open by key. Keys whose bytes
// differ but decode to the same text share one field, and the remainder joins
// a real RemainderKey member when there is one.
func (r reader) fields(open int) []field {
	entries, rest := r.t.Fields(open)
	groups := r.t.GroupEntries(entries)

	out := make([]field, 0, len(groups)+1)
	at := make(map[string]int, len(groups)+1)
	slot := func(key string) *field {
		i, ok := at[key]
		if !ok {
			i = len(out)
			at[key] = i
			out = append(out, field{key: key})
		}
		return &out[i]
	}
	for _, g := range groups {
		f := slot(r.key(g.Key))
		f.entries = append(f.entries, g.Entries...)
	}
	if len(rest) > 0 {
		slot(RemainderKey).rest = rest
	}
	return out
}

func (r reader) object(open int) *Object {
	o := NewObject()
	for _, f := range r.fields(open) {
		vs := make([]Value, 0, f.size())
		for _, e := range f.entries {
			vs = append(vs, r.entry(e))
		}
		if f.rest != nil {
			vs = append(vs, r.remainder(f.rest))
		}
		if len(vs) == 1 {
			o.Set(f.key, vs[0])
		} else {
			o.Set(f.key, ArrayValue(vs...))
		}
	}
	return o
}
