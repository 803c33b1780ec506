package pdxtext

import (
	"github.com/reoring/pdxtext/codec"
)

// Native converts v into plain Go values: map[string]any, []any, bool,
// int64, uint64, float64, time.Time for dates, and string. Operators become
// single entry maps such as {"LESS_THAN": 5}; parameters become "[name]".
// Null converts to nil.
func (v Value) Native() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindDate:
		t, err := codec.DateTime().Decode(v.d)
		if err != nil {
			return v.d.String()
		}
		return t
	case KindString:
		return v.s
	case KindParameter:
		return parameterText(v.s, v.b)
	case KindOperator:
		return map[string]any{v.op.Name(): v.operand.Native()}
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Native()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, f := range v.obj.Fields() {
			out[f.Key] = f.Value.Native()
		}
		return out
	}
	return nil
}
