package pdxtext

import (
	"strings"

	"github.com/reoring/pdxtext/internal/tape"
)

// segmentUnescaper undoes JSON Pointer escaping ('~1' -> '/', '~0' -> '~').
var segmentUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// At resolves a slash separated path such as "/countries/ENG/prestige"
// against the token stream without materializing the document.
//
// Intermediate segments descend into the first matching key, which must hold
// an object (a header value counts as a one-key object named after the
// header). The final segment collects every occurrence of the key: one
// occurrence is returned as is, several as an array. ok is false when
// nothing matches or path has no segments.
func (d *Document) At(path string) (v Value, ok bool) {
	segs := strings.Split(path, "/")[1:]
	if len(segs) == 0 {
		return Value{}, false
	}
	r := reader{t: d.tape, enc: d.enc, narrow: d.narrow}
	open := tape.Root
	for i := 0; ; i++ {
		seg := segmentUnescaper.Replace(segs[i])
		entries, rest := r.t.Fields(open)
		if i == len(segs)-1 {
			return r.collect(entries, rest, seg)
		}

		var hit *tape.Entry
		for j := range entries {
			if r.key(entries[j].Key) == seg {
				hit = &entries[j]
				break
			}
		}
		if hit == nil {
			return Value{}, false
		}
		next := hit.Value
		if r.t.Token(next).Kind == tape.KindHeader {
			i++
			if r.text(next) != segmentUnescaper.Replace(segs[i]) {
				return Value{}, false
			}
			if i == len(segs)-1 {
				return r.value(next + 1), true
			}
			next++
		}
		switch tok := r.t.Token(next); {
		case tok.Kind == tape.KindObject || tok.Kind == tape.KindHiddenObject:
		case tok.Kind == tape.KindArray && r.t.IsEmpty(next):
		default:
			return Value{}, false
		}
		open = next
	}
}

func (r reader) collect(entries []tape.Entry, rest []int, seg string) (Value, bool) {
	var vals []Value
	for _, e := range entries {
		if r.key(e.Key) == seg {
			vals = append(vals, r.entry(e))
		}
	}
	if seg == RemainderKey && len(rest) > 0 {
		vals = append(vals, r.remainder(rest))
	}
	switch len(vals) {
	case 0:
		return Value{}, false
	case 1:
		return vals[0], true
	}
	return ArrayValue(vals...), true
}
