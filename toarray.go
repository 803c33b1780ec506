package pdxtext

import "strings"

// EnsureArray wraps the field at a dot separated path in a one element
// array unless it already is an array. Objects are modified in place. When
// an intermediate field holds an array, the rest of the path is applied to
// each object element. Missing fields are left alone.
//
// Use it to normalize keys that appear once in some documents and several
// times in others, e.g. EnsureArray(root, "army.unit").
func EnsureArray(v Value, path string) {
	if v.kind != KindObject || path == "" {
		return
	}
	head, rest, nested := strings.Cut(path, ".")
	field, ok := v.obj.Get(head)
	if !ok {
		return
	}
	if !nested {
		if field.kind != KindArray {
			v.obj.Set(head, ArrayValue(field))
		}
		return
	}
	if field.kind == KindArray {
		for _, e := range field.arr {
			EnsureArray(e, rest)
		}
		return
	}
	EnsureArray(field, rest)
}
