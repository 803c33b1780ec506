package pdxtext_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/pdxtext"
)

func TestEnsureArray_Nested(t *testing.T) {
	in := `
  army={
    name="1st army"
    unit={ name="1st unit" }
  }
  army={
    name="2nd army"
    unit={ name="2nd unit" }
    unit={ name="3rd unit" }
  }
  `
	root := mustParse(t, in).Root()
	require.Equal(t, pdxtext.KindObject, root.Get("army").Index(0).Get("unit").Kind())

	pdxtext.EnsureArray(root, "army.unit")
	want := map[string]any{
		"army": []any{
			map[string]any{
				"name": "1st army",
				"unit": []any{map[string]any{"name": "1st unit"}},
			},
			map[string]any{
				"name": "2nd army",
				"unit": []any{
					map[string]any{"name": "2nd unit"},
					map[string]any{"name": "3rd unit"},
				},
			},
		},
	}
	require.Equal(t, want, root.Native())
}

func TestEnsureArray_Cases(t *testing.T) {
	cases := []struct {
		in   string
		path string
		want string
	}{
		{"foo={} bar=1", "foo", `{"foo":[{}],"bar":1}`},
		{"bar=1", "foo", `{"bar":1}`},
		{"bar=1", "foo.bar", `{"bar":1}`},
		{"foo={baz=1}", "foo.baz", `{"foo":{"baz":[1]}}`},
		{"foo={1}", "foo", `{"foo":[1]}`},
		{"foo=1", "foo.bar", `{"foo":1}`},
	}
	for _, tc := range cases {
		root := mustParse(t, tc.in).Root()
		pdxtext.EnsureArray(root, tc.path)
		require.Equal(t, tc.want, root.String(), "%s / %s", tc.in, tc.path)
	}
}

func TestValue_YAML(t *testing.T) {
	doc := mustParse(t, `name="Jim" age=30 ratio=0.5 alive=yes born=1444.11.11 tags={a b} flags={} lvl<2`)
	out, err := doc.YAML()
	require.NoError(t, err)
	want := `name: Jim
age: 30
ratio: 0.5
alive: true
born: 1444.11.11
tags:
  - a
  - b
flags: {}
lvl:
  LESS_THAN: 2
`
	require.Equal(t, want, string(out))

	strs := mustParse(t, `n="12" s=abc`, pdxtext.ParseOpt{Narrowing: pdxtext.NarrowNone})
	out, err = strs.YAML()
	require.NoError(t, err)
	require.Equal(t, "n: \"12\"\ns: abc\n", string(out))
}

func TestValue_Native(t *testing.T) {
	root := mustParse(t, "a=1 b=-1 c=18446744073709547616 d=1.5 e=no f=txt g={x y} h={} i>3").Root()
	require.Equal(t, map[string]any{
		"a": int64(1),
		"b": int64(-1),
		"c": uint64(18446744073709547616),
		"d": 1.5,
		"e": false,
		"f": "txt",
		"g": []any{"x", "y"},
		"h": map[string]any{},
		"i": map[string]any{"GREATER_THAN": int64(3)},
	}, root.Native())
	require.Nil(t, pdxtext.Value{}.Native())
	require.Equal(t, "[!p]", pdxtext.ParameterValue("p", false).Native())
}

func TestValue_Accessors(t *testing.T) {
	root := mustParse(t, "a={1 2 3} b=2.5 c=x").Root()
	require.Equal(t, 3, root.Len())
	require.Equal(t, 3, root.Get("a").Len())
	require.Equal(t, int64(2), root.Get("a").Index(1).Int())
	require.True(t, root.Get("a").Index(9).IsNull())
	require.True(t, root.Get("zzz").IsNull())
	require.True(t, root.Get("c").Get("x").IsNull())

	n, ok := root.Get("b").Number()
	require.True(t, ok)
	require.Equal(t, 2.5, n)
	_, ok = root.Get("c").Number()
	require.False(t, ok)

	require.Equal(t, "object", root.Kind().String())
	require.Equal(t, "operator", pdxtext.KindOperator.String())
}

func TestObject_SetDelete(t *testing.T) {
	o := pdxtext.NewObject()
	o.Set("a", pdxtext.IntValue(1))
	o.Set("b", pdxtext.IntValue(2))
	o.Set("c", pdxtext.IntValue(3))
	o.Set("a", pdxtext.IntValue(10))
	require.Equal(t, []string{"a", "b", "c"}, o.Keys())

	require.True(t, o.Delete("b"))
	require.False(t, o.Delete("b"))
	require.Equal(t, []string{"a", "c"}, o.Keys())
	v, ok := o.Get("c")
	require.True(t, ok)
	require.Equal(t, int64(3), v.Int())

	p := pdxtext.NewObject()
	p.Set("a", pdxtext.IntValue(10))
	p.Set("c", pdxtext.IntValue(3))
	require.True(t, o.Equal(p))
	p.Set("c", pdxtext.IntValue(4))
	require.False(t, o.Equal(p))
}

func TestParseNames(t *testing.T) {
	require.Equal(t, pdxtext.EncodingWindows1252, pdxtext.ParseEncoding("windows-1252"))
	require.Equal(t, pdxtext.EncodingUTF8, pdxtext.ParseEncoding("utf8"))
	require.Equal(t, pdxtext.NarrowUnquoted, pdxtext.ParseTypeNarrowing("unquoted"))
	require.Equal(t, pdxtext.NarrowNone, pdxtext.ParseTypeNarrowing("None"))
	require.Equal(t, pdxtext.NarrowAll, pdxtext.ParseTypeNarrowing("whatever"))
	require.Equal(t, pdxtext.DuplicateTyped, pdxtext.ParseDuplicateKeyMode("key-value-pairs"))
	require.Equal(t, pdxtext.DuplicatePreserve, pdxtext.ParseDuplicateKeyMode("keys"))
	require.Equal(t, pdxtext.DuplicateGroup, pdxtext.ParseDuplicateKeyMode(""))

	for s, want := range map[string]pdxtext.Operator{
		"<": pdxtext.OpLess, "<=": pdxtext.OpLessEqual, ">": pdxtext.OpGreater,
		">=": pdxtext.OpGreaterEqual, "=": pdxtext.OpEqual, "==": pdxtext.OpEqual,
	} {
		got, ok := pdxtext.ParseOperator(s)
		require.True(t, ok, s)
		require.Equal(t, want, got, s)
	}
	_, ok := pdxtext.ParseOperator("!=")
	require.False(t, ok)
}
