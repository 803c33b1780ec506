package pdxtext_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/pdxtext"
)

func TestJSON_Group(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"foo=bar", `{"foo":"bar"}`},
		{"foo=bar num=1 bool=no bool2=yes pi=3.14", `{"foo":"bar","num":1,"bool":false,"bool2":true,"pi":3.14}`},
		{"foo={prop=a bar={num=1}}", `{"foo":{"prop":"a","bar":{"num":1}}}`},
		{"nums={1 2 3 4}", `{"nums":[1,2,3,4]}`},
		{"core=AAA core=BBB", `{"core":["AAA","BBB"]}`},
		{"color = rgb { 100 200 150 }", `{"color":{"rgb":[100,200,150]}}`},
		{"identity = 18446744073709547616", `{"identity":"18446744073709547616"}`},
		{"identity = -90071992547409097", `{"identity":"-90071992547409097"}`},
		{"identity = 9007199254740992", `{"identity":9007199254740992}`},
		{"area = { color = { 10 } 1 2 }", `{"area":{"color":[10],"remainder":[1,2]}}`},
		{"a < 2 a < 3", `{"a":[{"LESS_THAN":2},{"LESS_THAN":3}]}`},
		{"", `{}`},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, jsonOf(t, tc.in), tc.in)
	}
}

func TestJSON_GroupMatchesMaterializedTree(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"area = { remainder=5 color = { 10 } 1 2 }", `{"area":{"remainder":[5,[1,2]],"color":[10]}}`},
		{`"a\\b"=1 a\b=2`, `{"a\\b":[1,2]}`},
		{"x < 1 x = 2 y = { 1 2 } y = 3", `{"x":[{"LESS_THAN":1},2],"y":[[1,2],3]}`},
	}
	for _, tc := range cases {
		doc := mustParse(t, tc.in)
		out, err := doc.JSON()
		require.NoError(t, err)
		require.Equal(t, tc.want, string(out), tc.in)
		require.Equal(t, doc.Root().String(), string(out), tc.in)
	}
}

func TestJSON_Preserve(t *testing.T) {
	opt := pdxtext.JSONOpt{Mode: pdxtext.DuplicatePreserve}
	require.Equal(t, `{"core":"AAA","core":"BBB"}`, jsonOf(t, "core=AAA core=BBB", opt))
	require.Equal(t, `{"area":{"color":[10],"remainder":[1,2]}}`, jsonOf(t, "area = { color = { 10 } 1 2 }", opt))
	require.Equal(t, `{"a":{"remainder":5,"remainder":[1]}}`, jsonOf(t, "a = { remainder=5 1 }", opt))
}

func TestJSON_Typed(t *testing.T) {
	opt := pdxtext.JSONOpt{Mode: pdxtext.DuplicateTyped}
	cases := []struct {
		in   string
		want string
	}{
		{"core=AAA core=BBB", `{"type":"obj","val":[["core","AAA"],["core","BBB"]]}`},
		{"nums={1 2}", `{"type":"obj","val":[["nums",{"type":"array","val":[1,2]}]]}`},
		{"foo={}", `{"type":"obj","val":[["foo",{"type":"obj","val":[]}]]}`},
		{
			"area = { color = { 10 } 1 2 }",
			`{"type":"obj","val":[["area",{"type":"obj","val":[["color",{"type":"array","val":[10]}],[1,2]]}]]}`,
		},
		{
			"generate_advisor = { [[scaled_skill] a=b ] [[!scaled_skill] c=d ]  }",
			`{"type":"obj","val":[["generate_advisor",{"type":"obj","val":[["[scaled_skill]",{"type":"obj","val":[["a","b"]]}],["[!scaled_skill]",{"type":"obj","val":[["c","d"]]}]]}]]}`,
		},
		{"foo = { [[add] $add$]}", `{"type":"obj","val":[["foo",{"type":"obj","val":[["[add]","$add$"]]}]]}`},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, jsonOf(t, tc.in, opt), tc.in)
	}
}

func TestJSON_Pretty(t *testing.T) {
	want := `{
  "foo": {
    "prop": "a",
    "bar": {
      "num": 1
    }
  }
}`
	require.Equal(t, want, jsonOf(t, "foo={prop=a bar={num=1}}", pdxtext.JSONOpt{Pretty: true}))
}

func TestJSON_Dates(t *testing.T) {
	in := "start=1444.11.11 end=1936.1.1.13"
	require.Equal(t, `{"start":"1444.11.11","end":"1936.1.1.13"}`, jsonOf(t, in))
	require.Equal(t,
		`{"start":"1444-11-11T00:00:00Z","end":"1936-01-01T12:00:00Z"}`,
		jsonOf(t, in, pdxtext.JSONOpt{Dates: pdxtext.DateRFC3339}))
}

func TestJSON_NarrowNone(t *testing.T) {
	doc := mustParse(t, "a=1 b=yes", pdxtext.ParseOpt{Narrowing: pdxtext.NarrowNone})
	out, err := doc.JSON()
	require.NoError(t, err)
	require.Equal(t, `{"a":"1","b":"yes"}`, string(out))
}

func TestValue_MarshalJSON(t *testing.T) {
	root := mustParse(t, `a=1 b={x y} c={} d>=1444.11.11 e="q\"t" f=18446744073709547616`).Root()
	out, err := root.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":["x","y"],"c":{},"d":{"GREATER_THAN_EQUAL":"1444.11.11"},"e":"q\"t","f":18446744073709547616}`, string(out))
	require.Equal(t, string(out), root.String())
	require.Equal(t, "null", pdxtext.Value{}.String())
}
