package scalar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("booleans", func(t *testing.T) {
		require.Equal(t, Result{Kind: KindBool, Bool: true}, Classify([]byte("yes")))
		require.Equal(t, Result{Kind: KindBool}, Classify([]byte("no")))
		require.Equal(t, KindString, Classify([]byte("Yes")).Kind)
	})

	t.Run("integers are never floated", func(t *testing.T) {
		require.Equal(t, Result{Kind: KindInt, Int: 1}, Classify([]byte("1")))
		require.Equal(t, Result{Kind: KindInt, Int: -1}, Classify([]byte("-1")))
		require.Equal(t, Result{Kind: KindInt, Int: 0}, Classify([]byte("0")))
		require.Equal(t, Result{Kind: KindInt, Int: -90071992547409097}, Classify([]byte("-90071992547409097")))
		require.Equal(t, Result{Kind: KindUint, Uint: 18446744073709547616}, Classify([]byte("18446744073709547616")))
	})

	t.Run("floats must be exact", func(t *testing.T) {
		require.Equal(t, Result{Kind: KindFloat, Float: 1.23}, Classify([]byte("1.23")))
		require.Equal(t, Result{Kind: KindFloat, Float: -0.5}, Classify([]byte("-0.5")))
		require.Equal(t, Result{Kind: KindFloat, Float: 0.5}, Classify([]byte("+0.5")))
		require.Equal(t, KindString, Classify([]byte("99999999999999999999")).Kind)
		require.Equal(t, KindString, Classify([]byte("0.1000000000000000055511151231257827")).Kind)
	})

	t.Run("non numeric forms stay strings", func(t *testing.T) {
		for _, s := range []string{"inf", "nan", "0x10", "1e5", "-", ".", "1.2.x", "bar:foo", ""} {
			require.Equal(t, KindString, Classify([]byte(s)).Kind, s)
		}
	})

	t.Run("dates", func(t *testing.T) {
		r := Classify([]byte("1444.11.11"))
		require.Equal(t, KindDate, r.Kind)
		require.Equal(t, Date{Year: 1444, Month: 10, Day: 11}, r.Date)
	})
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate([]byte("1444.11.11.24"))
	require.True(t, ok)
	require.Equal(t, Date{Year: 1444, Month: 10, Day: 11, Hour: 23, HasHour: true}, d)

	d, ok = ParseDate([]byte("-2500.1.1"))
	require.True(t, ok)
	require.Equal(t, Date{Year: -2500, Month: 0, Day: 1}, d)

	for _, s := range []string{"1821.a.1", "1821.1", "1.1.1.1.1", "1821.-1.1", "1821..1", "1821.1.1."} {
		_, ok := ParseDate([]byte(s))
		require.False(t, ok, s)
	}

	for s, want := range map[string]Date{
		"1444.13.1":   {Year: 1444, Month: 12, Day: 1},
		"1821.1.32":   {Year: 1821, Month: 0, Day: 32},
		"1821.0.0":    {Year: 1821, Month: -1, Day: 0},
		"1821.1.1.0":  {Year: 1821, Month: 0, Day: 1, Hour: -1, HasHour: true},
		"1821.1.1.25": {Year: 1821, Month: 0, Day: 1, Hour: 24, HasHour: true},
	} {
		d, ok := ParseDate([]byte(s))
		require.True(t, ok, s)
		require.Equal(t, want, d, s)
		require.Equal(t, s, d.String())
	}
}

func TestDate_String(t *testing.T) {
	require.Equal(t, "1444.11.11", Date{Year: 1444, Month: 10, Day: 11}.String())
	require.Equal(t, "1936.1.1.1", Date{Year: 1936, Month: 0, Day: 1, HasHour: true}.String())
}
