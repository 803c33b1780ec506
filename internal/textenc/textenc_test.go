package textenc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("windows1252 maps high bytes", func(t *testing.T) {
		require.Equal(t, "ÿ", Decode(Windows1252, []byte{0xff}, false))
		require.Equal(t, "Š", Decode(Windows1252, []byte{0x8a}, false))
	})

	t.Run("utf8 passes through", func(t *testing.T) {
		require.Equal(t, "Jåhkåmåhkke", Decode(UTF8, []byte("Jåhkåmåhkke"), true))
	})

	t.Run("invalid utf8 is replaced", func(t *testing.T) {
		require.Equal(t, "a\uFFFDb", Decode(UTF8, []byte{'a', 0xff, 'b'}, false))
	})

	t.Run("quoted escapes are removed", func(t *testing.T) {
		require.Equal(t, `"Captain"`, Decode(UTF8, []byte(`\"Captain\"`), true))
		require.Equal(t, `C:\dir`, Decode(UTF8, []byte(`C:\\dir`), true))
		require.Equal(t, `\"raw\"`, Decode(UTF8, []byte(`\"raw\"`), false))
	})
}

func TestEncode(t *testing.T) {
	require.Equal(t, []byte{0xff, 0x8a}, Encode(Windows1252, "ÿŠ"))
	require.Equal(t, []byte("a?"), Encode(Windows1252, "a\u4e16"))
	require.Equal(t, []byte("ÿ"), Encode(UTF8, "ÿ"))
}

func TestLookup(t *testing.T) {
	require.Equal(t, Windows1252, Lookup("windows1252"))
	require.Equal(t, Windows1252, Lookup("Windows-1252"))
	require.Equal(t, UTF8, Lookup("utf8"))
	require.Equal(t, UTF8, Lookup("ebcdic"))
}
