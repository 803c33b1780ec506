package source

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

var payload = []byte("date=1444.11.11\nplayer=\"FRA\"\n")

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, entries map[string][]byte, order ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	require.Equal(t, FormatPlain, Detect(payload))
	require.Equal(t, FormatGzip, Detect(gzipped(t, payload)))
	require.Equal(t, FormatZip, Detect(zipped(t, map[string][]byte{"a": payload}, "a")))
	require.Equal(t, "zstd", FormatZstd.String())
}

func TestDecode(t *testing.T) {
	t.Run("plain input is returned as is", func(t *testing.T) {
		out, err := Decode(payload, Options{})
		require.NoError(t, err)
		require.Equal(t, payload, out)
	})

	t.Run("gzip", func(t *testing.T) {
		out, err := Decode(gzipped(t, payload), Options{})
		require.NoError(t, err)
		require.Equal(t, payload, out)
	})

	t.Run("zstd", func(t *testing.T) {
		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		compressed := enc.EncodeAll(payload, nil)
		require.NoError(t, enc.Close())

		out, err := Decode(compressed, Options{})
		require.NoError(t, err)
		require.Equal(t, payload, out)
	})

	t.Run("lz4 frame", func(t *testing.T) {
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		_, err := zw.Write(payload)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.Equal(t, FormatLZ4, Detect(buf.Bytes()))

		out, err := Decode(buf.Bytes(), Options{})
		require.NoError(t, err)
		require.Equal(t, payload, out)
	})

	t.Run("zip prefers the gamestate entry", func(t *testing.T) {
		data := zipped(t, map[string][]byte{"meta": []byte("x=1"), "gamestate": payload}, "meta", "gamestate")
		out, err := Decode(data, Options{})
		require.NoError(t, err)
		require.Equal(t, payload, out)

		out, err = Decode(data, Options{Entry: "meta"})
		require.NoError(t, err)
		require.Equal(t, []byte("x=1"), out)
	})

	t.Run("zip falls back to the first entry", func(t *testing.T) {
		data := zipped(t, map[string][]byte{"save.txt": payload}, "save.txt")
		out, err := Decode(data, Options{})
		require.NoError(t, err)
		require.Equal(t, payload, out)
	})

	t.Run("missing named zip entry", func(t *testing.T) {
		data := zipped(t, map[string][]byte{"save.txt": payload}, "save.txt")
		_, err := Decode(data, Options{Entry: "nope"})
		require.True(t, errors.Is(err, ErrNoEntry))
	})

	t.Run("size limit", func(t *testing.T) {
		_, err := Decode(gzipped(t, payload), Options{MaxBytes: 4})
		require.ErrorIs(t, err, ErrTooLarge)

		_, err = Load(bytes.NewReader(payload), Options{MaxBytes: 4})
		require.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("zstd size limit streams", func(t *testing.T) {
		big := bytes.Repeat([]byte("a=1\n"), 1<<18)
		enc, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		compressed := enc.EncodeAll(big, nil)
		require.NoError(t, enc.Close())

		_, err = Decode(compressed, Options{MaxBytes: 1024})
		require.ErrorIs(t, err, ErrTooLarge)

		out, err := Decode(compressed, Options{MaxBytes: int64(len(big))})
		require.NoError(t, err)
		require.Equal(t, big, out)

		out, err = Decode(compressed, Options{})
		require.NoError(t, err)
		require.Equal(t, big, out)
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		_, err := Decode([]byte{0x1f, 0x8b, 0x00}, Options{})
		require.Error(t, err)
	})
}

func TestSkipHeader(t *testing.T) {
	require.Equal(t, []byte("\nfoo=bar"), SkipHeader([]byte("EU4txt\nfoo=bar")))
	require.Equal(t, []byte("foo=bar"), SkipHeader([]byte("foo=bar")))
	require.Equal(t, []byte("\tfoo = bar "), SkipHeader([]byte("\tfoo = bar ")))
	require.Equal(t, []byte("abc"), SkipHeader([]byte("abc")))
}
