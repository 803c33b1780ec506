// Package textenc decodes scalar bytes into Go strings.
package textenc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding selects the byte to text decoding.
type Encoding uint8

const (
	UTF8 Encoding = iota
	Windows1252
)

func (e Encoding) String() string {
	if e == Windows1252 {
		return "windows1252"
	}
	return "utf8"
}

// Lookup maps an encoding name to an Encoding. Unknown names select UTF8.
func Lookup(name string) Encoding {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows1252", "windows-1252", "cp1252", "latin1":
		return Windows1252
	}
	return UTF8
}

// Decode converts raw scalar bytes to a string. Quoted scalars have their
// backslash escapes removed first.
func Decode(enc Encoding, raw []byte, quoted bool) string {
	if quoted {
		raw = Unescape(raw)
	}
	if isASCII(raw) {
		return string(raw)
	}
	if enc == Windows1252 {
		out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err == nil {
			return string(out)
		}
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), "\uFFFD")
}

// Encode converts s into the byte form of enc. Runes that windows-1252
// cannot represent are replaced by '?'.
func Encode(enc Encoding, s string) []byte {
	if enc != Windows1252 || isASCII([]byte(s)) {
		return []byte(s)
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

// Unescape drops the backslash in front of every escaped byte. The input is
// returned unchanged when it holds no backslash.
func Unescape(raw []byte) []byte {
	i := bytes.IndexByte(raw, '\\')
	if i < 0 {
		return raw
	}
	out := make([]byte, 0, len(raw))
	out = append(out, raw[:i]...)
	for ; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		out = append(out, raw[i])
	}
	return out
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
