// Package scalar classifies scalar bytes as booleans, numbers and dates.
package scalar

import (
	"math/big"
	"strconv"
)

// Kind is the outcome of classifying scalar bytes.
type Kind uint8

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDate
)

// Result carries the classified value. Only the field matching Kind is set.
type Result struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Date  Date
}

// Classify tries boolean, signed integer, unsigned integer, exact float and
// date interpretations in that order. KindString means no interpretation
// applied.
func Classify(b []byte) Result {
	switch string(b) {
	case "yes":
		return Result{Kind: KindBool, Bool: true}
	case "no":
		return Result{Kind: KindBool}
	}
	if !isNumeric(b) {
		if d, ok := ParseDate(b); ok {
			return Result{Kind: KindDate, Date: d}
		}
		return Result{}
	}
	s := string(b)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Result{Kind: KindInt, Int: i}
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Result{Kind: KindUint, Uint: u}
	}
	if f, ok := ExactFloat(b); ok {
		return Result{Kind: KindFloat, Float: f}
	}
	return Result{}
}

// ExactFloat parses b as a decimal number and succeeds only when the float64
// result denotes the same decimal value as the shortest representation that
// round trips, i.e. no digits of b are lost.
func ExactFloat(b []byte) (float64, bool) {
	if !isNumeric(b) {
		return 0, false
	}
	s := string(b)
	if s[0] == '+' {
		s = s[1:]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if significantDigits(s) <= 15 {
		return f, true
	}
	want, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, false
	}
	got, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok || want.Cmp(got) != 0 {
		return 0, false
	}
	return f, true
}

// isNumeric accepts an optional sign, digits and at most one dot with at least
// one digit overall.
func isNumeric(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	i := 0
	if b[0] == '-' || b[0] == '+' {
		i++
	}
	digits, dots := 0, 0
	for ; i < len(b); i++ {
		switch c := b[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

func significantDigits(s string) int {
	n, leading := 0, true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		if leading && c == '0' {
			continue
		}
		leading = false
		n++
	}
	return n
}
