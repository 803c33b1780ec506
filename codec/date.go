// Package codec converts game dates to and from other time representations.
package codec

import (
	"fmt"
	"time"

	"github.com/reoring/pdxtext/internal/scalar"
)

// Codec converts between a wire form A and a domain form B.
type Codec[A, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) (A, error)
}

// DateTime returns a Codec between game dates and UTC time.Time values.
// The stored zero-based hour maps to the time's hour; encoding keeps the hour
// only when it is non-zero. Out of range components roll over into the next
// unit, as time.Date does.
func DateTime() Codec[scalar.Date, time.Time] {
	return dateCodec{}
}

type dateCodec struct{}

func (dateCodec) Decode(d scalar.Date) (time.Time, error) {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, d.Hour, 0, 0, 0, time.UTC), nil
}

func (dateCodec) Encode(t time.Time) (scalar.Date, error) {
	t = t.UTC()
	if t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
		return scalar.Date{}, fmt.Errorf("codec: %s has sub-hour precision", t.Format(time.RFC3339Nano))
	}
	d := scalar.Date{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
	if h := t.Hour(); h != 0 {
		d.Hour, d.HasHour = h, true
	}
	return d, nil
}

// DateRFC3339 chains DateTime and TimeRFC3339.
func DateRFC3339() Codec[string, scalar.Date] {
	return chained{}
}

type chained struct{}

func (chained) Decode(s string) (scalar.Date, error) {
	t, err := TimeRFC3339().Decode(s)
	if err != nil {
		return scalar.Date{}, err
	}
	return DateTime().Encode(t)
}

func (chained) Encode(d scalar.Date) (string, error) {
	t, err := DateTime().Decode(d)
	if err != nil {
		return "", err
	}
	return TimeRFC3339().Encode(t)
}
