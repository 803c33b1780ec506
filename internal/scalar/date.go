package scalar

import (
	"strconv"
)

// Date is a game calendar date. Month and Hour are zero-based; Day is stored
// as written. Components are not range checked, so "1444.13.1" is a date
// that renders back as written.
type Date struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	HasHour bool
}

// ParseDate parses "Y.M.D" or "Y.M.D.H". Only the year may carry a leading
// minus sign.
func ParseDate(b []byte) (Date, bool) {
	var parts [4]int
	n, start := 0, 0
	for i := 0; i <= len(b); i++ {
		if i < len(b) && b[i] != '.' {
			continue
		}
		if n == len(parts) {
			return Date{}, false
		}
		v, ok := component(b[start:i], n == 0)
		if !ok {
			return Date{}, false
		}
		parts[n] = v
		n++
		start = i + 1
	}
	if n != 3 && n != 4 {
		return Date{}, false
	}
	d := Date{Year: parts[0], Month: parts[1] - 1, Day: parts[2]}
	if n == 4 {
		d.Hour = parts[3] - 1
		d.HasHour = true
	}
	return d, true
}

func component(b []byte, signed bool) (int, bool) {
	if len(b) == 0 || len(b) > 9 {
		return 0, false
	}
	digits := b
	if signed && b[0] == '-' {
		digits = b[1:]
	}
	if len(digits) == 0 {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(string(b))
	return v, err == nil
}

// String renders the date in game form with one-based month and hour.
func (d Date) String() string {
	return string(d.AppendText(nil))
}

// AppendText appends the game form of d to dst.
func (d Date) AppendText(dst []byte) []byte {
	dst = strconv.AppendInt(dst, int64(d.Year), 10)
	dst = append(dst, '.')
	dst = strconv.AppendInt(dst, int64(d.Month+1), 10)
	dst = append(dst, '.')
	dst = strconv.AppendInt(dst, int64(d.Day), 10)
	if d.HasHour {
		dst = append(dst, '.')
		dst = strconv.AppendInt(dst, int64(d.Hour+1), 10)
	}
	return dst
}
