package display

import (
	"strconv"
	"time"
)

// TruncateToTwoChars returns the first two characters of s.
// "23.5" gives "23", but "-5.2" gives "-5" and "100" gives "10".
func TruncateToTwoChars(s string) string {
	r := []rune(s)
	if len(r) <= 2 {
		return s
	}
	return string(r[:2])
}

// TemperatureLabel renders v in its shortest decimal form, then truncates it
func TemperatureLabel(v float64) string {
	if v == 0 {
		v = 0 // -0 renders as "0"
	}
	return TruncateToTwoChars(strconv.FormatFloat(v, 'f', -1, 64))
}

// HumidityLabel renders a relative humidity percentage
func HumidityLabel(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// FormatTimeLabel renders an epoch timestamp as short weekday and 24-hour time, e.g. "Mon 15:04".
// A nil loc means the process's local zone.
func FormatTimeLabel(epochSeconds int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epochSeconds, 0).In(loc).Format("Mon 15:04")
}
