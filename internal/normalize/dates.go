package normalize

import "time"

// ParseDate parses "YYYY-MM-DD" without going through a layout string.
// Returns zero time and false on anything else; there is deliberately no
// lenient fallback, since a misread date must surface, not be guessed at.
func ParseDate(s string) (time.Time, bool) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, false
	}
	for _, i := range [8]int{0, 1, 2, 3, 5, 6, 8, 9} {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, false
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if m < 1 || m > 12 || d < 1 || d > daysIn(y, m) {
		return time.Time{}, false
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

func daysIn(y int, m time.Month) int {
	// day 0 of the next month is the last day of m
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
