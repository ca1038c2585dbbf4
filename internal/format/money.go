package format

import (
	"strconv"
	"strings"
)

// FCFA renders an integer franc amount with thousand separators and the
// currency suffix, e.g. 25000 -> "25 000 FCFA".
func FCFA(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + groupThousands(amount) + " FCFA"
}

// PerDay renders a daily rate, e.g. "25 000 FCFA/jour".
func PerDay(amount int64) string {
	return FCFA(amount) + "/jour"
}

func groupThousands(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(' ')
		}
		out.WriteRune(c)
	}
	return out.String()
}
