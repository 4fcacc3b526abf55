package models

import (
	"math"
	"strconv"
)

// FormatKSh renders an amount as Kenyan shillings with thousands
// separators, e.g. "KSh 8,000". Fractions are rounded to whole shillings.
func FormatKSh(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	return "KSh " + sign + string(out)
}
