// Package formatx normalises free-text survey input as it is typed or
// dictated: phone numbers, dates, NPK ratios and decimal quantities.
package formatx

import "strings"

func digits(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			if b.Len() == max {
				break
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Phone keeps at most 10 digits.
func Phone(s string) string {
	return digits(s, 10)
}

// Date shapes up to 8 digits as YYYY-MM-DD, inserting dashes as the
// digits arrive.
func Date(s string) string {
	d := digits(s, 8)
	switch {
	case len(d) > 6:
		return d[:4] + "-" + d[4:6] + "-" + d[6:]
	case len(d) > 4:
		return d[:4] + "-" + d[4:]
	default:
		return d
	}
}

// NPK shapes up to 6 digits as N:P:K, e.g. "102010" becomes "10:20:10".
func NPK(s string) string {
	d := digits(s, 6)
	switch {
	case len(d) > 4:
		return d[:2] + ":" + d[2:4] + ":" + d[4:]
	case len(d) > 2:
		return d[:2] + ":" + d[2:]
	default:
		return d
	}
}

// Numeric keeps digits and the first decimal point, truncating the
// fraction to precision digits.
func Numeric(s string, precision int) string {
	var intPart, frac strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r == '.':
			seenDot = true
		case r >= '0' && r <= '9':
			if seenDot {
				frac.WriteRune(r)
			} else {
				intPart.WriteRune(r)
			}
		}
	}
	if !seenDot {
		return intPart.String()
	}
	f := frac.String()
	if precision >= 0 && len(f) > precision {
		f = f[:precision]
	}
	return intPart.String() + "." + f
}
