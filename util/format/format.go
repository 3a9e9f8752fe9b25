// Package format applies the input masks the rental forms use, so records are
// stored uniformly regardless of how the operator typed them.
package format

import "strings"

func digits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// CPF masks a national tax id as 000.000.000-00. Extra digits are dropped;
// short inputs are masked as far as they reach.
func CPF(s string) string {
	d := digits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	var b strings.Builder
	for i := 0; i < len(d); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// Phone masks a phone number as (00) 00000-0000, or (00) 0000-0000 for
// 8-digit locals.
func Phone(s string) string {
	d := digits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	if len(d) <= 2 {
		return d
	}
	rest := d[2:]
	if len(rest) <= 4 {
		return "(" + d[:2] + ") " + rest
	}
	return "(" + d[:2] + ") " + rest[:len(rest)-4] + "-" + rest[len(rest)-4:]
}
