package storage

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseID reads a numeric identity the lenient way identities arrive from
// callers: leading whitespace is skipped, an optional sign is accepted and
// parsing stops at the first non-digit. "2", " 2" and "2abc" all yield 2.
// A "0x" prefix switches to hexadecimal, so "0x2" yields 2 as well.
// ok is false when no digit leads the string, e.g. for "user_123" or "0x".
func ParseID(s string) (id int, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base, isDigit := 10, isDecimal
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit = 16, isHex
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], base, 0)
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}

	return int(n), true
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// FormatID renders a numeric identity for APIs that take identities as strings.
func FormatID(id int) string {
	return strconv.Itoa(id)
}
