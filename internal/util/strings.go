package util

// Truncate returns s cut to at most max characters. Counts runes, not
// bytes, so multi-byte output from remote commands is never split mid-rune.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
