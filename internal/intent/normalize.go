package intent

import "strings"

// normalize lowercases input and strips everything except letters, digits
// and spaces so keyword matching works on clean tokens.
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			b.WriteByte(' ')
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsWord reports whether needle occurs as a token or token prefix in
// the normalized haystack ("fly" matches "fly" and "flying", not "qualify").
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for _, tok := range strings.Fields(haystack) {
		if strings.HasPrefix(tok, needle) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
