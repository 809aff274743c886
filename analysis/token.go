package analysis

import "strings"

// Token is one canonical ingredient or symptom word. Key is the
// lowercase form used for matching; Display keeps the casing the user
// first typed.
type Token struct {
	Key     string
	Display string
}

// invisible characters that show up in text pasted from phones.
// Line breaks are removed outright; NBSP becomes a regular space.
var invisibles = strings.NewReplacer(
	"\u200B", "", // zero-width space
	"\u200C", "", // zero-width non-joiner
	"\u200D", "", // zero-width joiner
	"\uFEFF", "", // byte order mark
	"\u00AD", "", // soft hyphen
	"\r", "",
	"\n", "",
	"\u00A0", " ", // non-breaking space
)

// CleanText normalizes a raw free-text field: strips invisible unicode,
// collapses whitespace runs to a single space and trims the ends.
// CleanText(CleanText(s)) == CleanText(s) for all s.
func CleanText(s string) string {
	return strings.Join(strings.Fields(invisibles.Replace(s)), " ")
}

// SplitField splits a cleaned field on the literal ", " delimiter.
// A field without the delimiter is a single piece. Pieces are
// re-trimmed and empty pieces dropped.
func SplitField(s string) []string {
	s = CleanText(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Tokenize turns a raw field into deduplicated tokens in input order.
// Duplicate detection is case-insensitive; the first-seen casing wins.
func Tokenize(raw string) []Token {
	pieces := SplitField(raw)
	if len(pieces) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(pieces))
	out := make([]Token, 0, len(pieces))
	for _, p := range pieces {
		key := strings.ToLower(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Token{Key: key, Display: p})
	}
	return out
}
