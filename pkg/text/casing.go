package text

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// 🔠 Variants expands a pair into its casing variants, in order:
//
//   - first rune upper on both sides (Bob -> Jane)
//   - first rune lower on both sides (bob -> jane)
//   - all upper (BOB -> JANE)
//   - all lower (bob -> jane)
//
// Duplicates are dropped, keeping the first occurrence, so a single rune
// keyword yields two variants and an already lower case keyword never runs
// twice.
func Variants(p Pair) []Pair {
	upper, lower := cases.Upper(language.Und), cases.Lower(language.Und)
	candidates := []Pair{
		{From: withFirst(p.From, unicode.ToUpper), To: withFirst(p.To, unicode.ToUpper)},
		{From: withFirst(p.From, unicode.ToLower), To: withFirst(p.To, unicode.ToLower)},
		{From: upper.String(p.From), To: upper.String(p.To)},
		{From: lower.String(p.From), To: lower.String(p.To)},
	}

	seen := make(map[Pair]struct{}, len(candidates))
	out := make([]Pair, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func withFirst(s string, fn func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(fn(r)) + s[size:]
}
