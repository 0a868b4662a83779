package ui

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// Normalize returns the canonical dashed form of a ux name.
// "form.field", "FormField", "form_field" and "form-field" all normalize to
// "form-field". Acronyms are kept as one word ("HTMLParser" is "html-parser")
// and digits are split from letters ("row2Cell" is "row-2-cell").
func Normalize(name string) string {
	return strings.Join(words(norm.NFC.String(name)), "-")
}

func words(s string) []string {
	var res []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			res = append(res, lower.String(string(cur)))
			cur = cur[:0]
		}
	}

	rs := []rune(s)
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(r) && unicode.IsLower(prev):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return res
}
