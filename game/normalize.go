package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ignoredRunes are dropped from titles before comparison. Full-width forms
// are folded to these by NFKC first.
const ignoredRunes = "_.,!?:;'\"`・·、。「」『』【】〈〉《》〔〕〜~‐-–—/\\"

// Normalize turns a page title into the key used for goal comparison. It
// folds width and case, drops parenthetical annotations along with their
// contents, removes whitespace and a fixed set of punctuation.
func Normalize(title string) string {
	if title == "" {
		return ""
	}

	s := norm.NFKC.String(title)
	s = strings.ToLower(s)
	s = stripParentheticals(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(ignoredRunes, r) {
			return -1
		}
		return r
	}, s)

	return norm.NFKC.String(s)
}

// stripParentheticals removes "(...)" groups, innermost first, then any
// unbalanced parenthesis left over.
func stripParentheticals(s string) string {
	for {
		closeIdx := strings.IndexRune(s, ')')
		if closeIdx < 0 {
			break
		}
		openIdx := strings.LastIndex(s[:closeIdx], "(")
		if openIdx < 0 {
			s = s[:closeIdx] + s[closeIdx+1:]
			continue
		}
		s = s[:openIdx] + s[closeIdx+1:]
	}
	return strings.ReplaceAll(s, "(", "")
}
