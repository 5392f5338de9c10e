package resolve

import (
	"strconv"
	"strings"
	"unicode"
)

// ordinals maps spoken positional words onto zero-based indexes.
var ordinals = map[string]int{
	"first":  0,
	"second": 1,
	"third":  2,
	"fourth": 3,
}

// tokenize lowers the text and splits it on anything that is not a letter
// or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// alphaTokens returns the purely alphabetic tokens longer than two
// characters; these drive the name-matching stages.
func alphaTokens(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		alpha := true
		for _, r := range tok {
			if !unicode.IsLetter(r) {
				alpha = false
				break
			}
		}
		if alpha {
			out = append(out, tok)
		}
	}
	return out
}

// ordinalIndex finds the first ordinal word in the tokens, returning its
// zero-based index.
func ordinalIndex(tokens []string) (int, bool) {
	for _, tok := range tokens {
		if idx, ok := ordinals[tok]; ok {
			return idx, true
		}
	}
	return 0, false
}

// bareNumber finds the first token that parses as a positive integer.
func bareNumber(tokens []string) (int, bool) {
	for _, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}
