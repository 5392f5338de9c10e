package resolve

import (
	"strings"

	"parley/pkg/domain"
)

// refStage tries one heuristic over the (possibly narrowed) candidates.
type refStage func(text string, tokens []string, candidates []domain.Product, synonyms map[string]string) (domain.Product, bool)

var referenceCascade = []refStage{
	refOrdinal,
	refExactID,
	refColorCategory,
	refStrongName,
	refWeakName,
	refNumericIndex,
}

// Reference maps free text onto one product from candidates. synonyms maps
// spoken category words onto canonical category names (e.g. "phones" ->
// "mobile") and also drives the up-front category narrowing: when the text
// names a category, later stages only see products of that category, unless
// the narrowing would empty the set, in which case the full set is kept.
// Returns domain.ErrNoMatch when nothing hits.
func Reference(text string, candidates []domain.Product, synonyms map[string]string) (domain.Product, error) {
	tokens := tokenize(text)
	narrowed := narrowByCategory(tokens, candidates, synonyms)

	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, stage := range referenceCascade {
		if p, ok := stage(lowered, tokens, narrowed, synonyms); ok {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrNoMatch
}

// narrowByCategory filters candidates down to the first category the text
// mentions. An empty result reverts to the unfiltered set.
func narrowByCategory(tokens []string, candidates []domain.Product, synonyms map[string]string) []domain.Product {
	category := ""
	for _, tok := range tokens {
		if canon, ok := synonyms[tok]; ok {
			category = canon
			break
		}
		for _, p := range candidates {
			if strings.EqualFold(p.Category, tok) {
				category = strings.ToLower(p.Category)
				break
			}
		}
		if category != "" {
			break
		}
	}
	if category == "" {
		return candidates
	}

	var filtered []domain.Product
	for _, p := range candidates {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}

// refOrdinal: "first".."fourth" select by position. Out of range is a miss
// for this stage, not an error.
func refOrdinal(_ string, tokens []string, candidates []domain.Product, _ map[string]string) (domain.Product, bool) {
	idx, ok := ordinalIndex(tokens)
	if !ok || idx >= len(candidates) {
		return domain.Product{}, false
	}
	return candidates[idx], true
}

// refExactID: the whole text equals a product ID.
func refExactID(text string, _ []string, candidates []domain.Product, _ map[string]string) (domain.Product, bool) {
	for _, p := range candidates {
		if strings.EqualFold(p.ID, text) {
			return p, true
		}
	}
	return domain.Product{}, false
}

// refColorCategory: the text simultaneously names one candidate's color and
// its category (directly or through a synonym). Containment is substring
// based and deliberately loose for spoken input: "red" inside another word
// still counts.
func refColorCategory(text string, _ []string, candidates []domain.Product, synonyms map[string]string) (domain.Product, bool) {
	for _, p := range candidates {
		if !categoryMentioned(text, p.Category, synonyms) {
			continue
		}
		for _, color := range p.Colors {
			if strings.Contains(text, strings.ToLower(color)) {
				return p, true
			}
		}
	}
	return domain.Product{}, false
}

func categoryMentioned(text, category string, synonyms map[string]string) bool {
	canon := strings.ToLower(category)
	if strings.Contains(text, canon) {
		return true
	}
	for word, target := range synonyms {
		if target == canon && strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// refStrongName: every alphabetic token longer than two characters is a
// substring of the candidate's name.
func refStrongName(_ string, tokens []string, candidates []domain.Product, _ map[string]string) (domain.Product, bool) {
	words := alphaTokens(tokens)
	if len(words) == 0 {
		return domain.Product{}, false
	}
	for _, p := range candidates {
		name := strings.ToLower(p.Name)
		all := true
		for _, w := range words {
			if !strings.Contains(name, w) {
				all = false
				break
			}
		}
		if all {
			return p, true
		}
	}
	return domain.Product{}, false
}

// refWeakName: any such token appears in the candidate's name.
func refWeakName(_ string, tokens []string, candidates []domain.Product, _ map[string]string) (domain.Product, bool) {
	for _, p := range candidates {
		name := strings.ToLower(p.Name)
		for _, w := range alphaTokens(tokens) {
			if strings.Contains(name, w) {
				return p, true
			}
		}
	}
	return domain.Product{}, false
}

// refNumericIndex: a bare integer N selects the N-th (1-based) candidate.
func refNumericIndex(_ string, tokens []string, candidates []domain.Product, _ map[string]string) (domain.Product, bool) {
	n, ok := bareNumber(tokens)
	if !ok || n > len(candidates) {
		return domain.Product{}, false
	}
	return candidates[n-1], true
}
