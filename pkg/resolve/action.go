package resolve

import (
	"strings"

	"parley/pkg/domain"
)

// LegalAction is one action available from the current position, carried
// into the resolver with its human-readable description.
type LegalAction struct {
	ID   string
	Desc string
}

// actionStrategy tries one heuristic over the legal set. ok is true when a
// single action was chosen.
type actionStrategy func(text string, legal []LegalAction) (string, bool)

// The cascade is ordered strongest-first; each stage is independently
// testable and knows nothing about the others.
var actionCascade = []actionStrategy{
	actionExactID,
	actionIDInText,
	actionLeadingDescWords,
	actionAnyDescWord,
}

// Action maps free text onto one of the legal action IDs.
// It returns domain.ErrNoActions when the legal set is empty, a terminal
// condition the caller must answer with a soft reset, and domain.ErrNoMatch
// when no heuristic hits.
func Action(text string, legal []LegalAction) (string, error) {
	if len(legal) == 0 {
		return "", domain.ErrNoActions
	}

	clean := strings.ToLower(strings.TrimSpace(text))
	for _, try := range actionCascade {
		if id, ok := try(clean, legal); ok {
			return id, nil
		}
	}
	return "", domain.ErrNoMatch
}

// actionExactID: the trimmed, lowered text equals an action ID.
func actionExactID(text string, legal []LegalAction) (string, bool) {
	for _, a := range legal {
		if strings.ToLower(a.ID) == text {
			return a.ID, true
		}
	}
	return "", false
}

// actionIDInText: an action ID appears anywhere inside the text.
func actionIDInText(text string, legal []LegalAction) (string, bool) {
	for _, a := range legal {
		if strings.Contains(text, strings.ToLower(a.ID)) {
			return a.ID, true
		}
	}
	return "", false
}

// actionLeadingDescWords: any of the first four words of an action's
// description appears in the text.
func actionLeadingDescWords(text string, legal []LegalAction) (string, bool) {
	for _, a := range legal {
		words := strings.Fields(strings.ToLower(a.Desc))
		if len(words) > 4 {
			words = words[:4]
		}
		for _, w := range words {
			if w != "" && strings.Contains(text, w) {
				return a.ID, true
			}
		}
	}
	return "", false
}

// actionAnyDescWord: last resort, any description word appears in the text.
func actionAnyDescWord(text string, legal []LegalAction) (string, bool) {
	for _, a := range legal {
		for _, w := range strings.Fields(strings.ToLower(a.Desc)) {
			if w != "" && strings.Contains(text, w) {
				return a.ID, true
			}
		}
	}
	return "", false
}
