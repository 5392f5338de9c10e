package gamemaster

import (
	"fmt"
	"strings"

	"parley/pkg/domain"
)

// Prompt is the fixed sentence every game-master response ends with, so
// the voice flow always hands the turn back to the player.
const Prompt = "What do you do?"

const (
	personaText = "The Game Master, calm and slightly mysterious, replies:"
	voidText    = "You are in a featureless void. What do you do?"

	deadEndText = "This part of the story has no obvious actions left. " +
		"The scene softens and the shore of Brinmere returns around you."

	unresolvedText = "I didn't quite catch that action for this situation. " +
		"Try one of the listed choices or use a simple phrase like " +
		"'inspect the box' or 'go to the tower'."

	restartText = "The world resets. A new tide laps at the shore of Brinmere, " +
		"wiping away your previous path."
)

// historyTail is how many recent transitions the journal view shows.
const historyTail = 6

// sceneText builds the speakable description of a scene: prose, the legal
// choices as short hints, then the fixed prompt.
func sceneText(scene domain.Scene) string {
	var b strings.Builder
	b.WriteString(scene.Desc)
	b.WriteString("\n\nChoices:\n")
	for _, id := range scene.OrderedChoices() {
		fmt.Fprintf(&b, "- %s (say: %s)\n", scene.Choices[id].Desc, id)
	}
	b.WriteString("\n")
	b.WriteString(Prompt)
	return b.String()
}

func openingText(playerName string, start domain.Scene) string {
	name := playerName
	if name == "" {
		name = "traveler"
	}
	return fmt.Sprintf("Greetings %s. Welcome to '%s'.\n\n%s", name, start.Title, sceneText(start))
}

func advancedText(actionID, nextScene string) string {
	return fmt.Sprintf("%s\n\nYou chose '%s'.\n\n%s", personaText, actionID, nextScene)
}

// ensurePrompt guarantees the fixed terminating prompt, whatever path
// built the text.
func ensurePrompt(text string) string {
	if strings.HasSuffix(text, Prompt) {
		return text
	}
	return text + "\n" + Prompt
}

// JournalText renders the accumulated record: identity, remembered facts,
// inventory and the recent transitions.
func JournalText(session *domain.Session) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Session: %s | Started at: %s",
		session.ID, session.StartedAt.Format("2006-01-02T15:04:05Z07:00")))
	if session.PlayerName != "" {
		lines = append(lines, fmt.Sprintf("Player: %s", session.PlayerName))
	}

	if len(session.Journal) > 0 {
		lines = append(lines, "", "Journal entries:")
		for _, j := range session.Journal {
			lines = append(lines, "- "+j)
		}
	} else {
		lines = append(lines, "", "Journal is empty so far.")
	}

	if len(session.Inventory) > 0 {
		lines = append(lines, "", "Inventory:")
		for _, it := range session.Inventory {
			lines = append(lines, "- "+it)
		}
	} else {
		lines = append(lines, "", "No items in inventory yet.")
	}

	lines = append(lines, "", "Recent choices:")
	if len(session.History) > 0 {
		tail := session.History
		if len(tail) > historyTail {
			tail = tail[len(tail)-historyTail:]
		}
		for _, h := range tail {
			lines = append(lines, fmt.Sprintf("- %s | from %s -> %s via %s",
				h.Time.Format("2006-01-02T15:04:05Z07:00"), h.From, h.To, h.Action))
		}
	} else {
		lines = append(lines, "- None yet. Your story is just beginning.")
	}

	lines = append(lines, "", Prompt)
	return strings.Join(lines, "\n")
}
