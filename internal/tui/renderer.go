package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Falls back to the raw text when the terminal renderer cannot be built.
func NewRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(text string) string { return text }
	}

	return func(text string) string {
		out, err := r.Render(text)
		if err != nil {
			return text
		}
		return out
	}
}
