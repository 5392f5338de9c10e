package domain

import "sort"

// Scene is one node of the narrative graph. Scenes reference each other
// only by ID; the graph is an arena keyed by stable string keys, never a
// web of pointers.
type Scene struct {
	ID      string            `json:"id" yaml:"id"`
	Title   string            `json:"title" yaml:"title"`
	Desc    string            `json:"desc" yaml:"desc"`
	Choices map[string]Choice `json:"choices,omitempty" yaml:"choices,omitempty"`

	// ChoiceOrder preserves the authoring order of the choice keys so that
	// rendering and positional matching stay deterministic. Populated by the
	// world loader.
	ChoiceOrder []string `json:"-" yaml:"-"`
}

// Choice is one legal action from a scene.
type Choice struct {
	Desc        string  `json:"desc" yaml:"desc"`
	ResultScene string  `json:"result_scene" yaml:"result_scene"`
	Effects     *Effect `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// Effect declares the session mutations a choice fires when taken.
// Applying the same effect twice appends twice; repetition is a legitimate
// player action, not an error.
type Effect struct {
	AddJournal   string `json:"add_journal,omitempty" yaml:"add_journal,omitempty"`
	AddInventory string `json:"add_inventory,omitempty" yaml:"add_inventory,omitempty"`
}

// OrderedChoices returns the scene's choice IDs in authoring order,
// falling back to nothing when the scene is a dead end.
func (s *Scene) OrderedChoices() []string {
	if len(s.ChoiceOrder) == len(s.Choices) {
		return s.ChoiceOrder
	}
	ids := make([]string, 0, len(s.Choices))
	for id := range s.Choices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
