package gamemaster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/domain"
	"parley/pkg/world"
)

func newTestEngine(t *testing.T) (*Engine, *domain.Session) {
	t.Helper()
	e := New(world.Default())
	s := domain.NewSession(e.World().Start())
	return e, s
}

func TestStart_Opening(t *testing.T) {
	e, s := newTestEngine(t)

	text := e.Start(s, "Asha")
	assert.Contains(t, text, "Greetings Asha.")
	assert.Contains(t, text, "A Shadow over Brinmere")
	assert.Contains(t, text, "(say: inspect_box)")
	assert.True(t, strings.HasSuffix(text, Prompt))
	assert.Equal(t, "intro", s.CurrentScene)
	assert.Empty(t, s.History)
}

func TestStart_DefaultName(t *testing.T) {
	e, s := newTestEngine(t)
	assert.Contains(t, e.Start(s, ""), "Greetings traveler.")
}

func TestApply_AdvanceScenario(t *testing.T) {
	// start -> inspect_box -> take_map walks intro -> box -> tower_approach
	// and fires the journal effect exactly once.
	e, s := newTestEngine(t)
	e.Start(s, "")

	out := e.Apply(s, "inspect_box")
	assert.Equal(t, domain.OutcomeAdvanced, out.Kind)
	assert.Equal(t, "box", s.CurrentScene)
	assert.Empty(t, s.Journal, "inspecting the box must not touch the journal")
	assert.True(t, strings.HasSuffix(out.Text, Prompt))

	out = e.Apply(s, "take_map")
	assert.Equal(t, domain.OutcomeAdvanced, out.Kind)
	assert.Equal(t, "tower_approach", s.CurrentScene)
	require.Len(t, s.Journal, 1)
	assert.Contains(t, s.Journal[0], "map fragment")

	require.Len(t, s.History, 2)
	assert.Equal(t, domain.TransitionRecord{From: "intro", Action: "inspect_box", To: "box", Time: s.History[0].Time}, s.History[0])
	assert.Equal(t, "take_map", s.History[1].Action)
	assert.Equal(t, []string{"inspect_box", "take_map"}, s.ChoicesMade)
}

func TestApply_NaturalLanguage(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "")

	out := e.Apply(s, "I'd like to inspect the box please")
	assert.Equal(t, domain.OutcomeAdvanced, out.Kind)
	assert.Equal(t, "box", s.CurrentScene)
	assert.Contains(t, out.Text, personaText)
	assert.Contains(t, out.Text, "You chose 'inspect_box'.")
}

func TestApply_Unresolved(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "")

	out := e.Apply(s, "xyz-nonsense")
	assert.Equal(t, domain.OutcomeUnresolved, out.Kind)
	assert.Equal(t, "intro", s.CurrentScene, "position must not move")
	assert.Empty(t, s.History)
	// The same legal choices are re-presented, never a fabricated set.
	assert.Contains(t, out.Text, "(say: inspect_box)")
	assert.Contains(t, out.Text, "(say: approach_tower)")
	assert.True(t, strings.HasSuffix(out.Text, Prompt))
}

func TestApply_DeadEndSoftReset(t *testing.T) {
	// A world whose second scene has no choices: any utterance there forces
	// the position back to the start, flagged as a reset, not unresolved.
	w, err := world.Load(strings.NewReader(`
start: intro
scenes:
  intro:
    title: Intro
    desc: The beginning.
    choices:
      fall:
        desc: Step into the pit.
        result_scene: pit
  pit:
    title: The Pit
    desc: Smooth walls, no way out.
`))
	require.NoError(t, err)

	e := New(w)
	s := domain.NewSession(w.Start())
	e.Start(s, "")

	out := e.Apply(s, "fall")
	require.Equal(t, domain.OutcomeAdvanced, out.Kind)
	require.Equal(t, "pit", s.CurrentScene)

	out = e.Apply(s, "climb")
	assert.Equal(t, domain.OutcomeReset, out.Kind)
	assert.Equal(t, "intro", s.CurrentScene)
	assert.True(t, strings.HasSuffix(out.Text, Prompt))
}

func TestApply_DanglingTargetFallsBack(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "")

	// walk_to_cottages points at an unwritten scene.
	out := e.Apply(s, "walk_to_cottages")
	assert.Equal(t, domain.OutcomeAdvanced, out.Kind)
	assert.Equal(t, "cottages", s.CurrentScene)

	// The next utterance lands on the missing scene and resolves against
	// the start scene instead.
	out = e.Apply(s, "inspect_box")
	assert.Equal(t, domain.OutcomeAdvanced, out.Kind)
	assert.Equal(t, "box", s.CurrentScene)
}

func TestApply_HistoryGrowsPerAcceptedAction(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "")

	actions := []string{"inspect_box", "leave_box", "approach_tower", "retreat"}
	for _, a := range actions {
		out := e.Apply(s, a)
		require.Equal(t, domain.OutcomeAdvanced, out.Kind, "action %q", a)
	}
	require.Len(t, s.History, len(actions))
	for i, a := range actions {
		assert.Equal(t, a, s.History[i].Action)
	}

	// Rejected utterances add nothing.
	e.Apply(s, "gibberish qqqq")
	assert.Len(t, s.History, len(actions))
}

func TestApply_RepeatedEffectAppendsTwice(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "")

	e.Apply(s, "inspect_box")
	e.Apply(s, "take_map")
	// Walk back around to the box and take the map again.
	e.Apply(s, "retreat")
	e.Apply(s, "inspect_box")
	e.Apply(s, "take_map")

	assert.Len(t, s.Journal, 2, "no deduplication of repeated effects")
}

func TestSceneText_Idempotent(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "")

	before := *s
	first := e.SceneText(s)
	second := e.SceneText(s)
	assert.Equal(t, first, second)
	assert.Equal(t, before.CurrentScene, s.CurrentScene)
	assert.Len(t, s.History, len(before.History))
}

func TestSceneText_UnknownScene(t *testing.T) {
	e, s := newTestEngine(t)
	s.CurrentScene = "nowhere"
	assert.Equal(t, voidText, e.SceneText(s))
}

func TestRestart_ClearsState(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "Asha")
	e.Apply(s, "inspect_box")
	e.Apply(s, "take_map")
	oldID := s.ID

	text := e.Restart(s)
	assert.Contains(t, text, "The world resets.")
	assert.Equal(t, "intro", s.CurrentScene)
	assert.Empty(t, s.History)
	assert.Empty(t, s.Journal)
	assert.Equal(t, oldID, s.ID, "restart keeps the storage key")
	assert.Equal(t, "Asha", s.PlayerName, "restart keeps the player name")
}

func TestJournalText(t *testing.T) {
	e, s := newTestEngine(t)
	e.Start(s, "Asha")

	empty := JournalText(s)
	assert.Contains(t, empty, "Session: "+s.ID)
	assert.Contains(t, empty, "Journal is empty so far.")
	assert.Contains(t, empty, "No items in inventory yet.")
	assert.Contains(t, empty, "None yet. Your story is just beginning.")
	assert.True(t, strings.HasSuffix(empty, Prompt))

	e.Apply(s, "inspect_box")
	e.Apply(s, "take_map")

	full := JournalText(s)
	assert.Contains(t, full, "Player: Asha")
	assert.Contains(t, full, "map fragment")
	assert.Contains(t, full, "from intro -> box via inspect_box")
}
