// Package gamemaster walks a session through the narrative graph: it
// resolves each spoken action against the current scene's legal choices,
// applies the declared effects, and renders the next scene as a single
// speakable block.
package gamemaster

import (
	"log/slog"

	"parley/internal/logging"
	"parley/internal/metrics"
	"parley/pkg/domain"
	"parley/pkg/resolve"
	"parley/pkg/world"
)

// Engine is the game-master variant of the intent engine. It is stateless
// itself; all mutable state lives in the session passed to each call.
type Engine struct {
	world  *world.World
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a game-master engine over the given world.
func New(w *world.World, opts ...Option) *Engine {
	e := &Engine{
		world:  w,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// World returns the engine's reference data.
func (e *Engine) World() *world.World {
	return e.world
}

// Start resets the session to the initial lifecycle and returns the
// opening description.
func (e *Engine) Start(session *domain.Session, playerName string) string {
	session.Reset(e.world.Start())
	if playerName != "" {
		session.PlayerName = playerName
	}

	e.logger.Info("adventure started", "session_id", session.ID, "player", session.PlayerName)

	start, _ := e.world.Scene(e.world.Start())
	return ensurePrompt(openingText(session.PlayerName, start))
}

// Restart resets the session and returns the reset framing.
func (e *Engine) Restart(session *domain.Session) string {
	name := session.PlayerName
	session.Reset(e.world.Start())
	session.PlayerName = name

	e.logger.Info("adventure restarted", "session_id", session.ID)

	start, _ := e.world.Scene(e.world.Start())
	return ensurePrompt(restartText + "\n\n" + sceneText(start))
}

// SceneText renders the session's current position without mutating it.
// Calling it twice in a row yields identical output.
func (e *Engine) SceneText(session *domain.Session) string {
	id := session.CurrentScene
	if id == "" {
		id = e.world.Start()
	}
	scene, err := e.world.Scene(id)
	if err != nil {
		return voidText
	}
	return sceneText(scene)
}

// Apply resolves one utterance against the current scene's legal choices
// and advances the session. Every outcome is a well-formed spoken response;
// Apply never fails.
func (e *Engine) Apply(session *domain.Session, text string) domain.Outcome {
	current := session.CurrentScene
	if current == "" {
		current = e.world.Start()
	}
	scene, err := e.world.Scene(current)
	if err != nil {
		// Position points nowhere (an author left a target unwritten).
		// Fall back to the start scene and resolve against it.
		current = e.world.Start()
		session.CurrentScene = current
		scene, _ = e.world.Scene(current)
	}

	legal := make([]resolve.LegalAction, 0, len(scene.Choices))
	for _, id := range scene.OrderedChoices() {
		legal = append(legal, resolve.LegalAction{ID: id, Desc: scene.Choices[id].Desc})
	}

	actionID, err := resolve.Action(text, legal)
	switch err {
	case nil:
	case domain.ErrNoActions:
		return e.softReset(session, current)
	default:
		return e.unresolved(session, scene)
	}

	choice := scene.Choices[actionID]
	applyEffects(session, choice.Effects)
	session.Record(current, actionID, choice.ResultScene)
	session.CurrentScene = choice.ResultScene

	e.logger.Info("scene transition",
		"session_id", session.ID,
		"from", current,
		"action", actionID,
		"to", choice.ResultScene,
	)
	metrics.Resolutions.WithLabelValues("gamemaster", string(domain.OutcomeAdvanced)).Inc()

	next, err := e.world.Scene(choice.ResultScene)
	nextText := voidText
	if err == nil {
		nextText = sceneText(next)
	}

	return domain.Outcome{
		Kind: domain.OutcomeAdvanced,
		Text: ensurePrompt(advancedText(actionID, nextText)),
	}
}

// softReset answers a dead-end scene: the position snaps back to the start
// entity with its own framing. This is a defined transition, not an error.
func (e *Engine) softReset(session *domain.Session, from string) domain.Outcome {
	session.CurrentScene = e.world.Start()

	e.logger.Info("dead end, soft reset", "session_id", session.ID, "from", from)
	metrics.Resolutions.WithLabelValues("gamemaster", string(domain.OutcomeReset)).Inc()

	start, _ := e.world.Scene(e.world.Start())
	return domain.Outcome{
		Kind: domain.OutcomeReset,
		Text: ensurePrompt(deadEndText + "\n\n" + sceneText(start)),
	}
}

// unresolved leaves the position untouched and re-presents the same legal
// choices, never a fabricated set.
func (e *Engine) unresolved(session *domain.Session, scene domain.Scene) domain.Outcome {
	e.logger.Debug("unresolved action", "session_id", session.ID, "scene", scene.ID)
	metrics.Resolutions.WithLabelValues("gamemaster", string(domain.OutcomeUnresolved)).Inc()

	return domain.Outcome{
		Kind: domain.OutcomeUnresolved,
		Text: ensurePrompt(unresolvedText + "\n\n" + sceneText(scene)),
	}
}

// applyEffects fires the declared session mutations. The same effect
// applied twice appends twice; revisiting a choice is a legitimate action.
func applyEffects(session *domain.Session, effects *domain.Effect) {
	if effects == nil {
		return
	}
	if effects.AddJournal != "" {
		session.Journal = append(session.Journal, effects.AddJournal)
	}
	if effects.AddInventory != "" {
		session.Inventory = append(session.Inventory, effects.AddInventory)
	}
}
